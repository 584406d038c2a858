package di

import (
	"context"
	"os"
	"strings"

	"github.com/devantler-tech/gist/internal/buildmeta"
	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/cli/editor"
	"github.com/devantler-tech/gist/pkg/client/gistapi"
	"github.com/devantler-tech/gist/pkg/io/configmanager"
	"github.com/devantler-tech/gist/pkg/svc/cipher"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/devantler-tech/gist/pkg/svc/staging"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// CipherBinding is the cipher built from config, or why none could be built.
// A missing cipher only fails the workflows that need one.
type CipherBinding struct {
	Cipher cipher.Cipher
	Err    error
}

// NewRuntime constructs the runtime used by the root command.
func NewRuntime() *Runtime {
	return New(
		provideConfig,
		provideLogger,
		provideClient,
		provideCipher,
		provideStaging,
		provideService,
	)
}

func provideConfig(i Injector) error {
	do.Provide(i, func(i Injector) (*v1alpha1.Config, error) {
		ctx, err := do.Invoke[context.Context](i)
		if err != nil {
			ctx = context.Background()
		}

		flags, _ := do.Invoke[Flags](i)

		return configmanager.NewConfigManager(flags.ConfigPath).Load(ctx)
	})

	return nil
}

func provideLogger(i Injector) error {
	do.Provide(i, func(i Injector) (logrus.FieldLogger, error) {
		flags, _ := do.Invoke[Flags](i)

		level := flags.LogLevel
		if level == "" {
			cfg, err := do.Invoke[*v1alpha1.Config](i)
			if err == nil {
				level = cfg.LogLevel
			}
		}

		return NewLogger(level)
	})

	return nil
}

// NewLogger builds the stderr logger. An empty level means "error".
func NewLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if strings.TrimSpace(level) == "" {
		level = logrus.ErrorLevel.String()
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, gisterr.Validationf("invalid log level %q", level)
	}

	logger.SetLevel(parsed)

	return logger, nil
}

func provideClient(i Injector) error {
	do.Provide(i, func(i Injector) (gistapi.Client, error) {
		cfg, err := do.Invoke[*v1alpha1.Config](i)
		if err != nil {
			return nil, err
		}

		ctx, err := do.Invoke[context.Context](i)
		if err != nil {
			ctx = context.Background()
		}

		opts := []gistapi.Option{gistapi.WithUserAgent("gist/" + buildmeta.Version)}
		if cfg.APIURL != "" {
			opts = append(opts, gistapi.WithBaseURL(cfg.APIURL))
		}

		client, err := gistapi.NewGitHubClient(ctx, cfg.Token, opts...)
		if err != nil {
			return nil, gisterr.Configf("%v", err)
		}

		return client, nil
	})

	return nil
}

func provideCipher(i Injector) error {
	do.Provide(i, func(i Injector) (CipherBinding, error) {
		cfg, err := do.Invoke[*v1alpha1.Config](i)
		if err != nil {
			return CipherBinding{}, err
		}

		c, err := cipher.New(cfg)

		return CipherBinding{Cipher: c, Err: err}, nil
	})

	return nil
}

func provideStaging(i Injector) error {
	do.Provide(i, func(i Injector) (*staging.Manager, error) {
		cfg, err := do.Invoke[*v1alpha1.Config](i)
		if err != nil {
			return nil, err
		}

		client, err := do.Invoke[gistapi.Client](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[logrus.FieldLogger](i)
		if err != nil {
			return nil, err
		}

		binding, err := do.Invoke[CipherBinding](i)
		if err != nil {
			return nil, err
		}

		flags, _ := do.Invoke[Flags](i)
		editorCmd := editor.NewResolver(flags.Editor, cfg.Editor).Resolve()

		opts := []staging.Option{
			staging.WithEditor(editor.NewLauncher(editorCmd)),
			staging.WithLogger(logger),
			staging.WithKeepTempfiles(!cfg.DeleteTempfiles),
		}

		if binding.Cipher != nil {
			opts = append(opts, staging.WithCipher(binding.Cipher))
		}

		return staging.NewManager(client, opts...), nil
	})

	return nil
}

func provideService(i Injector) error {
	do.Provide(i, func(i Injector) (*gistsvc.Service, error) {
		client, err := do.Invoke[gistapi.Client](i)
		if err != nil {
			return nil, err
		}

		manager, err := do.Invoke[*staging.Manager](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[logrus.FieldLogger](i)
		if err != nil {
			return nil, err
		}

		binding, err := do.Invoke[CipherBinding](i)
		if err != nil {
			return nil, err
		}

		opts := []gistsvc.Option{gistsvc.WithLogger(logger)}
		if binding.Cipher != nil {
			opts = append(opts, gistsvc.WithCipher(binding.Cipher))
		} else if binding.Err != nil {
			opts = append(opts, gistsvc.WithCipherError(binding.Err))
		}

		return gistsvc.NewService(client, manager, opts...), nil
	})

	return nil
}
