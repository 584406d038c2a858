package configmanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/envvar"
	"github.com/devantler-tech/gist/pkg/fsutil"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// SectionName is the INI section holding all gist settings.
const SectionName = "gist"

// Errors returned while locating the config file.
var (
	ErrConfigNotFound   = errors.New("unable to find config file")
	ErrConfigNotRegular = errors.New("config path is not a regular file")
)

// ConfigManager locates, parses and resolves the gist configuration.
type ConfigManager struct {
	Viper  *viper.Viper
	Config *v1alpha1.Config

	explicitPath string
	getenv       func(string) string
	homeDir      func() (string, error)
}

// NewConfigManager creates a config manager. explicitPath, when non-empty,
// bypasses the candidate search.
func NewConfigManager(explicitPath string) *ConfigManager {
	return &ConfigManager{
		Viper:        viper.New(),
		Config:       v1alpha1.NewConfig(),
		explicitPath: explicitPath,
		getenv:       os.Getenv,
		homeDir:      os.UserHomeDir,
	}
}

// Load reads the highest-precedence config file and resolves the token.
func (m *ConfigManager) Load(ctx context.Context) (*v1alpha1.Config, error) {
	path, err := m.Locate()
	if err != nil {
		return nil, gisterr.Configf("%v", err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from Locate
	if err != nil {
		return nil, gisterr.Configf("unable to load configuration file: %v", err)
	}

	err = m.read(data)
	if err != nil {
		return nil, gisterr.Configf("unable to load configuration file %s: %v", path, err)
	}

	err = m.unmarshal()
	if err != nil {
		return nil, gisterr.Configf("invalid configuration in %s: %v", path, err)
	}

	m.Config.Path = path

	err = m.expandPaths()
	if err != nil {
		return nil, err
	}

	if !m.Viper.IsSet(SectionName + ".token") {
		return nil, gisterr.Configf("missing 'token' field in configuration")
	}

	if strings.TrimSpace(m.Config.Token) == "" {
		return nil, gisterr.Configf("an empty token is not valid")
	}

	var token string

	if strings.TrimSpace(m.Config.Token) == TokenFromGitHubCLI {
		token, err = GitHubCLIToken(m.Config.APIURL)
	} else {
		token, err = ResolveToken(ctx, m.Config.Token)
	}

	if err != nil {
		return nil, err
	}

	m.Config.Token = token

	return m.Config, nil
}

func (m *ConfigManager) read(data []byte) error {
	defaults := v1alpha1.NewConfig()

	m.Viper.SetDefault(SectionName+".delete-tempfiles", defaults.DeleteTempfiles)
	m.Viper.SetDefault(SectionName+".log-level", defaults.LogLevel)
	m.Viper.SetDefault(SectionName+".encryption", defaults.Encryption)
	m.Viper.SetDefault(SectionName+".gnupg-command", defaults.GnupgCommand)

	sections, err := decodeINI(data)
	if err != nil {
		return err
	}

	err = m.Viper.MergeConfigMap(sections)
	if err != nil {
		return fmt.Errorf("failed to merge configuration: %w", err)
	}

	return nil
}

func (m *ConfigManager) unmarshal() error {
	var wrapper struct {
		Gist *v1alpha1.Config `mapstructure:"gist"`
	}

	wrapper.Gist = m.Config

	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			stringToBoolHook(),
			mapstructure.StringToSliceHookFunc(","),
			trimSliceHook(),
		)
	}

	err := m.Viper.Unmarshal(&wrapper, decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	m.Config.Encryption = strings.ToLower(strings.TrimSpace(m.Config.Encryption))

	return nil
}

// expandPaths resolves "~/" and ${VAR} in the path-valued keys.
func (m *ConfigManager) expandPaths() error {
	home, err := m.homeDir()
	if err != nil {
		home = ""
	}

	lookup := func(name string) (string, bool) {
		value := m.getenv(name)

		return value, value != ""
	}

	for key, value := range map[string]*string{
		"gnupg-homedir": &m.Config.GnupgHomedir,
		"age-identity":  &m.Config.AgeIdentity,
	} {
		expanded, missing := envvar.Expand(*value, lookup)
		if len(missing) > 0 {
			return gisterr.Configf("'%s' refers to unset environment variable %s", key, missing[0])
		}

		*value = fsutil.ExpandHomePath(expanded, home)
	}

	return nil
}

// stringToBoolHook accepts the boolean spellings of INI files (yes/no, on/off, 1/0).
func stringToBoolHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
			return data, nil
		}

		raw, _ := data.(string)

		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "1", "yes", "true", "on":
			return true, nil
		case "0", "no", "false", "off":
			return false, nil
		default:
			return nil, fmt.Errorf("%w: not a boolean: %q", gisterr.ErrConfig, raw)
		}
	}
}

func trimSliceHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf([]string{}) {
			return data, nil
		}

		items, ok := data.([]string)
		if !ok {
			return data, nil
		}

		trimmed := make([]string, 0, len(items))

		for _, item := range items {
			item = strings.TrimSpace(item)
			if item != "" {
				trimmed = append(trimmed, item)
			}
		}

		return trimmed, nil
	}
}
