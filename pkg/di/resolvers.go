package di

import (
	"fmt"

	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ResolveService retrieves the gist service from the injector.
// Classified errors from building it, such as a missing token, are returned as-is.
func ResolveService(injector Injector) (*gistsvc.Service, error) {
	service, err := do.Invoke[*gistsvc.Service](injector)
	if err != nil {
		if gisterr.KindOf(err) != nil {
			return nil, err
		}

		return nil, fmt.Errorf("resolve gist service: %w", err)
	}

	return service, nil
}

// ResolveLogger retrieves the diagnostic logger from the injector.
func ResolveLogger(injector Injector) (logrus.FieldLogger, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger: %w", err)
	}

	return logger, nil
}

// WithService decorates a handler to automatically resolve the gist service.
func WithService(
	handler func(cmd *cobra.Command, service *gistsvc.Service) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		service, err := ResolveService(injector)
		if err != nil {
			return err
		}

		return handler(cmd, service)
	}
}
