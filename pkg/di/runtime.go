package di

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container passed to modules and handlers.
type Injector = do.Injector

// Module registers providers on an injector.
type Module func(Injector) error

// Runtime builds injectors from a fixed list of modules.
type Runtime struct {
	modules []Module
}

// New creates a runtime. Nil modules are skipped.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke runs handler against a fresh injector prepared by the runtime's
// modules followed by extraModules.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...Module) error {
	injector := do.New()
	defer func() { _ = injector.Shutdown() }()

	for _, group := range [][]Module{r.modules, extraModules} {
		for _, module := range group {
			if module == nil {
				continue
			}

			err := module(injector)
			if err != nil {
				return err
			}
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler to cobra's RunE, providing the command's
// context and flags to the injector.
func RunEWithRuntime(
	rt *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return rt.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		}, ContextModule(cmd.Context()), FlagsModule(FlagsFromCommand(cmd)))
	}
}

// ContextModule provides ctx to providers that make blocking calls.
func ContextModule(ctx context.Context) Module {
	if ctx == nil {
		ctx = context.Background()
	}

	return func(i Injector) error {
		do.ProvideValue(i, ctx)

		return nil
	}
}
