package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Flag names read by FlagsFromCommand.
const (
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
	FlagEditor   = "editor"
)

// Flags are the command-line overrides that feed the providers.
type Flags struct {
	ConfigPath string
	LogLevel   string
	Editor     string
}

// FlagsFromCommand reads the override flags; flags the command lacks stay empty.
func FlagsFromCommand(cmd *cobra.Command) Flags {
	var flags Flags

	if cmd == nil {
		return flags
	}

	flags.ConfigPath, _ = cmd.Flags().GetString(FlagConfig)
	flags.LogLevel, _ = cmd.Flags().GetString(FlagLogLevel)
	flags.Editor, _ = cmd.Flags().GetString(FlagEditor)

	return flags
}

// FlagsModule provides flags.
func FlagsModule(flags Flags) Module {
	return func(i Injector) error {
		do.ProvideValue(i, flags)

		return nil
	}
}
