package flags

import (
	"strings"

	"github.com/spf13/cobra"
)

const (
	// DefaultRootFlagName exposes the shared working tree root flag name.
	DefaultRootFlagName = "root"
	// DefaultRootFlagUsage describes the shared working tree root flag purpose.
	DefaultRootFlagUsage = "Working tree root containing the day directories"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview operations without making changes"
	// ForceFlagName exposes the shared force flag name.
	ForceFlagName = "force"
	// ForceFlagShorthand provides the shorthand for the force flag.
	ForceFlagShorthand = "f"
	// ForceFlagUsage describes the shared force flag purpose.
	ForceFlagUsage = "Skip the confirmation prompt"
)

// RootFlagDefinition captures configuration for the working tree root flag.
type RootFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// RootFlagValues stores the working tree root flag value.
type RootFlagValues struct {
	Root string
}

// BindRootFlag attaches the working tree root flag to the provided command.
func BindRootFlag(command *cobra.Command, defaults RootFlagValues, definition RootFlagDefinition) *RootFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DefaultRootFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DefaultRootFlagUsage
	}

	if command.Flags().Lookup(flagName) == nil {
		command.Flags().StringVar(&values.Root, flagName, defaults.Root, flagUsage)
	}
	return &values
}

// ResolveRoot prefers an explicitly provided root flag, then the configured root, then the fallback.
func ResolveRoot(command *cobra.Command, values *RootFlagValues, configuredRoot string, fallbackRoot string) string {
	if command != nil && values != nil && command.Flags().Changed(DefaultRootFlagName) {
		if trimmed := strings.TrimSpace(values.Root); len(trimmed) > 0 {
			return trimmed
		}
	}
	if trimmed := strings.TrimSpace(configuredRoot); len(trimmed) > 0 {
		return trimmed
	}
	return fallbackRoot
}
