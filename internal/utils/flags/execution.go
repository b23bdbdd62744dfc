// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun bool
	Force  bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun ExecutionFlagDefinition
	Force  ExecutionFlagDefinition
}

// DefaultExecutionFlagDefinitions enables the shared dry-run and force flags.
func DefaultExecutionFlagDefinitions() ExecutionFlagDefinitions {
	return ExecutionFlagDefinitions{
		DryRun: ExecutionFlagDefinition{Name: DryRunFlagName, Usage: DryRunFlagUsage, Enabled: true},
		Force:  ExecutionFlagDefinition{Name: ForceFlagName, Usage: ForceFlagUsage, Shorthand: ForceFlagShorthand, Enabled: true},
	}
}

// BindExecutionFlags attaches standardized execution flags to the provided command.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}

	flagSet := command.Flags()

	bindBoolFlag(flagSet, definitions.DryRun, defaults.DryRun)
	bindBoolFlag(flagSet, definitions.Force, defaults.Force)
}

// ResolveExecutionFlags returns flag values when explicitly provided and falls back to the configured defaults otherwise.
func ResolveExecutionFlags(command *cobra.Command, defaults ExecutionDefaults) ExecutionDefaults {
	resolved := defaults
	if command == nil {
		return resolved
	}

	flagSet := command.Flags()
	if flagSet.Changed(DryRunFlagName) {
		resolved.DryRun, _ = flagSet.GetBool(DryRunFlagName)
	}
	if flagSet.Changed(ForceFlagName) {
		resolved.Force, _ = flagSet.GetBool(ForceFlagName)
	}
	return resolved
}

func bindBoolFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	if len(definition.Shorthand) > 0 {
		flagSet.BoolP(definition.Name, definition.Shorthand, defaultValue, definition.Usage)
		return
	}

	flagSet.Bool(definition.Name, defaultValue, definition.Usage)
}
