package migrate

import (
	"strings"

	"github.com/temirov/aocinputs/internal/archive/shared"
)

const defaultRootConstant = "."

// CommandConfiguration captures persisted configuration for input migration.
type CommandConfiguration struct {
	Root              string `mapstructure:"root"`
	DryRun            bool   `mapstructure:"dry_run"`
	Force             bool   `mapstructure:"force"`
	OnConflict        string `mapstructure:"on_conflict"`
	EnsureDestination bool   `mapstructure:"ensure_destination"`
}

// DefaultCommandConfiguration returns baseline configuration values for input migration.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:              defaultRootConstant,
		DryRun:            false,
		Force:             false,
		OnConflict:        string(shared.ConflictFail),
		EnsureDestination: true,
	}
}

// Sanitize trims configured values and applies defaults to blank entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaultRootConstant
	}
	sanitized.OnConflict = strings.ToLower(strings.TrimSpace(configuration.OnConflict))
	if len(sanitized.OnConflict) == 0 {
		sanitized.OnConflict = string(shared.ConflictFail)
	}
	return sanitized
}
