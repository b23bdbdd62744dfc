package history

import "strings"

const defaultRootConstant = "."

// CommandConfiguration captures persisted configuration for history rewriting.
type CommandConfiguration struct {
	Root   string `mapstructure:"root"`
	DryRun bool   `mapstructure:"dry_run"`
	Force  bool   `mapstructure:"force"`
}

// DefaultCommandConfiguration returns baseline configuration values for history rewriting.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:   defaultRootConstant,
		DryRun: false,
		Force:  false,
	}
}

// Sanitize trims configured values and applies defaults to blank entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaultRootConstant
	}
	return sanitized
}
