package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const (
	choiceListOpenConstant     = "<"
	choiceListCloseConstant    = ">"
	choiceListSeparator        = "|"
	choiceUsageTemplate        = "`%s%s%s`"
	choiceUsageWithDescription = "%s %s"
)

// ChoiceFlagDefinition describes a string flag restricted to a fixed set of values, such as
// migrate's --on-conflict policy.
type ChoiceFlagDefinition struct {
	Name        string
	Default     string
	Choices     []string
	Description string
}

// Usage renders the choices as `<FAIL|skip|overwrite>` with the default upper-cased, followed
// by the description. Blank and repeated choices are dropped.
func (definition ChoiceFlagDefinition) Usage() string {
	defaultChoice := strings.ToLower(strings.TrimSpace(definition.Default))
	rendered := make([]string, 0, len(definition.Choices))
	for _, choice := range normalizeChoices(definition.Choices) {
		if choice == defaultChoice {
			choice = strings.ToUpper(choice)
		}
		rendered = append(rendered, choice)
	}

	usage := fmt.Sprintf(choiceUsageTemplate, choiceListOpenConstant, strings.Join(rendered, choiceListSeparator), choiceListCloseConstant)
	description := strings.TrimSpace(definition.Description)
	if len(description) == 0 {
		return usage
	}
	return fmt.Sprintf(choiceUsageWithDescription, usage, description)
}

// BindChoiceFlag registers the flag on command together with shell completion of its choices.
func BindChoiceFlag(command *cobra.Command, definition ChoiceFlagDefinition) {
	if command == nil || len(definition.Name) == 0 {
		return
	}

	command.Flags().String(definition.Name, definition.Default, definition.Usage())
	choices := normalizeChoices(definition.Choices)
	_ = command.RegisterFlagCompletionFunc(definition.Name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return choices, cobra.ShellCompDirectiveNoFileComp
	})
}

// ResolveChoice returns the trimmed flag value when the operator set it and configuredValue otherwise.
func ResolveChoice(command *cobra.Command, name string, configuredValue string) string {
	if command == nil {
		return configuredValue
	}
	flagSet := command.Flags()
	if !flagSet.Changed(name) {
		return configuredValue
	}
	flagValue, _ := flagSet.GetString(name)
	return strings.TrimSpace(flagValue)
}

func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		candidate := strings.ToLower(strings.TrimSpace(choice))
		if len(candidate) == 0 {
			continue
		}
		if _, duplicate := seen[candidate]; duplicate {
			continue
		}
		seen[candidate] = struct{}{}
		normalized = append(normalized, candidate)
	}
	return normalized
}
