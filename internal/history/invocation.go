package history

import (
	"strings"

	"github.com/temirov/aocinputs/internal/execshell"
)

const (
	gitFilterBranchSubcommandConstant = "filter-branch"
	gitForceFlagConstant              = "-f"
	gitIndexFilterFlagConstant        = "--index-filter"
	gitHeadReferenceConstant          = "HEAD"
	gitRevParseSubcommandConstant     = "rev-parse"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitWorkTreeAffirmativeConstant    = "true"
	indexFilterPrefixConstant         = "git rm -rf --cached --ignore-unmatch -- "
	squelchWarningVariableConstant    = "FILTER_BRANCH_SQUELCH_WARNING"
	squelchWarningValueConstant       = "1"
	renderedArgumentSeparatorConstant = " "
	renderQuoteConstant               = `"`
	renderEscapedQuoteConstant        = `\"`
	renderSpecialCharactersConstant   = " \t\n\"'$`\\"
)

// BuildIndexFilter returns the index filter removing trackedPath from the index of every commit.
func BuildIndexFilter(trackedPath string) string {
	return indexFilterPrefixConstant + execshell.QuoteShellArgument(trackedPath)
}

// BuildRewriteCommand returns the git invocation purging trackedPath from the history of HEAD.
func BuildRewriteCommand(root string, trackedPath string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments: []string{
			gitFilterBranchSubcommandConstant,
			gitForceFlagConstant,
			gitIndexFilterFlagConstant,
			BuildIndexFilter(trackedPath),
			gitHeadReferenceConstant,
		},
		WorkingDirectory:     root,
		EnvironmentVariables: map[string]string{squelchWarningVariableConstant: squelchWarningValueConstant},
	}
}

// BuildWorkTreeCheckCommand returns the git invocation confirming root is inside a work tree.
func BuildWorkTreeCheckCommand(root string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitWorkTreeFlagConstant},
		WorkingDirectory: root,
	}
}

// RenderCommand formats git details the way an operator would type them.
func RenderCommand(details execshell.CommandDetails) string {
	renderedParts := []string{string(execshell.CommandGit)}
	for _, argument := range details.Arguments {
		renderedParts = append(renderedParts, renderArgument(argument))
	}
	return strings.Join(renderedParts, renderedArgumentSeparatorConstant)
}

func renderArgument(argument string) string {
	if len(argument) > 0 && !strings.ContainsAny(argument, renderSpecialCharactersConstant) {
		return argument
	}
	escapedArgument := strings.ReplaceAll(argument, `\`, `\\`)
	escapedArgument = strings.ReplaceAll(escapedArgument, renderQuoteConstant, renderEscapedQuoteConstant)
	escapedArgument = strings.ReplaceAll(escapedArgument, "$", `\$`)
	escapedArgument = strings.ReplaceAll(escapedArgument, "`", "\\`")
	return renderQuoteConstant + escapedArgument + renderQuoteConstant
}
