package history_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/aocinputs/internal/execshell"
	"github.com/temirov/aocinputs/internal/history"
)

func TestBuildRewriteCommand(testInstance *testing.T) {
	details := history.BuildRewriteCommand("/workspace/archive", "day-01/input.txt")

	require.Equal(testInstance, []string{
		"filter-branch",
		"-f",
		"--index-filter",
		"git rm -rf --cached --ignore-unmatch -- 'day-01/input.txt'",
		"HEAD",
	}, details.Arguments)
	require.Equal(testInstance, "/workspace/archive", details.WorkingDirectory)
	require.Equal(testInstance, map[string]string{"FILTER_BRANCH_SQUELCH_WARNING": "1"}, details.EnvironmentVariables)
}

func TestBuildIndexFilterQuotesHostilePaths(testInstance *testing.T) {
	testCases := []struct {
		name        string
		trackedPath string
		expected    string
	}{
		{name: "plain", trackedPath: "day-01/input.txt", expected: "git rm -rf --cached --ignore-unmatch -- 'day-01/input.txt'"},
		{name: "spaces", trackedPath: "day- 01/input.txt", expected: "git rm -rf --cached --ignore-unmatch -- 'day- 01/input.txt'"},
		{name: "command_separator", trackedPath: "day-;rm -rf ~/input.txt", expected: "git rm -rf --cached --ignore-unmatch -- 'day-;rm -rf ~/input.txt'"},
		{name: "single_quote", trackedPath: "day-'x/input.txt", expected: `git rm -rf --cached --ignore-unmatch -- 'day-'\''x/input.txt'`},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, history.BuildIndexFilter(testCase.trackedPath))
		})
	}
}

func TestRenderCommand(testInstance *testing.T) {
	rendered := history.RenderCommand(history.BuildRewriteCommand("/workspace/archive", "day-01/input.txt"))
	require.Equal(testInstance, `git filter-branch -f --index-filter "git rm -rf --cached --ignore-unmatch -- 'day-01/input.txt'" HEAD`, rendered)

	escaped := history.RenderCommand(execshell.CommandDetails{Arguments: []string{"log", `say "$HOME"`, ""}})
	require.Equal(testInstance, `git log "say \"\$HOME\"" ""`, escaped)
}

func TestBuildWorkTreeCheckCommand(testInstance *testing.T) {
	details := history.BuildWorkTreeCheckCommand("/workspace/archive")
	require.Equal(testInstance, []string{"rev-parse", "--is-inside-work-tree"}, details.Arguments)
	require.Equal(testInstance, "/workspace/archive", details.WorkingDirectory)
}
