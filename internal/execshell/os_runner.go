package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
	"strings"
)

const environmentAssignmentSeparatorConstant = "="

// OSCommandRunner starts git as a child process of aoc-inputs.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run starts the command in its working directory (the archive root for history rewrites) and
// waits for it. Stdout and stderr are captured. A non-zero exit is returned as a result, not an
// error; the error covers commands that could not be started or awaited.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	childProcess := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	childProcess.Dir = command.Details.WorkingDirectory
	if len(command.Details.EnvironmentVariables) > 0 {
		childProcess.Env = mergeEnvironment(os.Environ(), command.Details.EnvironmentVariables)
	}
	if len(command.Details.StandardInput) > 0 {
		childProcess.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	var capturedOutput, capturedError bytes.Buffer
	childProcess.Stdout = &capturedOutput
	childProcess.Stderr = &capturedError

	result := ExecutionResult{}
	if runError := childProcess.Run(); runError != nil {
		var exitError *exec.ExitError
		if !errors.As(runError, &exitError) {
			return ExecutionResult{}, runError
		}
		result.ExitCode = exitError.ExitCode()
	}
	result.StandardOutput = capturedOutput.String()
	result.StandardError = capturedError.String()
	return result, nil
}

// mergeEnvironment applies overrides such as FILTER_BRANCH_SQUELCH_WARNING=1 on top of the inherited
// environment. An inherited variable with the same name is replaced in place; new variables are
// appended in name order.
func mergeEnvironment(inherited []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(inherited)+len(overrides))
	applied := make(map[string]struct{}, len(overrides))
	for _, assignment := range inherited {
		name, _, _ := strings.Cut(assignment, environmentAssignmentSeparatorConstant)
		if value, overridden := overrides[name]; overridden {
			merged = append(merged, name+environmentAssignmentSeparatorConstant+value)
			applied[name] = struct{}{}
			continue
		}
		merged = append(merged, assignment)
	}

	additions := make([]string, 0, len(overrides))
	for name := range overrides {
		if _, done := applied[name]; !done {
			additions = append(additions, name)
		}
	}
	sort.Strings(additions)
	for _, name := range additions {
		merged = append(merged, name+environmentAssignmentSeparatorConstant+overrides[name])
	}
	return merged
}
