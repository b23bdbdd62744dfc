package tests

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationCommandTimeout         = 30 * time.Second
	integrationDirectoryPermissions   = 0o755
	integrationFilePermissions        = 0o644
	integrationConfigHomeVariableName = "XDG_CONFIG_HOME"
)

type integrationResult struct {
	standardOutput string
	standardError  string
	exitCode       int
}

func requireIntegrationBinary(testInstance *testing.T) {
	testInstance.Helper()
	if len(integrationBinaryPath) == 0 {
		testInstance.Skip("go toolchain not available to build the CLI")
	}
}

func requireGitExecutable(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(integrationGitExecutableNameConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
}

func runIntegrationCommand(testInstance *testing.T, standardInput string, environment []string, arguments ...string) integrationResult {
	testInstance.Helper()
	requireIntegrationBinary(testInstance)

	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, integrationBinaryPath, arguments...)
	command.Dir = testInstance.TempDir()
	command.Env = append(append([]string{}, os.Environ()...), integrationConfigHomeVariableName+"="+testInstance.TempDir())
	command.Env = append(command.Env, environment...)
	command.Stdin = strings.NewReader(standardInput)

	var standardOutput, standardError bytes.Buffer
	command.Stdout = &standardOutput
	command.Stderr = &standardError

	result := integrationResult{}
	runError := command.Run()
	var exitError *exec.ExitError
	switch {
	case runError == nil:
	case errors.As(runError, &exitError):
		result.exitCode = exitError.ExitCode()
	default:
		testInstance.Fatalf("command could not run: %v\n%s", runError, standardError.String())
	}

	result.standardOutput = standardOutput.String()
	result.standardError = standardError.String()
	return result
}

func writeIntegrationFiles(testInstance *testing.T, root string, files map[string]string) {
	testInstance.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(root, relativePath)
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), integrationDirectoryPermissions))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), integrationFilePermissions))
	}
}

func runGit(testInstance *testing.T, repositoryPath string, arguments ...string) string {
	testInstance.Helper()

	command := exec.Command(integrationGitExecutableNameConstant, arguments...)
	command.Dir = repositoryPath
	command.Env = append(append([]string{}, os.Environ()...),
		"GIT_AUTHOR_NAME=Integration",
		"GIT_AUTHOR_EMAIL=integration@example.com",
		"GIT_COMMITTER_NAME=Integration",
		"GIT_COMMITTER_EMAIL=integration@example.com",
	)

	outputBytes, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(outputBytes))
	return string(outputBytes)
}

func filterStructuredOutput(rawOutput string) string {
	lines := strings.Split(rawOutput, "\n")
	var filtered []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			continue
		}
		filtered = append(filtered, line)
	}
	if len(filtered) == 0 {
		return ""
	}
	return strings.Join(filtered, "\n") + "\n"
}
