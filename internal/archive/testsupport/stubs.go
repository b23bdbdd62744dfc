// Package testsupport provides collaborator stubs shared by the archive service tests.
package testsupport

import (
	"context"
	"errors"
	"io/fs"

	"github.com/temirov/aocinputs/internal/archive/filesystem"
	"github.com/temirov/aocinputs/internal/execshell"
)

// PrompterStub answers confirmations with a fixed response and records the prompts.
type PrompterStub struct {
	Confirmed bool
	Error     error
	Prompts   []string
}

// Confirm records the prompt and returns the configured answer.
func (prompter *PrompterStub) Confirm(prompt string) (bool, error) {
	prompter.Prompts = append(prompter.Prompts, prompt)
	return prompter.Confirmed, prompter.Error
}

// FileSystemStub delegates to the operating system while injecting failures for selected paths.
type FileSystemStub struct {
	filesystem.OSFileSystem
	MoveFailures    map[string]error
	ReadDirFailures map[string]error
	MkdirFailure    error
	MovedSources    []string
}

// ReadDir returns the configured failure for path or delegates to the operating system.
func (fileSystem *FileSystemStub) ReadDir(path string) ([]fs.DirEntry, error) {
	if failure, exists := fileSystem.ReadDirFailures[path]; exists {
		return nil, failure
	}
	return fileSystem.OSFileSystem.ReadDir(path)
}

// MkdirAll returns the configured failure or delegates to the operating system.
func (fileSystem *FileSystemStub) MkdirAll(path string, permissions fs.FileMode) error {
	if fileSystem.MkdirFailure != nil {
		return fileSystem.MkdirFailure
	}
	return fileSystem.OSFileSystem.MkdirAll(path, permissions)
}

// MoveFile returns the configured failure for oldPath or delegates to the operating system.
func (fileSystem *FileSystemStub) MoveFile(oldPath string, newPath string) error {
	if failure, exists := fileSystem.MoveFailures[oldPath]; exists {
		return failure
	}
	fileSystem.MovedSources = append(fileSystem.MovedSources, oldPath)
	return fileSystem.OSFileSystem.MoveFile(oldPath, newPath)
}

// GitResponse configures the outcome of a git invocation.
type GitResponse struct {
	Result execshell.ExecutionResult
	Error  error
}

// GitExecutorStub records git invocations and replies with configured responses.
type GitExecutorStub struct {
	// Responses is keyed by the git subcommand (the first argument).
	Responses map[string]GitResponse
	// Failures is keyed by any argument following the subcommand.
	Failures         map[string]error
	ExecutedCommands []execshell.CommandDetails
}

// ExecuteGit records the invocation and returns the configured response.
func (executor *GitExecutorStub) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.ExecutedCommands = append(executor.ExecutedCommands, details)
	if len(details.Arguments) == 0 {
		return execshell.ExecutionResult{}, errors.New("no git arguments provided")
	}
	for index, argument := range details.Arguments {
		if index == 0 {
			continue
		}
		if failure, exists := executor.Failures[argument]; exists {
			return execshell.ExecutionResult{}, failure
		}
	}
	if response, exists := executor.Responses[details.Arguments[0]]; exists {
		return response.Result, response.Error
	}
	return execshell.ExecutionResult{ExitCode: 0}, nil
}
