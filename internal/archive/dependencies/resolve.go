package dependencies

import (
	"io"

	"go.uber.org/zap"

	"github.com/temirov/aocinputs/internal/archive/filesystem"
	"github.com/temirov/aocinputs/internal/archive/prompt"
	"github.com/temirov/aocinputs/internal/archive/shared"
	"github.com/temirov/aocinputs/internal/execshell"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Observers receive command lifecycle events from the constructed executor.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, observers ...execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolvePrompter returns the provided prompter or one reading from input and writing to output.
func ResolvePrompter(existing shared.ConfirmationPrompter, input io.Reader, output io.Writer) shared.ConfirmationPrompter {
	if existing != nil {
		return existing
	}
	return prompt.NewIOConfirmationPrompter(input, output)
}

// ResolveClock returns the provided clock or the system clock.
func ResolveClock(existing shared.Clock) shared.Clock {
	if existing != nil {
		return existing
	}
	return shared.SystemClock{}
}
