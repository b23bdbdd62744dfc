package shared

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/temirov/aocinputs/internal/execshell"
)

const (
	confirmationDeclinedMessageConstant = "operation aborted by operator"
	// AbortedMessageConstant is printed when the operator declines a confirmation.
	AbortedMessageConstant = "Aborted.\n"
)

// ErrConfirmationDeclined indicates the operator answered a confirmation with anything but yes.
var ErrConfirmationDeclined = errors.New(confirmationDeclinedMessageConstant)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FileSystem exposes filesystem operations required by archive services.
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	MkdirAll(path string, permissions fs.FileMode) error
	MoveFile(oldPath string, newPath string) error
}

// ConfirmationPrompter collects operator confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// GitExecutor exposes the subset of shell execution used by archive services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
