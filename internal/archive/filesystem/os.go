package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

const (
	copyOpenSourceErrorTemplateConstant        = "unable to open %s: %w"
	copyCreateDestinationErrorTemplateConstant = "unable to create %s: %w"
	copyContentsErrorTemplateConstant          = "unable to copy %s to %s: %w"
	copyRemoveSourceErrorTemplateConstant      = "copied %s but could not remove it: %w"
)

// OSFileSystem implements shared.FileSystem using the operating system primitives.
type OSFileSystem struct{}

// ReadDir lists directory entries sorted by name.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Abs resolves an absolute path.
func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// MkdirAll ensures a directory hierarchy exists with the provided permissions.
func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}

// MoveFile renames a file, copying and removing it when the paths live on different devices.
// An existing destination is replaced.
func (fileSystem OSFileSystem) MoveFile(oldPath string, newPath string) error {
	renameError := os.Rename(oldPath, newPath)
	if renameError == nil || !errors.Is(renameError, syscall.EXDEV) {
		return renameError
	}
	return fileSystem.copyAndRemove(oldPath, newPath)
}

func (fileSystem OSFileSystem) copyAndRemove(oldPath string, newPath string) error {
	sourceFile, openError := os.Open(oldPath)
	if openError != nil {
		return fmt.Errorf(copyOpenSourceErrorTemplateConstant, oldPath, openError)
	}
	defer sourceFile.Close()

	sourceInfo, statError := sourceFile.Stat()
	if statError != nil {
		return fmt.Errorf(copyOpenSourceErrorTemplateConstant, oldPath, statError)
	}

	destinationFile, createError := os.OpenFile(newPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, sourceInfo.Mode().Perm())
	if createError != nil {
		return fmt.Errorf(copyCreateDestinationErrorTemplateConstant, newPath, createError)
	}

	if _, copyError := io.Copy(destinationFile, sourceFile); copyError != nil {
		_ = destinationFile.Close()
		_ = os.Remove(newPath)
		return fmt.Errorf(copyContentsErrorTemplateConstant, oldPath, newPath, copyError)
	}
	if closeError := destinationFile.Close(); closeError != nil {
		_ = os.Remove(newPath)
		return fmt.Errorf(copyContentsErrorTemplateConstant, oldPath, newPath, closeError)
	}

	if removeError := os.Remove(oldPath); removeError != nil {
		return fmt.Errorf(copyRemoveSourceErrorTemplateConstant, oldPath, removeError)
	}
	return nil
}
