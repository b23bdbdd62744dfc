package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	emptyRootPathMessageConstant      = "root path is empty"
	rootPathResolutionErrorTemplate   = "unable to resolve root path %q: %w"
	currentDirectoryReferenceConstant = "."
	homeDirectoryShortcutConstant     = "~"
)

// ErrEmptyRootPath indicates that no root path was supplied.
var ErrEmptyRootPath = errors.New(emptyRootPathMessageConstant)

// AbsolutePathFunc converts a path into its absolute form.
type AbsolutePathFunc func(string) (string, error)

// HomeDirectoryFunc reports the operator's home directory.
type HomeDirectoryFunc func() (string, error)

// RootPathResolver turns --root values and configured roots into absolute archive paths.
// A leading ~ or ~/ is replaced with the operator's home directory, which is looked up once.
type RootPathResolver struct {
	homeDirectory       HomeDirectoryFunc
	absolutePath        AbsolutePathFunc
	homeDirectoryOnce   sync.Once
	resolvedHome        string
	homeDirectoryFailed bool
}

// NewRootPathResolver constructs a resolver backed by os.UserHomeDir and filepath.Abs.
func NewRootPathResolver() *RootPathResolver {
	return NewRootPathResolverWith(os.UserHomeDir, filepath.Abs)
}

// NewRootPathResolverWith constructs a resolver with custom collaborators. Nil collaborators fall
// back to the operating system lookups.
func NewRootPathResolverWith(homeDirectory HomeDirectoryFunc, absolutePath AbsolutePathFunc) *RootPathResolver {
	if homeDirectory == nil {
		homeDirectory = os.UserHomeDir
	}
	if absolutePath == nil {
		absolutePath = filepath.Abs
	}
	return &RootPathResolver{homeDirectory: homeDirectory, absolutePath: absolutePath}
}

// Resolve trims, expands, and absolutizes the provided root path. An empty input resolves the current directory.
func (resolver *RootPathResolver) Resolve(rawRootPath string) (string, error) {
	trimmedRootPath := strings.TrimSpace(rawRootPath)
	if len(trimmedRootPath) == 0 {
		trimmedRootPath = currentDirectoryReferenceConstant
	}

	expandedRootPath := resolver.expandHomeDirectory(trimmedRootPath)
	absoluteRootPath, absoluteError := resolver.absolutePath(expandedRootPath)
	if absoluteError != nil {
		return "", fmt.Errorf(rootPathResolutionErrorTemplate, rawRootPath, absoluteError)
	}
	if len(absoluteRootPath) == 0 {
		return "", ErrEmptyRootPath
	}

	return filepath.Clean(absoluteRootPath), nil
}

// expandHomeDirectory leaves ~user forms and paths without a known home untouched.
func (resolver *RootPathResolver) expandHomeDirectory(rootPath string) string {
	if !strings.HasPrefix(rootPath, homeDirectoryShortcutConstant) {
		return rootPath
	}

	remainder := filepath.FromSlash(strings.TrimPrefix(rootPath, homeDirectoryShortcutConstant))
	if len(remainder) > 0 && remainder[0] != filepath.Separator {
		return rootPath
	}

	homeDirectory, available := resolver.lookupHomeDirectory()
	if !available {
		return rootPath
	}
	return filepath.Join(homeDirectory, remainder)
}

func (resolver *RootPathResolver) lookupHomeDirectory() (string, bool) {
	resolver.homeDirectoryOnce.Do(func() {
		homeDirectory, lookupError := resolver.homeDirectory()
		if lookupError != nil || len(homeDirectory) == 0 {
			resolver.homeDirectoryFailed = true
			return
		}
		resolver.resolvedHome = homeDirectory
	})
	return resolver.resolvedHome, !resolver.homeDirectoryFailed
}
