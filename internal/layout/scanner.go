package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

const (
	readRootErrorTemplateConstant         = "unable to list archive root %s: %w"
	readDayDirectoryErrorTemplateConstant = "unable to list day directory %s: %w"
	directoryReaderMissingMessageConstant = "layout scanner directory reader not configured"
)

// ErrDirectoryReaderNotConfigured indicates a scanner constructed without a directory reader.
var ErrDirectoryReaderNotConfigured = errors.New(directoryReaderMissingMessageConstant)

// DirectoryReader lists directory entries.
type DirectoryReader interface {
	ReadDir(path string) ([]fs.DirEntry, error)
}

// DayDirectory is a day directory directly beneath the archive root.
type DayDirectory struct {
	Name string
	Path string
}

// InputFile is a puzzle input inside a day directory.
type InputFile struct {
	DayDirectory DayDirectory
	Name         string
	Path         string
	Kind         InputKind
}

// Scanner applies a Pattern to an archive root.
type Scanner struct {
	pattern Pattern
	reader  DirectoryReader
}

// NewScanner constructs a Scanner.
func NewScanner(pattern Pattern, reader DirectoryReader) (*Scanner, error) {
	if reader == nil {
		return nil, ErrDirectoryReaderNotConfigured
	}
	return &Scanner{pattern: pattern, reader: reader}, nil
}

// DayDirectories returns the day directories under root sorted by name.
func (scanner *Scanner) DayDirectories(root string) ([]DayDirectory, error) {
	entries, readError := scanner.reader.ReadDir(root)
	if readError != nil {
		return nil, fmt.Errorf(readRootErrorTemplateConstant, root, readError)
	}

	var dayDirectories []DayDirectory
	for _, entry := range entries {
		if !entry.IsDir() || !scanner.pattern.IsDayDirectoryName(entry.Name()) {
			continue
		}
		dayDirectories = append(dayDirectories, DayDirectory{
			Name: entry.Name(),
			Path: filepath.Join(root, entry.Name()),
		})
	}

	sort.Slice(dayDirectories, func(left int, right int) bool {
		return dayDirectories[left].Name < dayDirectories[right].Name
	})
	return dayDirectories, nil
}

// InputFiles returns the puzzle inputs of a day directory sorted by name.
func (scanner *Scanner) InputFiles(dayDirectory DayDirectory) ([]InputFile, error) {
	entries, readError := scanner.reader.ReadDir(dayDirectory.Path)
	if readError != nil {
		return nil, fmt.Errorf(readDayDirectoryErrorTemplateConstant, dayDirectory.Path, readError)
	}

	var inputFiles []InputFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !scanner.pattern.IsInputFileName(entry.Name()) {
			continue
		}
		inputFiles = append(inputFiles, InputFile{
			DayDirectory: dayDirectory,
			Name:         entry.Name(),
			Path:         filepath.Join(dayDirectory.Path, entry.Name()),
			Kind:         scanner.pattern.ClassifyInput(entry.Name()),
		})
	}

	sort.Slice(inputFiles, func(left int, right int) bool {
		return inputFiles[left].Name < inputFiles[right].Name
	})
	return inputFiles, nil
}

// DestinationPath returns where an input file is migrated to beneath root.
func (scanner *Scanner) DestinationPath(root string, inputFile InputFile) string {
	return filepath.Join(root, scanner.pattern.DestinationDirectory, scanner.pattern.DestinationFileName(inputFile.DayDirectory.Name, inputFile.Kind))
}

// DestinationDirectory returns the directory collecting migrated inputs beneath root.
func (scanner *Scanner) DestinationDirectory(root string) string {
	return filepath.Join(root, scanner.pattern.DestinationDirectory)
}

// Pattern returns the pattern applied by the scanner.
func (scanner *Scanner) Pattern() Pattern {
	return scanner.pattern
}
