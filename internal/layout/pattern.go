package layout

import (
	"errors"
	"path"
	"strings"
)

const (
	// DefaultDayMarkerConstant is the substring identifying day directories.
	DefaultDayMarkerConstant = "day-"
	// DefaultPlaceholderConstant names the template directory that is never treated as a day.
	DefaultPlaceholderConstant = "day-xy"
	// DefaultInputMarkerConstant is the substring identifying puzzle input files.
	DefaultInputMarkerConstant = "input"
	// DefaultInputExtensionConstant is the extension required of puzzle input files.
	DefaultInputExtensionConstant = ".txt"
	// DefaultExampleMarkerConstant is the substring identifying example inputs.
	DefaultExampleMarkerConstant = "example"
	// DefaultExampleSuffixConstant is appended to the day name of migrated example inputs.
	DefaultExampleSuffixConstant = "-example"
	// DefaultDestinationDirectoryConstant is the directory collecting migrated inputs.
	DefaultDestinationDirectoryConstant = "input"
	// DefaultTrackedFileNameConstant is the per-day file purged from history.
	DefaultTrackedFileNameConstant = "input.txt"

	missingDayMarkerMessageConstant       = "layout day marker must not be empty"
	missingInputMarkerMessageConstant     = "layout input marker must not be empty"
	invalidDestinationMessageConstant     = "layout destination must be a single directory name"
	invalidTrackedFileNameMessageConstant = "layout tracked file must be a single file name"
)

var (
	// ErrMissingDayMarker indicates a pattern without a day marker, which would match every directory.
	ErrMissingDayMarker = errors.New(missingDayMarkerMessageConstant)
	// ErrMissingInputMarker indicates a pattern without an input marker.
	ErrMissingInputMarker = errors.New(missingInputMarkerMessageConstant)
	// ErrInvalidDestination indicates a destination that is not a plain directory name.
	ErrInvalidDestination = errors.New(invalidDestinationMessageConstant)
	// ErrInvalidTrackedFileName indicates a tracked file that is not a plain file name.
	ErrInvalidTrackedFileName = errors.New(invalidTrackedFileNameMessageConstant)
)

// InputKind classifies a puzzle input file.
type InputKind string

const (
	// InputKindPrimary identifies the personal puzzle input.
	InputKindPrimary InputKind = "primary"
	// InputKindExample identifies an example input taken from the puzzle text.
	InputKindExample InputKind = "example"
)

// Pattern captures the naming conventions of an exercise archive.
type Pattern struct {
	DayMarker            string   `mapstructure:"day_marker"`
	Placeholders         []string `mapstructure:"placeholders"`
	InputMarker          string   `mapstructure:"input_marker"`
	InputExtension       string   `mapstructure:"input_extension"`
	ExampleMarker        string   `mapstructure:"example_marker"`
	ExampleSuffix        string   `mapstructure:"example_suffix"`
	DestinationDirectory string   `mapstructure:"destination"`
	TrackedFileName      string   `mapstructure:"tracked_file"`
}

// DefaultPattern returns the conventions used by the archive scripts.
func DefaultPattern() Pattern {
	return Pattern{
		DayMarker:            DefaultDayMarkerConstant,
		Placeholders:         []string{DefaultPlaceholderConstant},
		InputMarker:          DefaultInputMarkerConstant,
		InputExtension:       DefaultInputExtensionConstant,
		ExampleMarker:        DefaultExampleMarkerConstant,
		ExampleSuffix:        DefaultExampleSuffixConstant,
		DestinationDirectory: DefaultDestinationDirectoryConstant,
		TrackedFileName:      DefaultTrackedFileNameConstant,
	}
}

// Sanitize trims every field and substitutes defaults for blank values.
func (pattern Pattern) Sanitize() Pattern {
	defaults := DefaultPattern()
	sanitized := Pattern{
		DayMarker:            valueOrDefault(pattern.DayMarker, defaults.DayMarker),
		InputMarker:          valueOrDefault(pattern.InputMarker, defaults.InputMarker),
		InputExtension:       valueOrDefault(pattern.InputExtension, defaults.InputExtension),
		ExampleMarker:        valueOrDefault(pattern.ExampleMarker, defaults.ExampleMarker),
		ExampleSuffix:        valueOrDefault(pattern.ExampleSuffix, defaults.ExampleSuffix),
		DestinationDirectory: valueOrDefault(pattern.DestinationDirectory, defaults.DestinationDirectory),
		TrackedFileName:      valueOrDefault(pattern.TrackedFileName, defaults.TrackedFileName),
	}

	for _, placeholder := range pattern.Placeholders {
		trimmedPlaceholder := strings.TrimSpace(placeholder)
		if len(trimmedPlaceholder) == 0 {
			continue
		}
		sanitized.Placeholders = append(sanitized.Placeholders, trimmedPlaceholder)
	}
	if pattern.Placeholders == nil {
		sanitized.Placeholders = defaults.Placeholders
	}

	return sanitized
}

// Validate reports patterns that cannot be applied safely.
func (pattern Pattern) Validate() error {
	if len(strings.TrimSpace(pattern.DayMarker)) == 0 {
		return ErrMissingDayMarker
	}
	if len(strings.TrimSpace(pattern.InputMarker)) == 0 {
		return ErrMissingInputMarker
	}
	if !isPlainName(pattern.DestinationDirectory) {
		return ErrInvalidDestination
	}
	if !isPlainName(pattern.TrackedFileName) {
		return ErrInvalidTrackedFileName
	}
	return nil
}

// IsDayDirectoryName reports whether a root entry name designates a day directory.
func (pattern Pattern) IsDayDirectoryName(name string) bool {
	if !strings.Contains(name, pattern.DayMarker) {
		return false
	}
	if name == pattern.DestinationDirectory {
		return false
	}
	for _, placeholder := range pattern.Placeholders {
		if name == placeholder {
			return false
		}
	}
	return true
}

// IsInputFileName reports whether a file name inside a day directory designates a puzzle input.
func (pattern Pattern) IsInputFileName(name string) bool {
	return strings.Contains(name, pattern.InputMarker) && strings.HasSuffix(name, pattern.InputExtension)
}

// ClassifyInput returns the kind of an input file name.
func (pattern Pattern) ClassifyInput(name string) InputKind {
	if len(pattern.ExampleMarker) > 0 && strings.Contains(name, pattern.ExampleMarker) {
		return InputKindExample
	}
	return InputKindPrimary
}

// DestinationFileName returns the migrated file name for an input of the given kind.
func (pattern Pattern) DestinationFileName(dayDirectoryName string, kind InputKind) string {
	if kind == InputKindExample {
		return dayDirectoryName + pattern.ExampleSuffix + pattern.InputExtension
	}
	return dayDirectoryName + pattern.InputExtension
}

// TrackedPath returns the repository-relative path purged from history for a day directory.
// Git pathspecs always use forward slashes.
func (pattern Pattern) TrackedPath(dayDirectoryName string) string {
	return path.Join(dayDirectoryName, pattern.TrackedFileName)
}

func valueOrDefault(value string, fallback string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallback
	}
	return trimmedValue
}

func isPlainName(name string) bool {
	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) == 0 || trimmedName == "." || trimmedName == ".." {
		return false
	}
	return !strings.ContainsAny(trimmedName, `/\`)
}
