package migrate_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/aocinputs/internal/archive/shared"
	"github.com/temirov/aocinputs/internal/archive/testsupport"
	"github.com/temirov/aocinputs/internal/layout"
	"github.com/temirov/aocinputs/internal/migrate"
)

const (
	testDirectoryPermissionsConstant = 0o755
	testFilePermissionsConstant      = 0o644
	primaryContentsConstant          = "primary"
	exampleContentsConstant          = "example"
	staleContentsConstant            = "stale"
	completedLogMessageConstant      = "Input migration completed"
)

type serviceHarness struct {
	root       string
	fileSystem *testsupport.FileSystemStub
	prompter   *testsupport.PrompterStub
	output     *bytes.Buffer
	errors     *bytes.Buffer
	logs       *observer.ObservedLogs
	service    *migrate.Service
}

func newServiceHarness(testInstance *testing.T, files map[string]string, directories ...string) *serviceHarness {
	testInstance.Helper()

	root := testInstance.TempDir()
	for _, directory := range directories {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(root, directory), testDirectoryPermissionsConstant))
	}
	for relativePath, contents := range files {
		absolutePath := filepath.Join(root, relativePath)
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), testDirectoryPermissionsConstant))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(contents), testFilePermissionsConstant))
	}

	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	harness := &serviceHarness{
		root:       root,
		fileSystem: &testsupport.FileSystemStub{MoveFailures: map[string]error{}, ReadDirFailures: map[string]error{}},
		prompter:   &testsupport.PrompterStub{Confirmed: true},
		output:     &bytes.Buffer{},
		errors:     &bytes.Buffer{},
		logs:       observedLogs,
	}

	service, creationError := migrate.NewService(migrate.Dependencies{
		Logger:     zap.New(observerCore),
		FileSystem: harness.fileSystem,
		Prompter:   harness.prompter,
		Pattern:    layout.DefaultPattern(),
		Output:     harness.output,
		Errors:     harness.errors,
	})
	require.NoError(testInstance, creationError)
	harness.service = service
	return harness
}

func (harness *serviceHarness) path(relativePath string) string {
	return filepath.Join(harness.root, relativePath)
}

func (harness *serviceHarness) requireContents(testInstance *testing.T, relativePath string, expected string) {
	testInstance.Helper()
	contents, readError := os.ReadFile(harness.path(relativePath))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, expected, string(contents))
}

func (harness *serviceHarness) requireMissing(testInstance *testing.T, relativePath string) {
	testInstance.Helper()
	_, statError := os.Stat(harness.path(relativePath))
	require.True(testInstance, os.IsNotExist(statError), relativePath)
}

func defaultOptions(root string) migrate.Options {
	return migrate.Options{
		Root:               root,
		ConfirmationPolicy: shared.ConfirmationPrompt,
		ConflictPolicy:     shared.ConflictFail,
		EnsureDestination:  true,
	}
}

func TestServiceRunMigratesArchive(testInstance *testing.T) {
	harness := newServiceHarness(
		testInstance,
		map[string]string{
			"day-01/input.txt":         primaryContentsConstant,
			"day-01/input-example.txt": exampleContentsConstant,
			"day-01/day-01.cpp":        "source",
			"day-02/input.txt":         primaryContentsConstant,
			"day-xy/input.txt":         "template",
			"aocio/input.txt":          "library",
			"day-03/notes.txt":         "notes",
			"day-04/input.cpp":         "wrong extension",
		},
		"input",
	)

	result, runError := harness.service.Run(context.Background(), defaultOptions(harness.root))
	require.NoError(testInstance, runError)

	harness.requireContents(testInstance, "input/day-01.txt", primaryContentsConstant)
	harness.requireContents(testInstance, "input/day-01-example.txt", exampleContentsConstant)
	harness.requireContents(testInstance, "input/day-02.txt", primaryContentsConstant)
	harness.requireMissing(testInstance, "day-01/input.txt")
	harness.requireMissing(testInstance, "day-01/input-example.txt")
	harness.requireMissing(testInstance, "day-02/input.txt")
	harness.requireContents(testInstance, "day-xy/input.txt", "template")
	harness.requireContents(testInstance, "aocio/input.txt", "library")
	harness.requireContents(testInstance, "day-01/day-01.cpp", "source")
	harness.requireContents(testInstance, "day-03/notes.txt", "notes")
	harness.requireContents(testInstance, "day-04/input.cpp", "wrong extension")

	require.Len(testInstance, harness.prompter.Prompts, 1)
	require.Equal(testInstance, "Migrate input files from directory "+harness.root+"? (y/n) ", harness.prompter.Prompts[0])

	expectedOutput := strings.Join([]string{
		"day-01",
		"Moved " + harness.path("day-01/input-example.txt") + " → " + harness.path("input/day-01-example.txt"),
		"Moved " + harness.path("day-01/input.txt") + " → " + harness.path("input/day-01.txt"),
		"",
		"day-02",
		"Moved " + harness.path("day-02/input.txt") + " → " + harness.path("input/day-02.txt"),
		"",
		"day-03",
		"",
		"day-04",
		"",
		"",
	}, "\n")
	require.Equal(testInstance, expectedOutput, harness.output.String())
	require.Empty(testInstance, harness.errors.String())

	require.Equal(testInstance, 4, result.DayDirectories)
	require.Len(testInstance, result.Moves, 3)
	require.Zero(testInstance, result.Failed)
	_, parseError := uuid.Parse(result.RunIdentifier)
	require.NoError(testInstance, parseError)

	completedEntries := harness.logs.FilterMessage(completedLogMessageConstant).All()
	require.Len(testInstance, completedEntries, 1)
	require.Equal(testInstance, result.RunIdentifier, completedEntries[0].ContextMap()["run_id"])
	require.EqualValues(testInstance, 3, completedEntries[0].ContextMap()["moved"])
}

func TestServiceRunCreatesMissingDestination(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{"day-05/input.txt": primaryContentsConstant})

	_, runError := harness.service.Run(context.Background(), defaultOptions(harness.root))
	require.NoError(testInstance, runError)

	destinationInfo, statError := os.Stat(harness.path("input"))
	require.NoError(testInstance, statError)
	require.True(testInstance, destinationInfo.IsDir())
	harness.requireContents(testInstance, "input/day-05.txt", primaryContentsConstant)
}

func TestServiceRunDeclinedConfirmationLeavesArchiveUntouched(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{"day-01/input.txt": primaryContentsConstant}, "input")
	harness.prompter.Confirmed = false

	_, runError := harness.service.Run(context.Background(), defaultOptions(harness.root))
	require.ErrorIs(testInstance, runError, shared.ErrConfirmationDeclined)
	require.Equal(testInstance, "Aborted.\n", harness.output.String())
	harness.requireContents(testInstance, "day-01/input.txt", primaryContentsConstant)
	harness.requireMissing(testInstance, "input/day-01.txt")
	require.Empty(testInstance, harness.fileSystem.MovedSources)
}

func TestServiceRunPropagatesPromptFailures(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{"day-01/input.txt": primaryContentsConstant})
	harness.prompter.Error = errors.New("stdin closed")

	_, runError := harness.service.Run(context.Background(), defaultOptions(harness.root))
	require.Error(testInstance, runError)
	require.NotErrorIs(testInstance, runError, shared.ErrConfirmationDeclined)
	harness.requireContents(testInstance, "day-01/input.txt", primaryContentsConstant)
}

func TestServiceRunForceSkipsPrompt(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{"day-01/input.txt": primaryContentsConstant})
	harness.prompter.Confirmed = false

	options := defaultOptions(harness.root)
	options.ConfirmationPolicy = shared.ConfirmationAssumeYes

	_, runError := harness.service.Run(context.Background(), options)
	require.NoError(testInstance, runError)
	require.Empty(testInstance, harness.prompter.Prompts)
	harness.requireContents(testInstance, "input/day-01.txt", primaryContentsConstant)
}

func TestServiceRunDryRunPrintsPlanWithoutMutations(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{
		"day-01/input.txt":         primaryContentsConstant,
		"day-01/input-example.txt": exampleContentsConstant,
	})

	options := defaultOptions(harness.root)
	options.DryRun = true

	result, runError := harness.service.Run(context.Background(), options)
	require.NoError(testInstance, runError)
	require.Empty(testInstance, harness.prompter.Prompts)
	require.Empty(testInstance, harness.fileSystem.MovedSources)
	harness.requireMissing(testInstance, "input")
	harness.requireContents(testInstance, "day-01/input.txt", primaryContentsConstant)

	require.Contains(testInstance, harness.output.String(), "PLAN-MOVE: "+harness.path("day-01/input-example.txt")+" → "+harness.path("input/day-01-example.txt")+"\n")
	require.Contains(testInstance, harness.output.String(), "PLAN-MOVE: "+harness.path("day-01/input.txt")+" → "+harness.path("input/day-01.txt")+"\n")
	require.Len(testInstance, result.Planned, 2)
	require.Empty(testInstance, result.Moves)
}

func TestServiceRunConflictPolicies(testInstance *testing.T) {
	testCases := []struct {
		name               string
		policy             shared.ConflictPolicy
		dryRun             bool
		expectError        bool
		expectedContents   string
		expectSourceKept   bool
		expectedOutputLine string
	}{
		{name: "fail", policy: shared.ConflictFail, expectError: true, expectedContents: staleContentsConstant, expectSourceKept: true},
		{name: "skip", policy: shared.ConflictSkip, expectedContents: staleContentsConstant, expectSourceKept: true, expectedOutputLine: "SKIP (target exists): "},
		{name: "overwrite", policy: shared.ConflictOverwrite, expectedContents: primaryContentsConstant, expectedOutputLine: "Moved "},
		{name: "fail_dry_run", policy: shared.ConflictFail, dryRun: true, expectError: true, expectedContents: staleContentsConstant, expectSourceKept: true, expectedOutputLine: "PLAN-CONFLICT (target exists): "},
		{name: "skip_dry_run", policy: shared.ConflictSkip, dryRun: true, expectedContents: staleContentsConstant, expectSourceKept: true, expectedOutputLine: "PLAN-SKIP (target exists): "},
		{name: "overwrite_dry_run", policy: shared.ConflictOverwrite, dryRun: true, expectedContents: staleContentsConstant, expectSourceKept: true, expectedOutputLine: "PLAN-MOVE (overwrite): "},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newServiceHarness(testInstance, map[string]string{
				"day-01/input.txt": primaryContentsConstant,
				"input/day-01.txt": staleContentsConstant,
				"day-02/input.txt": primaryContentsConstant,
			})

			options := defaultOptions(harness.root)
			options.ConflictPolicy = testCase.policy
			options.DryRun = testCase.dryRun

			_, runError := harness.service.Run(context.Background(), options)
			if testCase.expectError {
				require.ErrorIs(testInstance, runError, migrate.ErrDestinationExists)
				require.Contains(testInstance, harness.errors.String(), "ERROR: target exists: "+harness.path("day-01/input.txt"))
			} else {
				require.NoError(testInstance, runError)
			}

			harness.requireContents(testInstance, "input/day-01.txt", testCase.expectedContents)
			if testCase.expectSourceKept {
				harness.requireContents(testInstance, "day-01/input.txt", primaryContentsConstant)
			} else {
				harness.requireMissing(testInstance, "day-01/input.txt")
			}
			if len(testCase.expectedOutputLine) > 0 {
				require.Contains(testInstance, harness.output.String(), testCase.expectedOutputLine)
			}

			if testCase.dryRun {
				harness.requireContents(testInstance, "day-02/input.txt", primaryContentsConstant)
			} else {
				harness.requireContents(testInstance, "input/day-02.txt", primaryContentsConstant)
			}
		})
	}
}

func TestServiceRunTreatsEarlierTargetsAsExisting(testInstance *testing.T) {
	const (
		secondExampleContentsConstant = "second example"
		firstSourceConstant           = "day-01/input-example-2.txt"
		secondSourceConstant          = "day-01/input-example.txt"
		sharedDestinationConstant     = "input/day-01-example.txt"
	)

	testCases := []struct {
		name                string
		dryRun              bool
		expectedOutputLines func(harness *serviceHarness) []string
	}{
		{
			name:   "dry_run",
			dryRun: true,
			expectedOutputLines: func(harness *serviceHarness) []string {
				return []string{
					"PLAN-MOVE: " + harness.path(firstSourceConstant) + " → " + harness.path(sharedDestinationConstant),
					"PLAN-CONFLICT (target exists): " + harness.path(secondSourceConstant) + " → " + harness.path(sharedDestinationConstant),
				}
			},
		},
		{
			name: "real_run",
			expectedOutputLines: func(harness *serviceHarness) []string {
				return []string{"Moved " + harness.path(firstSourceConstant) + " → " + harness.path(sharedDestinationConstant)}
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newServiceHarness(testInstance, map[string]string{
				firstSourceConstant:  secondExampleContentsConstant,
				secondSourceConstant: exampleContentsConstant,
			}, "input")

			options := defaultOptions(harness.root)
			options.DryRun = testCase.dryRun

			result, runError := harness.service.Run(context.Background(), options)
			require.ErrorIs(testInstance, runError, migrate.ErrDestinationExists)
			require.Len(testInstance, multierr.Errors(runError), 1)
			require.Equal(testInstance, 1, result.Failed)
			require.Contains(testInstance, harness.errors.String(), "ERROR: target exists: "+harness.path(secondSourceConstant)+" → "+harness.path(sharedDestinationConstant))

			for _, expectedLine := range testCase.expectedOutputLines(harness) {
				require.Contains(testInstance, harness.output.String(), expectedLine+"\n")
			}

			harness.requireContents(testInstance, secondSourceConstant, exampleContentsConstant)
			if testCase.dryRun {
				harness.requireContents(testInstance, firstSourceConstant, secondExampleContentsConstant)
				harness.requireMissing(testInstance, sharedDestinationConstant)
				require.Len(testInstance, result.Planned, 1)
				require.Empty(testInstance, result.Moves)
			} else {
				harness.requireMissing(testInstance, firstSourceConstant)
				harness.requireContents(testInstance, sharedDestinationConstant, secondExampleContentsConstant)
				require.Len(testInstance, result.Moves, 1)
			}
		})
	}
}

func TestServiceRunContinuesAfterFailures(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{
		"day-01/input.txt": primaryContentsConstant,
		"day-02/input.txt": primaryContentsConstant,
		"day-03/input.txt": primaryContentsConstant,
	}, "input")

	moveFailure := errors.New("device busy")
	listFailure := errors.New("permission denied")
	harness.fileSystem.MoveFailures[harness.path("day-01/input.txt")] = moveFailure
	harness.fileSystem.ReadDirFailures[harness.path("day-02")] = listFailure

	result, runError := harness.service.Run(context.Background(), defaultOptions(harness.root))
	require.Error(testInstance, runError)
	require.ErrorIs(testInstance, runError, moveFailure)
	require.ErrorIs(testInstance, runError, listFailure)
	require.Len(testInstance, multierr.Errors(runError), 2)
	require.Equal(testInstance, 2, result.Failed)

	harness.requireContents(testInstance, "day-01/input.txt", primaryContentsConstant)
	harness.requireContents(testInstance, "day-02/input.txt", primaryContentsConstant)
	harness.requireContents(testInstance, "input/day-03.txt", primaryContentsConstant)
	require.Contains(testInstance, harness.errors.String(), "ERROR: move failed for "+harness.path("day-01/input.txt"))
	require.Contains(testInstance, harness.output.String(), "day-03\nMoved ")

	failureEntries := harness.logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(testInstance, failureEntries, 2)
}

func TestServiceRunWithoutDestinationCreationReportsMissingDirectory(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{
		"day-01/input.txt": primaryContentsConstant,
		"day-02/input.txt": primaryContentsConstant,
	})

	options := defaultOptions(harness.root)
	options.EnsureDestination = false

	result, runError := harness.service.Run(context.Background(), options)
	require.Error(testInstance, runError)
	require.Equal(testInstance, 2, result.Failed)
	harness.requireMissing(testInstance, "input")
	harness.requireContents(testInstance, "day-01/input.txt", primaryContentsConstant)

	options.DryRun = true
	harness.output.Reset()
	_, dryRunError := harness.service.Run(context.Background(), options)
	require.NoError(testInstance, dryRunError)
	require.Contains(testInstance, harness.output.String(), "PLAN-SKIP (destination missing): "+harness.path("input"))
}

func TestServiceRunReportsDestinationCreationFailure(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{"day-01/input.txt": primaryContentsConstant})
	harness.fileSystem.MkdirFailure = errors.New("read-only filesystem")

	_, runError := harness.service.Run(context.Background(), defaultOptions(harness.root))
	require.ErrorIs(testInstance, runError, harness.fileSystem.MkdirFailure)
	harness.requireContents(testInstance, "day-01/input.txt", primaryContentsConstant)
}

func TestServiceRunRejectsInvalidRoots(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{"notes.txt": "notes"})

	_, fileRootError := harness.service.Run(context.Background(), defaultOptions(harness.path("notes.txt")))
	require.ErrorIs(testInstance, fileRootError, migrate.ErrRootNotDirectory)

	_, missingRootError := harness.service.Run(context.Background(), defaultOptions(harness.path("missing")))
	require.ErrorIs(testInstance, missingRootError, os.ErrNotExist)

	require.Empty(testInstance, harness.prompter.Prompts)
}

func TestServiceRunStopsWhenContextCancelled(testInstance *testing.T) {
	harness := newServiceHarness(testInstance, map[string]string{"day-01/input.txt": primaryContentsConstant})

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, runError := harness.service.Run(cancelledContext, defaultOptions(harness.root))
	require.ErrorIs(testInstance, runError, context.Canceled)
	harness.requireContents(testInstance, "day-01/input.txt", primaryContentsConstant)
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, missingFileSystemError := migrate.NewService(migrate.Dependencies{Prompter: &testsupport.PrompterStub{}})
	require.Error(testInstance, missingFileSystemError)

	_, missingPrompterError := migrate.NewService(migrate.Dependencies{FileSystem: &testsupport.FileSystemStub{}})
	require.Error(testInstance, missingPrompterError)
}
