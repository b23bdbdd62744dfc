package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/temirov/aocinputs/internal/archive/shared"
	"github.com/temirov/aocinputs/internal/layout"
)

const (
	promptTemplateConstant                   = "Migrate input files from directory %s? (y/n) "
	dayDirectoryHeaderTemplateConstant       = "%s\n"
	dayDirectoryFooterConstant               = "\n"
	planMoveMessageConstant                  = "PLAN-MOVE: %s → %s\n"
	planOverwriteMessageConstant             = "PLAN-MOVE (overwrite): %s → %s\n"
	planSkipExistsMessageConstant            = "PLAN-SKIP (target exists): %s\n"
	planConflictMessageConstant              = "PLAN-CONFLICT (target exists): %s → %s\n"
	planSkipDestinationMissingMessage        = "PLAN-SKIP (destination missing): %s\n"
	skipExistsMessageConstant                = "SKIP (target exists): %s\n"
	successMessageConstant                   = "Moved %s → %s\n"
	errorMessageTemplateConstant             = "ERROR: %v\n"
	destinationPermissionsConstant           = fs.FileMode(0o755)
	rootNotDirectoryMessageConstant          = "archive root is not a directory"
	destinationExistsMessageConstant         = "target exists"
	fileSystemMissingMessageConstant         = "input migration filesystem not configured"
	prompterMissingMessageConstant           = "input migration prompter not configured"
	rootResolutionErrorTemplateConstant      = "unable to resolve archive root %s: %w"
	rootInspectionErrorTemplateConstant      = "unable to inspect archive root %s: %w"
	rootNotDirectoryErrorTemplateConstant    = "%w: %s"
	confirmationErrorTemplateConstant        = "unable to read confirmation: %w"
	scanErrorTemplateConstant                = "unable to scan archive: %w"
	patternErrorTemplateConstant             = "invalid layout: %w"
	destinationExistsErrorTemplateConstant   = "%w: %s → %s"
	destinationCreationErrorTemplateConstant = "unable to create destination %s: %w"
	destinationInspectionErrorTemplate       = "unable to inspect %s: %w"
	moveErrorTemplateConstant                = "move failed for %s → %s: %w"
	logMessageMigrationStartedConstant       = "Input migration started"
	logMessageMigrationCompletedConstant     = "Input migration completed"
	logMessageMigrationDeclinedConstant      = "Input migration declined"
	logMessageFileMovedConstant              = "Input file moved"
	logMessageFileFailedConstant             = "Input file migration failed"
	logMessageDirectoryFailedConstant        = "Day directory scan failed"
	logFieldRunIdentifierConstant            = "run_id"
	logFieldRootConstant                     = "root"
	logFieldDryRunConstant                   = "dry_run"
	logFieldConflictPolicyConstant           = "conflict_policy"
	logFieldSourceConstant                   = "source"
	logFieldDestinationConstant              = "destination"
	logFieldDayDirectoryConstant             = "day_directory"
	logFieldDayDirectoriesConstant           = "day_directories"
	logFieldMovedConstant                    = "moved"
	logFieldPlannedConstant                  = "planned"
	logFieldSkippedConstant                  = "skipped"
	logFieldFailedConstant                   = "failed"
	logFieldDurationConstant                 = "duration"
)

var (
	// ErrRootNotDirectory indicates an archive root that does not name a directory.
	ErrRootNotDirectory = errors.New(rootNotDirectoryMessageConstant)
	// ErrDestinationExists indicates a migration target that already exists under ConflictFail.
	ErrDestinationExists = errors.New(destinationExistsMessageConstant)

	errFileSystemMissing = errors.New(fileSystemMissingMessageConstant)
	errPrompterMissing   = errors.New(prompterMissingMessageConstant)
)

// Options configures a migration run.
type Options struct {
	Root               string
	DryRun             bool
	ConfirmationPolicy shared.ConfirmationPolicy
	ConflictPolicy     shared.ConflictPolicy
	EnsureDestination  bool
}

// Dependencies supplies collaborators required to migrate input files.
type Dependencies struct {
	Logger     *zap.Logger
	FileSystem shared.FileSystem
	Prompter   shared.ConfirmationPrompter
	Clock      shared.Clock
	Pattern    layout.Pattern
	Output     io.Writer
	Errors     io.Writer
}

// Move records a single input file relocation.
type Move struct {
	Source      string
	Destination string
}

// Result summarizes a migration run.
type Result struct {
	RunIdentifier  string
	Root           string
	DayDirectories int
	Moves          []Move
	Planned        []Move
	Skipped        []Move
	Failed         int
}

// Service migrates input files for an archive.
type Service struct {
	logger     *zap.Logger
	fileSystem shared.FileSystem
	prompter   shared.ConfirmationPrompter
	clock      shared.Clock
	pattern    layout.Pattern
	output     shared.Reporter
	errors     shared.Reporter
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, errFileSystemMissing
	}
	if dependencies.Prompter == nil {
		return nil, errPrompterMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clock := dependencies.Clock
	if clock == nil {
		clock = shared.SystemClock{}
	}

	return &Service{
		logger:     logger,
		fileSystem: dependencies.FileSystem,
		prompter:   dependencies.Prompter,
		clock:      clock,
		pattern:    dependencies.Pattern.Sanitize(),
		output:     shared.NewWriterReporter(dependencies.Output),
		errors:     shared.NewWriterReporter(dependencies.Errors),
	}, nil
}

// Run migrates every input file beneath options.Root.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	if patternError := service.pattern.Validate(); patternError != nil {
		return Result{}, fmt.Errorf(patternErrorTemplateConstant, patternError)
	}

	root, rootError := service.resolveRoot(options.Root)
	if rootError != nil {
		return Result{}, rootError
	}

	result := Result{RunIdentifier: uuid.NewString(), Root: root}
	runLogger := service.logger.With(zap.String(logFieldRunIdentifierConstant, result.RunIdentifier))

	if !options.DryRun && options.ConfirmationPolicy.ShouldPrompt() {
		confirmed, promptError := service.prompter.Confirm(fmt.Sprintf(promptTemplateConstant, root))
		if promptError != nil {
			return result, fmt.Errorf(confirmationErrorTemplateConstant, promptError)
		}
		if !confirmed {
			service.output.Printf(shared.AbortedMessageConstant)
			runLogger.Info(logMessageMigrationDeclinedConstant, zap.String(logFieldRootConstant, root))
			return result, shared.ErrConfirmationDeclined
		}
	}

	scanner, scannerError := layout.NewScanner(service.pattern, service.fileSystem)
	if scannerError != nil {
		return result, scannerError
	}

	startedAt := service.clock.Now()
	conflictPolicy := options.ConflictPolicy
	if len(conflictPolicy) == 0 {
		conflictPolicy = shared.ConflictFail
	}
	runLogger.Info(
		logMessageMigrationStartedConstant,
		zap.String(logFieldRootConstant, root),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
		zap.String(logFieldConflictPolicyConstant, string(conflictPolicy)),
	)

	dayDirectories, scanError := scanner.DayDirectories(root)
	if scanError != nil {
		return result, fmt.Errorf(scanErrorTemplateConstant, scanError)
	}
	result.DayDirectories = len(dayDirectories)

	migration := &migrationRun{
		service:             service,
		logger:              runLogger,
		scanner:             scanner,
		root:                root,
		options:             options,
		conflictPolicy:      conflictPolicy,
		result:              &result,
		claimedDestinations: make(map[string]struct{}),
	}

	var failures error
	for _, dayDirectory := range dayDirectories {
		if contextError := executionContext.Err(); contextError != nil {
			failures = multierr.Append(failures, contextError)
			break
		}
		failures = multierr.Append(failures, migration.migrateDayDirectory(executionContext, dayDirectory))
	}

	result.Failed = len(multierr.Errors(failures))
	runLogger.Info(
		logMessageMigrationCompletedConstant,
		zap.String(logFieldRootConstant, root),
		zap.Int(logFieldDayDirectoriesConstant, result.DayDirectories),
		zap.Int(logFieldMovedConstant, len(result.Moves)),
		zap.Int(logFieldPlannedConstant, len(result.Planned)),
		zap.Int(logFieldSkippedConstant, len(result.Skipped)),
		zap.Int(logFieldFailedConstant, result.Failed),
		zap.Duration(logFieldDurationConstant, service.clock.Now().Sub(startedAt)),
	)

	return result, failures
}

func (service *Service) resolveRoot(rawRoot string) (string, error) {
	root, absError := service.fileSystem.Abs(rawRoot)
	if absError != nil {
		return "", fmt.Errorf(rootResolutionErrorTemplateConstant, rawRoot, absError)
	}

	rootInfo, statError := service.fileSystem.Stat(root)
	if statError != nil {
		return "", fmt.Errorf(rootInspectionErrorTemplateConstant, root, statError)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(rootNotDirectoryErrorTemplateConstant, ErrRootNotDirectory, root)
	}
	return root, nil
}

// migrationRun carries the state of a single Service.Run invocation.
// claimedDestinations holds targets moved or planned earlier in the run.
type migrationRun struct {
	service             *Service
	logger              *zap.Logger
	scanner             *layout.Scanner
	root                string
	options             Options
	conflictPolicy      shared.ConflictPolicy
	result              *Result
	destinationReady    bool
	claimedDestinations map[string]struct{}
}

func (migration *migrationRun) migrateDayDirectory(executionContext context.Context, dayDirectory layout.DayDirectory) error {
	service := migration.service
	service.output.Printf(dayDirectoryHeaderTemplateConstant, dayDirectory.Name)
	defer service.output.Printf(dayDirectoryFooterConstant)

	inputFiles, listError := migration.scanner.InputFiles(dayDirectory)
	if listError != nil {
		service.errors.Printf(errorMessageTemplateConstant, listError)
		migration.logger.Warn(logMessageDirectoryFailedConstant, zap.String(logFieldDayDirectoryConstant, dayDirectory.Path), zap.Error(listError))
		return listError
	}

	var failures error
	for _, inputFile := range inputFiles {
		if contextError := executionContext.Err(); contextError != nil {
			return multierr.Append(failures, contextError)
		}
		move := Move{Source: inputFile.Path, Destination: migration.scanner.DestinationPath(migration.root, inputFile)}
		if moveError := migration.migrateFile(move); moveError != nil {
			service.errors.Printf(errorMessageTemplateConstant, moveError)
			migration.logger.Warn(
				logMessageFileFailedConstant,
				zap.String(logFieldSourceConstant, move.Source),
				zap.String(logFieldDestinationConstant, move.Destination),
				zap.Error(moveError),
			)
			failures = multierr.Append(failures, moveError)
		}
	}
	return failures
}

func (migration *migrationRun) migrateFile(move Move) error {
	service := migration.service

	destinationExists, inspectionError := migration.destinationTaken(move.Destination)
	if inspectionError != nil {
		return inspectionError
	}

	if migration.options.DryRun {
		return migration.printPlan(move, destinationExists)
	}

	if destinationExists {
		switch migration.conflictPolicy {
		case shared.ConflictSkip:
			service.output.Printf(skipExistsMessageConstant, move.Destination)
			migration.result.Skipped = append(migration.result.Skipped, move)
			return nil
		case shared.ConflictOverwrite:
		default:
			return fmt.Errorf(destinationExistsErrorTemplateConstant, ErrDestinationExists, move.Source, move.Destination)
		}
	}

	if destinationError := migration.ensureDestination(); destinationError != nil {
		return destinationError
	}

	if moveError := service.fileSystem.MoveFile(move.Source, move.Destination); moveError != nil {
		return fmt.Errorf(moveErrorTemplateConstant, move.Source, move.Destination, moveError)
	}

	service.output.Printf(successMessageConstant, move.Source, move.Destination)
	migration.logger.Debug(logMessageFileMovedConstant, zap.String(logFieldSourceConstant, move.Source), zap.String(logFieldDestinationConstant, move.Destination))
	migration.result.Moves = append(migration.result.Moves, move)
	migration.claimedDestinations[move.Destination] = struct{}{}
	return nil
}

// printPlan reports what a real run would do with move. Under ConflictFail a conflict is
// returned as an error, as it is when the run is not a dry run.
func (migration *migrationRun) printPlan(move Move, destinationExists bool) error {
	output := migration.service.output

	if !migration.options.EnsureDestination {
		destinationDirectoryExists, _ := migration.pathExists(migration.scanner.DestinationDirectory(migration.root))
		if !destinationDirectoryExists {
			output.Printf(planSkipDestinationMissingMessage, migration.scanner.DestinationDirectory(migration.root))
			migration.result.Skipped = append(migration.result.Skipped, move)
			return nil
		}
	}

	if !destinationExists {
		output.Printf(planMoveMessageConstant, move.Source, move.Destination)
		migration.result.Planned = append(migration.result.Planned, move)
		migration.claimedDestinations[move.Destination] = struct{}{}
		return nil
	}

	switch migration.conflictPolicy {
	case shared.ConflictSkip:
		output.Printf(planSkipExistsMessageConstant, move.Destination)
		migration.result.Skipped = append(migration.result.Skipped, move)
	case shared.ConflictOverwrite:
		output.Printf(planOverwriteMessageConstant, move.Source, move.Destination)
		migration.result.Planned = append(migration.result.Planned, move)
	default:
		output.Printf(planConflictMessageConstant, move.Source, move.Destination)
		migration.result.Skipped = append(migration.result.Skipped, move)
		return fmt.Errorf(destinationExistsErrorTemplateConstant, ErrDestinationExists, move.Source, move.Destination)
	}
	return nil
}

func (migration *migrationRun) ensureDestination() error {
	if migration.destinationReady || !migration.options.EnsureDestination {
		return nil
	}
	destinationDirectory := migration.scanner.DestinationDirectory(migration.root)
	if creationError := migration.service.fileSystem.MkdirAll(destinationDirectory, destinationPermissionsConstant); creationError != nil {
		return fmt.Errorf(destinationCreationErrorTemplateConstant, destinationDirectory, creationError)
	}
	migration.destinationReady = true
	return nil
}

func (migration *migrationRun) destinationTaken(destination string) (bool, error) {
	if _, claimed := migration.claimedDestinations[destination]; claimed {
		return true, nil
	}
	return migration.pathExists(destination)
}

func (migration *migrationRun) pathExists(path string) (bool, error) {
	_, statError := migration.service.fileSystem.Stat(path)
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf(destinationInspectionErrorTemplate, path, statError)
}
