package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/temirov/aocinputs/internal/archive/shared"
	"github.com/temirov/aocinputs/internal/layout"
)

const (
	promptConstant                       = "Remove input files from git history? (y/n) "
	dayDirectoryHeaderTemplateConstant   = "%s\n"
	runningCommandTemplateConstant       = "Running command: '%s'\n"
	planRewriteTemplateConstant          = "PLAN-REWRITE: %s\n"
	commandOutputTemplateConstant        = "%s\n"
	errorMessageTemplateConstant         = "ERROR: %v\n"
	rootNotDirectoryMessageConstant      = "archive root is not a directory"
	notGitRepositoryMessageConstant      = "archive root is not inside a git work tree"
	fileSystemMissingMessageConstant     = "history rewrite filesystem not configured"
	gitExecutorMissingMessageConstant    = "history rewrite git executor not configured"
	prompterMissingMessageConstant       = "history rewrite prompter not configured"
	rootResolutionErrorTemplateConstant  = "unable to resolve archive root %s: %w"
	rootInspectionErrorTemplateConstant  = "unable to inspect archive root %s: %w"
	wrappedSentinelTemplateConstant      = "%w: %s"
	wrappedSentinelCauseTemplateConstant = "%w: %s: %v"
	confirmationErrorTemplateConstant    = "unable to read confirmation: %w"
	scanErrorTemplateConstant            = "unable to scan archive: %w"
	patternErrorTemplateConstant         = "invalid layout: %w"
	rewriteErrorTemplateConstant         = "history rewrite failed for %s: %w"
	logMessageRewriteStartedConstant     = "History rewrite started"
	logMessageRewriteCompletedConstant   = "History rewrite completed"
	logMessageRewriteDeclinedConstant    = "History rewrite declined"
	logMessageDirectoryRewrittenConstant = "Input file purged from history"
	logMessageDirectoryFailedConstant    = "History rewrite failed for day directory"
	logFieldRunIdentifierConstant        = "run_id"
	logFieldRootConstant                 = "root"
	logFieldDryRunConstant               = "dry_run"
	logFieldTrackedPathConstant          = "tracked_path"
	logFieldDayDirectoriesConstant       = "day_directories"
	logFieldRewrittenConstant            = "rewritten"
	logFieldPlannedConstant              = "planned"
	logFieldFailedConstant               = "failed"
	logFieldDurationConstant             = "duration"
)

var (
	// ErrRootNotDirectory indicates an archive root that does not name a directory.
	ErrRootNotDirectory = errors.New(rootNotDirectoryMessageConstant)
	// ErrNotGitRepository indicates an archive root outside of a git work tree.
	ErrNotGitRepository = errors.New(notGitRepositoryMessageConstant)

	errFileSystemMissing  = errors.New(fileSystemMissingMessageConstant)
	errGitExecutorMissing = errors.New(gitExecutorMissingMessageConstant)
	errPrompterMissing    = errors.New(prompterMissingMessageConstant)
)

// Options configures a history rewrite run.
type Options struct {
	Root               string
	DryRun             bool
	ConfirmationPolicy shared.ConfirmationPolicy
}

// Dependencies supplies collaborators required to rewrite history.
type Dependencies struct {
	Logger      *zap.Logger
	FileSystem  shared.FileSystem
	GitExecutor shared.GitExecutor
	Prompter    shared.ConfirmationPrompter
	Clock       shared.Clock
	Pattern     layout.Pattern
	Output      io.Writer
	Errors      io.Writer
}

// Result summarizes a history rewrite run.
type Result struct {
	RunIdentifier  string
	Root           string
	DayDirectories int
	Rewritten      []string
	Planned        []string
	Failed         int
}

// Service purges tracked input files from git history.
type Service struct {
	logger      *zap.Logger
	fileSystem  shared.FileSystem
	gitExecutor shared.GitExecutor
	prompter    shared.ConfirmationPrompter
	clock       shared.Clock
	pattern     layout.Pattern
	output      shared.Reporter
	errors      shared.Reporter
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, errFileSystemMissing
	}
	if dependencies.GitExecutor == nil {
		return nil, errGitExecutorMissing
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
		logger:      logger,
		fileSystem:  dependencies.FileSystem,
		gitExecutor: dependencies.GitExecutor,
		prompter:    dependencies.Prompter,
		clock:       clock,
		pattern:     dependencies.Pattern.Sanitize(),
		output:      shared.NewWriterReporter(dependencies.Output),
		errors:      shared.NewWriterReporter(dependencies.Errors),
	}, nil
}

// Run rewrites history for every day directory beneath options.Root.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	if patternError := service.pattern.Validate(); patternError != nil {
		return Result{}, fmt.Errorf(patternErrorTemplateConstant, patternError)
	}

	root, rootError := service.resolveRoot(options.Root)
	if rootError != nil {
		return Result{}, rootError
	}

	if repositoryError := service.requireWorkTree(executionContext, root); repositoryError != nil {
		return Result{}, repositoryError
	}

	result := Result{RunIdentifier: uuid.NewString(), Root: root}
	runLogger := service.logger.With(zap.String(logFieldRunIdentifierConstant, result.RunIdentifier))

	if !options.DryRun && options.ConfirmationPolicy.ShouldPrompt() {
		confirmed, promptError := service.prompter.Confirm(promptConstant)
		if promptError != nil {
			return result, fmt.Errorf(confirmationErrorTemplateConstant, promptError)
		}
		if !confirmed {
			service.output.Printf(shared.AbortedMessageConstant)
			runLogger.Info(logMessageRewriteDeclinedConstant, zap.String(logFieldRootConstant, root))
			return result, shared.ErrConfirmationDeclined
		}
	}

	scanner, scannerError := layout.NewScanner(service.pattern, service.fileSystem)
	if scannerError != nil {
		return result, scannerError
	}

	startedAt := service.clock.Now()
	runLogger.Info(logMessageRewriteStartedConstant, zap.String(logFieldRootConstant, root), zap.Bool(logFieldDryRunConstant, options.DryRun))

	dayDirectories, scanError := scanner.DayDirectories(root)
	if scanError != nil {
		return result, fmt.Errorf(scanErrorTemplateConstant, scanError)
	}
	result.DayDirectories = len(dayDirectories)

	var failures error
	for _, dayDirectory := range dayDirectories {
		if contextError := executionContext.Err(); contextError != nil {
			failures = multierr.Append(failures, contextError)
			break
		}

		service.output.Printf(dayDirectoryHeaderTemplateConstant, dayDirectory.Name)
		trackedPath := service.pattern.TrackedPath(dayDirectory.Name)
		commandDetails := BuildRewriteCommand(root, trackedPath)
		renderedCommand := RenderCommand(commandDetails)

		if options.DryRun {
			service.output.Printf(planRewriteTemplateConstant, renderedCommand)
			result.Planned = append(result.Planned, trackedPath)
			continue
		}

		service.output.Printf(runningCommandTemplateConstant, renderedCommand)
		executionResult, executionError := service.gitExecutor.ExecuteGit(executionContext, commandDetails)
		if executionError != nil {
			rewriteError := fmt.Errorf(rewriteErrorTemplateConstant, trackedPath, executionError)
			service.errors.Printf(errorMessageTemplateConstant, rewriteError)
			runLogger.Warn(logMessageDirectoryFailedConstant, zap.String(logFieldTrackedPathConstant, trackedPath), zap.Error(executionError))
			failures = multierr.Append(failures, rewriteError)
			continue
		}

		if commandOutput := strings.TrimSpace(executionResult.StandardOutput); len(commandOutput) > 0 {
			service.output.Printf(commandOutputTemplateConstant, commandOutput)
		}
		runLogger.Debug(logMessageDirectoryRewrittenConstant, zap.String(logFieldTrackedPathConstant, trackedPath))
		result.Rewritten = append(result.Rewritten, trackedPath)
	}

	result.Failed = len(multierr.Errors(failures))
	runLogger.Info(
		logMessageRewriteCompletedConstant,
		zap.String(logFieldRootConstant, root),
		zap.Int(logFieldDayDirectoriesConstant, result.DayDirectories),
		zap.Int(logFieldRewrittenConstant, len(result.Rewritten)),
		zap.Int(logFieldPlannedConstant, len(result.Planned)),
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
		return "", fmt.Errorf(wrappedSentinelTemplateConstant, ErrRootNotDirectory, root)
	}
	return root, nil
}

func (service *Service) requireWorkTree(executionContext context.Context, root string) error {
	executionResult, executionError := service.gitExecutor.ExecuteGit(executionContext, BuildWorkTreeCheckCommand(root))
	if executionError != nil {
		return fmt.Errorf(wrappedSentinelCauseTemplateConstant, ErrNotGitRepository, root, executionError)
	}
	if strings.TrimSpace(executionResult.StandardOutput) != gitWorkTreeAffirmativeConstant {
		return fmt.Errorf(wrappedSentinelTemplateConstant, ErrNotGitRepository, root)
	}
	return nil
}
