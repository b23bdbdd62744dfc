package history

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/aocinputs/internal/archive/dependencies"
	"github.com/temirov/aocinputs/internal/archive/shared"
	"github.com/temirov/aocinputs/internal/execshell"
	"github.com/temirov/aocinputs/internal/layout"
	"github.com/temirov/aocinputs/internal/utils/flags"
	pathutils "github.com/temirov/aocinputs/internal/utils/path"
)

const (
	commandUseConstant              = "rewrite-history"
	commandShortDescriptionConstant = "Remove day-NN/input.txt from every commit reachable from HEAD"
	commandLongDescriptionConstant  = "rewrite-history runs git filter-branch once per day directory to drop day-NN/input.txt from the index of every commit reachable from HEAD. The rewrite cannot be undone without the refs/original backup git leaves behind."
	commandExecutionErrorTemplate   = "history rewrite failed: %w"
	rootFlagErrorTemplateConstant   = "unable to resolve --%s: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// PrompterFactory creates confirmation prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.ConfirmationPrompter

// CommandEventObserverProvider supplies an observer for git command lifecycle events.
type CommandEventObserverProvider func() execshell.CommandEventObserver

// CommandBuilder assembles the rewrite-history Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	PatternProvider              func() layout.Pattern
	CommandEventObserverProvider CommandEventObserverProvider
	GitExecutor                  shared.GitExecutor
	FileSystem                   shared.FileSystem
	PrompterFactory              PrompterFactory
	Clock                        shared.Clock
	RootResolver                 *pathutils.RootPathResolver
}

// Build constructs the rewrite-history command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
	}

	defaults := DefaultCommandConfiguration()
	rootValues := flags.BindRootFlag(command, flags.RootFlagValues{Root: defaults.Root}, flags.RootFlagDefinition{Enabled: true})
	flags.BindExecutionFlags(command, flags.ExecutionDefaults{DryRun: defaults.DryRun, Force: defaults.Force}, flags.DefaultExecutionFlagDefinitions())

	command.RunE = func(executedCommand *cobra.Command, arguments []string) error {
		return builder.run(executedCommand, rootValues)
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, rootValues *flags.RootFlagValues) error {
	options, optionsError := builder.parseOptions(command, rootValues)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveObserver())
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(Dependencies{
		Logger:      logger,
		FileSystem:  dependencies.ResolveFileSystem(builder.FileSystem),
		GitExecutor: gitExecutor,
		Prompter:    builder.resolvePrompter(command),
		Clock:       dependencies.ResolveClock(builder.Clock),
		Pattern:     builder.resolvePattern(),
		Output:      command.OutOrStdout(),
		Errors:      command.ErrOrStderr(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, runError := service.Run(command.Context(), options)
	if runError == nil || errors.Is(runError, shared.ErrConfirmationDeclined) {
		return runError
	}
	return fmt.Errorf(commandExecutionErrorTemplate, runError)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, rootValues *flags.RootFlagValues) (Options, error) {
	configuration := builder.resolveConfiguration()

	execution := flags.ResolveExecutionFlags(command, flags.ExecutionDefaults{DryRun: configuration.DryRun, Force: configuration.Force})

	rawRoot := flags.ResolveRoot(command, rootValues, configuration.Root, defaultRootConstant)
	root, rootError := builder.resolveRootResolver().Resolve(rawRoot)
	if rootError != nil {
		return Options{}, fmt.Errorf(rootFlagErrorTemplateConstant, flags.DefaultRootFlagName, rootError)
	}

	return Options{
		Root:               root,
		DryRun:             execution.DryRun,
		ConfirmationPolicy: shared.ConfirmationPolicyFromBool(execution.Force),
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveObserver() execshell.CommandEventObserver {
	if builder.CommandEventObserverProvider == nil {
		return nil
	}
	return builder.CommandEventObserverProvider()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolvePattern() layout.Pattern {
	if builder.PatternProvider == nil {
		return layout.DefaultPattern()
	}
	return builder.PatternProvider().Sanitize()
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) shared.ConfirmationPrompter {
	var prompter shared.ConfirmationPrompter
	if builder.PrompterFactory != nil {
		prompter = builder.PrompterFactory(command)
	}
	return dependencies.ResolvePrompter(prompter, command.InOrStdin(), command.OutOrStdout())
}

func (builder *CommandBuilder) resolveRootResolver() *pathutils.RootPathResolver {
	if builder.RootResolver != nil {
		return builder.RootResolver
	}
	return pathutils.NewRootPathResolver()
}
