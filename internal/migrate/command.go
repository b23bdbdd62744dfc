package migrate

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/aocinputs/internal/archive/dependencies"
	"github.com/temirov/aocinputs/internal/archive/shared"
	"github.com/temirov/aocinputs/internal/layout"
	"github.com/temirov/aocinputs/internal/utils/flags"
	pathutils "github.com/temirov/aocinputs/internal/utils/path"
)

const (
	commandUseConstant                  = "migrate"
	commandShortDescriptionConstant     = "Move day-NN/input*.txt files into a single input directory"
	commandLongDescriptionConstant      = "migrate moves the puzzle inputs of every day directory into the destination directory, renaming day-NN/input.txt to input/day-NN.txt and example inputs to input/day-NN-example.txt."
	conflictFlagNameConstant            = "on-conflict"
	conflictFlagDescriptionConstant     = "Action when a destination file already exists"
	commandExecutionErrorTemplate       = "input migration failed: %w"
	conflictPolicyErrorTemplateConstant = "invalid --%s value: %w"
	rootFlagErrorTemplateConstant       = "unable to resolve --%s: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// PrompterFactory creates confirmation prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.ConfirmationPrompter

// CommandBuilder assembles the migrate Cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	PatternProvider       func() layout.Pattern
	FileSystem            shared.FileSystem
	PrompterFactory       PrompterFactory
	Clock                 shared.Clock
	RootResolver          *pathutils.RootPathResolver
}

// Build constructs the migrate command.
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
	flags.BindChoiceFlag(command, flags.ChoiceFlagDefinition{
		Name:        conflictFlagNameConstant,
		Default:     defaults.OnConflict,
		Choices:     shared.ConflictPolicyChoices(),
		Description: conflictFlagDescriptionConstant,
	})

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
	service, serviceError := NewService(Dependencies{
		Logger:     logger,
		FileSystem: dependencies.ResolveFileSystem(builder.FileSystem),
		Prompter:   builder.resolvePrompter(command),
		Clock:      dependencies.ResolveClock(builder.Clock),
		Pattern:    builder.resolvePattern(),
		Output:     command.OutOrStdout(),
		Errors:     command.ErrOrStderr(),
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

	conflictValue := flags.ResolveChoice(command, conflictFlagNameConstant, configuration.OnConflict)
	conflictPolicy, conflictError := shared.ParseConflictPolicy(conflictValue)
	if conflictError != nil {
		return Options{}, fmt.Errorf(conflictPolicyErrorTemplateConstant, conflictFlagNameConstant, conflictError)
	}

	return Options{
		Root:               root,
		DryRun:             execution.DryRun,
		ConfirmationPolicy: shared.ConfirmationPolicyFromBool(execution.Force),
		ConflictPolicy:     conflictPolicy,
		EnsureDestination:  configuration.EnsureDestination,
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
