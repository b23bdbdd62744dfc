package execshell

// CommandEventObserver follows the git invocations issued by the history rewriter, such as the
// work-tree check and the filter-branch run.
type CommandEventObserver interface {
	// CommandStarted is called before the runner starts the command.
	CommandStarted(command ShellCommand)
	// CommandCompleted is called once the command exits, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed is called when the command could not be started or awaited.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// commandEventFanout forwards every event to each registered observer in order.
type commandEventFanout []CommandEventObserver

func newCommandEventFanout(observers []CommandEventObserver) commandEventFanout {
	fanout := make(commandEventFanout, 0, len(observers))
	for _, observer := range observers {
		if observer != nil {
			fanout = append(fanout, observer)
		}
	}
	return fanout
}

func (fanout commandEventFanout) CommandStarted(command ShellCommand) {
	for _, observer := range fanout {
		observer.CommandStarted(command)
	}
}

func (fanout commandEventFanout) CommandCompleted(command ShellCommand, result ExecutionResult) {
	for _, observer := range fanout {
		observer.CommandCompleted(command, result)
	}
}

func (fanout commandEventFanout) CommandExecutionFailed(command ShellCommand, failure error) {
	for _, observer := range fanout {
		observer.CommandExecutionFailed(command, failure)
	}
}
