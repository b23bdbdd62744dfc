package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/aocinputs/cmd/cli"
	"github.com/temirov/aocinputs/internal/archive/shared"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the aoc-inputs command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}
	if !errors.Is(executionError, shared.ErrConfirmationDeclined) {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(1)
}
