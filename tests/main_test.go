package tests

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const (
	integrationBinaryNameConstant        = "aoc-inputs"
	integrationBuildDirectoryPattern     = "aoc-inputs-integration-*"
	integrationBuildFailureTemplate      = "unable to build %s: %v\n%s\n"
	integrationParentDirectoryConstant   = ".."
	integrationGoExecutableNameConstant  = "go"
	integrationGitExecutableNameConstant = "git"
)

var integrationBinaryPath string

func TestMain(main *testing.M) {
	os.Exit(runIntegrationSuite(main))
}

func runIntegrationSuite(main *testing.M) int {
	buildDirectory, buildDirectoryError := os.MkdirTemp("", integrationBuildDirectoryPattern)
	if buildDirectoryError != nil {
		fmt.Fprintln(os.Stderr, buildDirectoryError)
		return 1
	}
	defer os.RemoveAll(buildDirectory)

	if _, lookupError := exec.LookPath(integrationGoExecutableNameConstant); lookupError == nil {
		binaryPath := filepath.Join(buildDirectory, integrationBinaryNameConstant)
		buildCommand := exec.Command(integrationGoExecutableNameConstant, "build", "-o", binaryPath, ".")
		buildCommand.Dir = integrationParentDirectoryConstant
		if buildOutput, buildError := buildCommand.CombinedOutput(); buildError != nil {
			fmt.Fprintf(os.Stderr, integrationBuildFailureTemplate, integrationBinaryNameConstant, buildError, buildOutput)
			return 1
		}
		integrationBinaryPath = binaryPath
	}

	return main.Run()
}
