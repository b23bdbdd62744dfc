package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	integrationInfoMessageConstant         = "\"msg\":\"aoc-inputs CLI executed\""
	integrationDebugMessageConstant        = "\"msg\":\"aoc-inputs CLI diagnostics\""
	integrationLogLevelEnvKeyConstant      = "AOCINPUTS_COMMON_LOG_LEVEL"
	integrationConfigFileNameConstant      = "config.yaml"
	integrationConfigTemplateConstant      = "common:\n  log_level: %s\n"
	integrationDefaultCaseNameConstant     = "default_info"
	integrationConfigCaseNameConstant      = "config_debug"
	integrationEnvironmentCaseNameConstant = "environment_error"
	integrationDebugLevelConstant          = "debug"
	integrationErrorLevelConstant          = "error"
	integrationConfigFlagTemplateConstant  = "--config=%s"
	integrationSubtestNameTemplateConstant = "%d_%s"
	integrationHelpUsagePrefixConstant     = "Usage:"
	integrationHelpDescriptionConstant     = "aoc-inputs moves day-NN/input*.txt files into a single input directory"
)

func TestCLIIntegrationLogLevels(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		configurationLevel   string
		environmentLevel     string
		expectedInfoVisible  bool
		expectedDebugVisible bool
	}{
		{
			name:                integrationDefaultCaseNameConstant,
			expectedInfoVisible: true,
		},
		{
			name:                 integrationConfigCaseNameConstant,
			configurationLevel:   integrationDebugLevelConstant,
			expectedInfoVisible:  true,
			expectedDebugVisible: true,
		},
		{
			name:             integrationEnvironmentCaseNameConstant,
			environmentLevel: integrationErrorLevelConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			var arguments []string
			var environment []string

			if len(testCase.configurationLevel) > 0 {
				configurationPath := filepath.Join(testInstance.TempDir(), integrationConfigFileNameConstant)
				configurationContent := fmt.Sprintf(integrationConfigTemplateConstant, testCase.configurationLevel)
				require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))
				arguments = append(arguments, fmt.Sprintf(integrationConfigFlagTemplateConstant, configurationPath))
			}

			if len(testCase.environmentLevel) > 0 {
				environment = append(environment, integrationLogLevelEnvKeyConstant+"="+testCase.environmentLevel)
			}

			result := runIntegrationCommand(testInstance, "", environment, arguments...)
			require.Zero(testInstance, result.exitCode, result.standardError)

			if testCase.expectedInfoVisible {
				require.Contains(testInstance, result.standardError, integrationInfoMessageConstant)
			} else {
				require.NotContains(testInstance, result.standardError, integrationInfoMessageConstant)
			}

			if testCase.expectedDebugVisible {
				require.Contains(testInstance, result.standardError, integrationDebugMessageConstant)
			} else {
				require.NotContains(testInstance, result.standardError, integrationDebugMessageConstant)
			}
		})
	}
}

func TestCLIIntegrationDisplaysHelpWhenNoArgumentsProvided(testInstance *testing.T) {
	result := runIntegrationCommand(testInstance, "", nil, "--log-level", integrationErrorLevelConstant)
	require.Zero(testInstance, result.exitCode, result.standardError)

	for _, expectedSnippet := range []string{integrationHelpUsagePrefixConstant, integrationHelpDescriptionConstant, "migrate", "rewrite-history"} {
		require.Contains(testInstance, result.standardOutput, expectedSnippet)
	}
}
