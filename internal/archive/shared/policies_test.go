package shared_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/aocinputs/internal/archive/shared"
)

func TestParseConflictPolicy(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    shared.ConflictPolicy
		expectError bool
	}{
		{name: "blank_defaults_to_fail", input: "", expected: shared.ConflictFail},
		{name: "fail", input: "fail", expected: shared.ConflictFail},
		{name: "skip_mixed_case", input: " Skip ", expected: shared.ConflictSkip},
		{name: "overwrite", input: "OVERWRITE", expected: shared.ConflictOverwrite},
		{name: "rejects_unknown", input: "merge", expected: shared.ConflictFail, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			policy, parseError := shared.ParseConflictPolicy(testCase.input)
			if testCase.expectError {
				require.Error(t, parseError)
				require.Contains(t, parseError.Error(), "merge")
			} else {
				require.NoError(t, parseError)
			}
			require.Equal(t, testCase.expected, policy)
		})
	}
}

func TestConfirmationPolicyFromBool(t *testing.T) {
	t.Parallel()

	require.True(t, shared.ConfirmationPolicyFromBool(false).ShouldPrompt())
	require.False(t, shared.ConfirmationPolicyFromBool(true).ShouldPrompt())
}

func TestConflictPolicyChoicesListDefaultFirst(t *testing.T) {
	t.Parallel()

	choices := shared.ConflictPolicyChoices()
	require.Equal(t, []string{"fail", "skip", "overwrite"}, choices)
}

func TestWriterReporterFormatsOutput(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	reporter := shared.NewWriterReporter(&buffer)
	reporter.Printf("Moved %s → %s\n", "day-01/input.txt", "input/day-01.txt")
	require.Equal(t, "Moved day-01/input.txt → input/day-01.txt\n", buffer.String())

	require.NotPanics(t, func() {
		shared.NewWriterReporter(nil).Printf("discarded %d\n", 1)
	})
}
