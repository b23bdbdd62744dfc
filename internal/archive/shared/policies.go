package shared

import (
	"fmt"
	"strings"
)

const (
	conflictPolicyFailConstant      = "fail"
	conflictPolicySkipConstant      = "skip"
	conflictPolicyOverwriteConstant = "overwrite"
	unknownConflictPolicyTemplate   = "unsupported conflict policy %q (expected one of fail, skip, overwrite)"
)

// ConfirmationPolicy specifies how services should handle operator confirmations.
type ConfirmationPolicy int

const (
	// ConfirmationPrompt indicates the service should prompt the operator.
	ConfirmationPrompt ConfirmationPolicy = iota
	// ConfirmationAssumeYes indicates the service should continue without prompting.
	ConfirmationAssumeYes
)

// ConfirmationPolicyFromBool converts the force flag into a policy.
func ConfirmationPolicyFromBool(assumeYes bool) ConfirmationPolicy {
	if assumeYes {
		return ConfirmationAssumeYes
	}
	return ConfirmationPrompt
}

// ShouldPrompt reports whether the service must prompt the operator.
func (policy ConfirmationPolicy) ShouldPrompt() bool {
	return policy != ConfirmationAssumeYes
}

// ConflictPolicy decides what happens when a migration destination already exists.
type ConflictPolicy string

const (
	// ConflictFail reports the collision and leaves both files in place.
	ConflictFail ConflictPolicy = conflictPolicyFailConstant
	// ConflictSkip leaves both files in place without reporting a failure.
	ConflictSkip ConflictPolicy = conflictPolicySkipConstant
	// ConflictOverwrite replaces the existing destination.
	ConflictOverwrite ConflictPolicy = conflictPolicyOverwriteConstant
)

// ConflictPolicyChoices lists the accepted policy names with the default first.
func ConflictPolicyChoices() []string {
	return []string{conflictPolicyFailConstant, conflictPolicySkipConstant, conflictPolicyOverwriteConstant}
}

// ParseConflictPolicy normalizes a policy name; blank input selects ConflictFail.
func ParseConflictPolicy(raw string) (ConflictPolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "", conflictPolicyFailConstant:
		return ConflictFail, nil
	case conflictPolicySkipConstant:
		return ConflictSkip, nil
	case conflictPolicyOverwriteConstant:
		return ConflictOverwrite, nil
	default:
		return ConflictFail, fmt.Errorf(unknownConflictPolicyTemplate, raw)
	}
}
