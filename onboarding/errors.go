/*
errors.go - Centralized error types for the onboarding engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The API layer maps these onto HTTP statuses with the taxonomy helpers.

ERROR CATEGORIES:
  1. Not-found errors - missing record/document/employee/workflow
  2. Transition errors - invalid document state-machine moves
  3. Gate errors - activation attempted before hard gates pass

GATE ERRORS:
  GateError carries every failing gate's reason at once. It is a business-rule
  rejection, not a system fault: safe to retry after the underlying documents
  and profile are fixed. The aggregated message matches the original system's
  activation error so callers can show the full blocker list in one pass.

SEE ALSO:
  - gates.go: builds GateError
  - document.go: builds TransitionError
*/
package onboarding

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoOnboardingRecord is returned when an operation requires an
	// initialized onboarding record and none exists for the employee.
	ErrNoOnboardingRecord = errors.New("no onboarding record found")

	// ErrEmployeeNotFound is returned when the referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrDocumentNotFound is returned when a ledger row doesn't exist or does
	// not belong to the given employee and tenant.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrWorkflowNotFound is returned when a referenced workflow doesn't exist.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrRejectionReasonRequired is returned when HR rejects an upload
	// without giving a reason.
	ErrRejectionReasonRequired = errors.New("rejection reason is required")

	// ErrMissingHireDate is returned when activation finds no hire date to
	// schedule probation check-ins from.
	ErrMissingHireDate = errors.New("employee has no hire date")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// TransitionError reports an invalid document state-machine move: wrong
// action for the operation, or wrong current status.
type TransitionError struct {
	DocumentID DocumentID
	Action     DocumentAction // the document's configured action
	From       DocumentStatus
	Attempted  string // operation name: "sign", "verify", ...
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s document %s (action %s, status %s)",
		e.Attempted, e.DocumentID, e.Action, e.From)
}

// GateError is the aggregated activation blocker list. All gates are
// evaluated; Violations holds one message per outstanding condition.
type GateError struct {
	Violations []string
}

func (e *GateError) Error() string {
	return "hard gates not passed: " + strings.Join(e.Violations, ", ")
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoOnboardingRecord) ||
		errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrDocumentNotFound) ||
		errors.Is(err, ErrWorkflowNotFound)
}

// IsClientError returns true if the error is due to invalid client input or
// an invalid requested transition, as opposed to a system fault.
func IsClientError(err error) bool {
	var tr *TransitionError
	return errors.Is(err, ErrRejectionReasonRequired) ||
		errors.Is(err, ErrMissingHireDate) ||
		errors.As(err, &tr)
}
