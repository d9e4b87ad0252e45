/*
progression.go - Phase progression engine

PURPOSE:
  Recomputes a phase's completion from its ledger rows and auto-advances
  current_phase when the employee's active phase completes.

INVARIANTS:
  - current_phase only increases, never decreases
  - phase_statuses[P] is completed only when every required row in phase P
    has a satisfying status (signed, acknowledged, verified, or uploaded)
  - a phase with zero documents is vacuously complete

CONCURRENCY:
  This is a read-then-write sequence outside the big transactions; two
  near-simultaneous completions can both attempt the same advance. The second
  write is a no-op (same target phase), so the race is benign.
*/
package onboarding

import "context"

// PhaseResult reports the outcome of a progression pass.
type PhaseResult struct {
	PhaseStatuses PhaseStatuses
	CurrentPhase  int
	PhaseComplete bool
}

// UpdatePhaseStatus re-evaluates one phase for an employee and persists the
// outcome. Returns (nil, nil) when the employee has no onboarding record.
func (e *Engine) UpdatePhaseStatus(ctx context.Context, tenantID TenantID, employeeID EmployeeID, phase int) (*PhaseResult, error) {
	docs, err := e.store.ListPhaseDocuments(ctx, employeeID, phase)
	if err != nil {
		return nil, err
	}

	// Vacuously true for phases with no rows.
	allComplete := true
	for i := range docs {
		if docs[i].Required && !docs[i].Status.Satisfied() {
			allComplete = false
			break
		}
	}

	rec, err := e.store.GetRecord(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	statuses := rec.PhaseStatuses.Clone()
	if allComplete {
		statuses[phase] = PhaseCompleted
	} else {
		statuses[phase] = PhaseInProgress
	}

	// Auto-advance only from the employee's active phase.
	if allComplete && rec.CurrentPhase == phase && phase < PhaseCount {
		rec.CurrentPhase = phase + 1
		statuses[phase+1] = PhaseInProgress
	}

	rec.PhaseStatuses = statuses
	rec.UpdatedAt = e.now()
	if err := e.store.SaveRecord(ctx, rec); err != nil {
		return nil, err
	}

	return &PhaseResult{
		PhaseStatuses: statuses,
		CurrentPhase:  rec.CurrentPhase,
		PhaseComplete: allComplete,
	}, nil
}
