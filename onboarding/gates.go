/*
gates.go - Hard gate evaluation

PURPOSE:
  Pure read that decides whether an employee may be activated. All four
  gates are evaluated unconditionally (no short-circuit) so HR sees the
  complete blocker list in one call:

  Gate 1: every required phase-1 document signed or acknowledged
  Gate 2: every required phase-3 document verified or uploaded
  Gate 3: employee file marked complete by HR
  Gate 4: profile completion >= 80% (null treated as 0)

  Gate 2 deliberately accepts uploaded (not yet HR-verified) rows: the
  HR-verification signal for activation is Gate 3, matching the production
  system's behavior. Flagged for product clarification, not changed here.
*/
package onboarding

import (
	"context"
	"fmt"
)

// MinProfileCompletion is the Gate 4 threshold.
const MinProfileCompletion = 80

// GateCheck is the result of a hard-gate evaluation.
type GateCheck struct {
	Passed bool
	Errors []string
	Record *Record
}

// CheckHardGates evaluates all activation gates for an employee.
func (e *Engine) CheckHardGates(ctx context.Context, tenantID TenantID, employeeID EmployeeID) (*GateCheck, error) {
	return checkHardGates(ctx, e.store, tenantID, employeeID)
}

// checkHardGates runs against any Store so the activation orchestrator can
// evaluate inside its transaction.
func checkHardGates(ctx context.Context, s Store, tenantID TenantID, employeeID EmployeeID) (*GateCheck, error) {
	rec, err := s.GetRecord(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &GateCheck{Passed: false, Errors: []string{"No onboarding record found"}}, nil
	}

	var errs []string

	// Gate 1: phase-1 documents signed/acknowledged.
	phase1, err := s.ListPhaseDocuments(ctx, employeeID, 1)
	if err != nil {
		return nil, err
	}
	for i := range phase1 {
		doc := &phase1[i]
		if !doc.Required {
			continue
		}
		if doc.Status != DocSigned && doc.Status != DocAcknowledged {
			errs = append(errs, fmt.Sprintf("Phase 1: %s not completed (status: %s)", doc.Name, doc.Status))
		}
	}

	// Gate 2: phase-3 documents verified/uploaded.
	phase3, err := s.ListPhaseDocuments(ctx, employeeID, 3)
	if err != nil {
		return nil, err
	}
	for i := range phase3 {
		doc := &phase3[i]
		if !doc.Required {
			continue
		}
		if doc.Status != DocVerified && doc.Status != DocUploaded {
			errs = append(errs, fmt.Sprintf("Phase 3: %s not completed (status: %s)", doc.Name, doc.Status))
		}
	}

	// Gate 3: HR sign-off on the employee file.
	if !rec.EmployeeFileComplete {
		errs = append(errs, "Employee file not marked complete by HR")
	}

	// Gate 4: cached profile completion. Missing employee row counts as 0.
	completion := 0
	emp, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp != nil {
		completion = emp.ProfileCompletion
	}
	if completion < MinProfileCompletion {
		errs = append(errs, fmt.Sprintf("Profile completion at %d%% (minimum %d%% required)", completion, MinProfileCompletion))
	}

	return &GateCheck{Passed: len(errs) == 0, Errors: errs, Record: rec}, nil
}
