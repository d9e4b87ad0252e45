/*
activation.go - Activation orchestrator

PURPOSE:
  Flips the employee from preboarding to active employment once every hard
  gate passes, completes the onboarding record, and schedules the probation
  check-ins. One transaction: a gate failure or any write error rolls the
  whole activation back, so activation never partially succeeds.

STATE MACHINE (Record.OverallStatus):
  in_progress --(gates pass + activation)--> completed
  No other transitions exist; there is no failed/rejected terminal state at
  the record level. Document rejections loop through pending without touching
  overall status.
*/
package onboarding

import "context"

// ActivationResult is returned to the route layer; CheckInsScheduled is the
// count of probation tasks created by this activation.
type ActivationResult struct {
	Success           bool
	EmployeeID        EmployeeID
	Status            EmploymentStatus
	CheckInsScheduled int
}

// ActivateEmployee transitions an employee to active employment. Fails with
// a GateError listing every outstanding blocker when hard gates don't pass;
// that failure is a business-rule rejection, retryable once the underlying
// conditions are fixed.
func (e *Engine) ActivateEmployee(ctx context.Context, tenantID TenantID, employeeID EmployeeID, activatedBy EmployeeID) (*ActivationResult, error) {
	var result *ActivationResult

	err := e.store.WithTx(ctx, func(tx Store) error {
		gates, err := checkHardGates(ctx, tx, tenantID, employeeID)
		if err != nil {
			return err
		}
		if !gates.Passed {
			return &GateError{Violations: gates.Errors}
		}

		emp, err := tx.GetEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return ErrEmployeeNotFound
		}
		if emp.HireDate == nil {
			return ErrMissingHireDate
		}

		now := e.now()
		if err := tx.SetEmploymentStatus(ctx, employeeID, EmploymentActive, &now); err != nil {
			return err
		}

		rec := gates.Record
		rec.OverallStatus = OverallCompleted
		rec.CompletedAt = &now
		rec.UpdatedAt = now
		if err := tx.SaveRecord(ctx, rec); err != nil {
			return err
		}

		checkins, err := e.scheduleCheckins(ctx, tx, tenantID, emp.CompanyID, employeeID, *emp.HireDate, emp.ReportsTo, activatedBy)
		if err != nil {
			return err
		}

		result = &ActivationResult{
			Success:           true,
			EmployeeID:        employeeID,
			Status:            EmploymentActive,
			CheckInsScheduled: len(checkins),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
