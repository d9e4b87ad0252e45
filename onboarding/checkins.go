/*
checkins.go - Probation check-in scheduling

PURPOSE:
  On activation, creates the three fixed probation follow-ups (30/60/90 days
  from hire date). Scheduling is idempotent on (employee, checkin type): a
  second call returns an empty list rather than duplicating tasks.
*/
package onboarding

import (
	"context"
	"time"
)

// checkinOffsets are the fixed probation milestones.
var checkinOffsets = []struct {
	Type CheckinType
	Day  int
}{
	{Checkin30Day, 30},
	{Checkin60Day, 60},
	{Checkin90Day, 90},
}

// ScheduleProbationCheckins creates any missing probation check-in tasks for
// the employee. Returns only tasks created by this call (empty when all
// three already exist).
func (e *Engine) ScheduleProbationCheckins(ctx context.Context, tenantID TenantID, companyID CompanyID, employeeID EmployeeID, hireDate time.Time, managerID, hrAssigneeID EmployeeID) ([]CheckinTask, error) {
	return e.scheduleCheckins(ctx, e.store, tenantID, companyID, employeeID, hireDate, managerID, hrAssigneeID)
}

func (e *Engine) scheduleCheckins(ctx context.Context, s Store, tenantID TenantID, companyID CompanyID, employeeID EmployeeID, hireDate time.Time, managerID, hrAssigneeID EmployeeID) ([]CheckinTask, error) {
	created := make([]CheckinTask, 0, len(checkinOffsets))

	for _, offset := range checkinOffsets {
		exists, err := s.CheckinExists(ctx, employeeID, offset.Type)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		task := CheckinTask{
			ID:           TaskID(e.newID()),
			TenantID:     tenantID,
			CompanyID:    companyID,
			EmployeeID:   employeeID,
			Type:         offset.Type,
			Day:          offset.Day,
			ScheduledAt:  hireDate.AddDate(0, 0, offset.Day),
			ManagerID:    managerID,
			HRAssigneeID: hrAssigneeID,
			Status:       CheckinScheduled,
			CreatedAt:    e.now(),
		}
		if err := s.InsertCheckin(ctx, &task); err != nil {
			return nil, err
		}
		created = append(created, task)
	}

	return created, nil
}
