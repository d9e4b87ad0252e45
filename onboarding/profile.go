/*
profile.go - Weighted profile completion scorer

PURPOSE:
  Computes the employee's profile completeness as a weighted percentage and
  persists it on the employee record. The Hard Gate Evaluator reads the
  cached value, so callers must re-run the scorer after any profile mutation
  or the gate may use a stale percentage.

WEIGHT TABLE:
  Fixed per-field integer weights summing to 100. Group splits referenced by
  UI copy: personal 30, address 15, banking 20, emergency contact 15,
  employment 20. A field counts as complete iff non-empty after trimming
  (dates: non-nil).
*/
package onboarding

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// profileField pairs a weight with the accessor for one scored field.
type profileField struct {
	name   string
	weight int
	value  func(*Employee) string
}

func dateField(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// profileWeights is the canonical weight table. Order matches the grouping
// used in UI copy; reports_to is displayed but intentionally unweighted.
var profileWeights = []profileField{
	// Personal (30)
	{"first_name", 5, func(e *Employee) string { return e.FirstName }},
	{"last_name", 5, func(e *Employee) string { return e.LastName }},
	{"email", 5, func(e *Employee) string { return e.Email }},
	{"phone", 3, func(e *Employee) string { return e.Phone }},
	{"date_of_birth", 3, func(e *Employee) string { return dateField(e.DateOfBirth) }},
	{"gender", 2, func(e *Employee) string { return e.Gender }},
	{"marital_status", 2, func(e *Employee) string { return e.MaritalStatus }},
	{"national_id", 5, func(e *Employee) string { return e.NationalID }},

	// Address (15)
	{"address", 5, func(e *Employee) string { return e.Address }},
	{"city", 3, func(e *Employee) string { return e.City }},
	{"state", 3, func(e *Employee) string { return e.State }},
	{"country", 4, func(e *Employee) string { return e.Country }},

	// Banking (20)
	{"bank_name", 7, func(e *Employee) string { return e.BankName }},
	{"bank_account_number", 7, func(e *Employee) string { return e.BankAccountNumber }},
	{"bank_account_name", 6, func(e *Employee) string { return e.BankAccountName }},

	// Emergency contact (15)
	{"emergency_contact_name", 8, func(e *Employee) string { return e.EmergencyContactName }},
	{"emergency_contact_phone", 7, func(e *Employee) string { return e.EmergencyContactPhone }},

	// Employment (20)
	{"job_title", 5, func(e *Employee) string { return e.JobTitle }},
	{"department", 5, func(e *Employee) string { return e.Department }},
	{"hire_date", 5, func(e *Employee) string { return dateField(e.HireDate) }},
	{"tax_id", 5, func(e *Employee) string { return e.TaxID }},
}

// ScoreProfile computes the weighted percentage for an employee value
// without touching storage. Exposed for callers that already hold the row.
func ScoreProfile(emp *Employee) int {
	totalWeight := 0
	completedWeight := 0
	for _, f := range profileWeights {
		totalWeight += f.weight
		if strings.TrimSpace(f.value(emp)) != "" {
			completedWeight += f.weight
		}
	}
	if totalWeight == 0 {
		return 0
	}

	pct := decimal.NewFromInt(int64(completedWeight)).
		Div(decimal.NewFromInt(int64(totalWeight))).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(pct.IntPart())
}

// CalculateProfileCompletion loads the employee, scores it, and persists the
// result on the employee record. Returns 0 for a missing employee.
func (e *Engine) CalculateProfileCompletion(ctx context.Context, employeeID EmployeeID) (int, error) {
	emp, err := e.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	if emp == nil {
		return 0, nil
	}

	pct := ScoreProfile(emp)
	if err := e.store.SetProfileCompletion(ctx, employeeID, pct); err != nil {
		return 0, err
	}
	return pct, nil
}
