/*
progress.go - Progress aggregator (read model)

PURPOSE:
  Assembles the UI read model in one call: the onboarding record joined with
  employee name and cached profile completion, per-phase document counts, a
  per-phase progress percentage, an overall percentage across all required
  documents, and a fresh hard-gate evaluation so the wizard shows live gate
  status without a second round trip.

PERCENTAGES:
  progress = round(required_completed / required_total * 100)
             (100 when a phase has zero required documents)
  overall  = round(sum required_completed / sum required_total * 100)
             (0 when no required documents exist at all)
*/
package onboarding

import (
	"context"

	"github.com/shopspring/decimal"
)

// PhaseProgress is the per-phase document tally.
type PhaseProgress struct {
	Total             int
	Completed         int
	RequiredTotal     int
	RequiredCompleted int
	Progress          int // 0..100
}

// Progress is the aggregated read model for one employee.
type Progress struct {
	Record            *Record
	EmployeeName      string
	Phases            map[int]PhaseProgress
	OverallProgress   int
	ProfileCompletion int
	HardGates         *GateCheck
}

func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(pct.IntPart())
}

// GetOnboardingProgress builds the read model. Returns (nil, nil) when the
// employee has no onboarding record.
func (e *Engine) GetOnboardingProgress(ctx context.Context, tenantID TenantID, employeeID EmployeeID) (*Progress, error) {
	rec, err := e.store.GetRecord(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	var name string
	completion := 0
	emp, err := e.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp != nil {
		name = emp.FullName()
		completion = emp.ProfileCompletion
	}

	docs, err := e.store.ListDocuments(ctx, tenantID, employeeID, DocumentFilter{})
	if err != nil {
		return nil, err
	}

	phases := make(map[int]PhaseProgress)
	for i := range docs {
		doc := &docs[i]
		p := phases[doc.Phase]
		p.Total++
		if doc.Status.Satisfied() {
			p.Completed++
		}
		if doc.Required {
			p.RequiredTotal++
			if doc.Status.Satisfied() {
				p.RequiredCompleted++
			}
		}
		phases[doc.Phase] = p
	}

	totalRequired := 0
	totalCompleted := 0
	for phase, p := range phases {
		if p.RequiredTotal > 0 {
			p.Progress = percentage(p.RequiredCompleted, p.RequiredTotal)
		} else {
			p.Progress = 100 // trivially satisfied
		}
		phases[phase] = p
		totalRequired += p.RequiredTotal
		totalCompleted += p.RequiredCompleted
	}

	gates, err := e.CheckHardGates(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	return &Progress{
		Record:            rec,
		EmployeeName:      name,
		Phases:            phases,
		OverallProgress:   percentage(totalCompleted, totalRequired),
		ProfileCompletion: completion,
		HardGates:         gates,
	}, nil
}

// Summary is one row of the HR dashboard listing: the record plus the
// headline numbers, without per-phase detail or a gate evaluation.
type Summary struct {
	Record            *Record
	EmployeeName      string
	OverallProgress   int
	ProfileCompletion int
}

// ListOnboardingSummaries returns a summary for every onboarding in the
// tenant, oldest start first.
func (e *Engine) ListOnboardingSummaries(ctx context.Context, tenantID TenantID) ([]Summary, error) {
	records, err := e.store.ListRecords(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(records))
	for i := range records {
		rec := &records[i]

		var name string
		completion := 0
		emp, err := e.store.GetEmployee(ctx, rec.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp != nil {
			name = emp.FullName()
			completion = emp.ProfileCompletion
		}

		docs, err := e.store.ListDocuments(ctx, tenantID, rec.EmployeeID, DocumentFilter{})
		if err != nil {
			return nil, err
		}
		requiredTotal := 0
		requiredCompleted := 0
		for j := range docs {
			if !docs[j].Required {
				continue
			}
			requiredTotal++
			if docs[j].Status.Satisfied() {
				requiredCompleted++
			}
		}

		summaries = append(summaries, Summary{
			Record:            rec,
			EmployeeName:      name,
			OverallProgress:   percentage(requiredCompleted, requiredTotal),
			ProfileCompletion: completion,
		})
	}
	return summaries, nil
}
