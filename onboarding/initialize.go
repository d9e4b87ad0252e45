/*
initialize.go - Onboarding initialization and document seeding

PURPOSE:
  Creates (or restarts) the onboarding record for an employee and seeds the
  document ledger from the resolved phase configuration plus the policy
  catalog. Runs as one transaction: any failure rolls everything back.

RESTART SEMANTICS:
  Re-initializing an employee who already has a record resets current_phase
  to 1 and overall_status to in_progress but preserves started_at and the
  existing phase statuses, and never duplicates ledger rows. This mirrors the
  production system's ON CONFLICT behavior; whether resetting an in-flight
  onboarding to phase 1 is desirable is an open product question, so the
  behavior is preserved rather than changed.

IDEMPOTENT SEEDING:
  A ledger row is created only if none exists for (employee, document type),
  or (employee, policy) for policy rows. The concrete stores back this
  existence check with partial unique indexes.
*/
package onboarding

import "context"

// InitializeInput identifies the employee and optional workflow override.
type InitializeInput struct {
	TenantID    TenantID
	CompanyID   CompanyID
	EmployeeID  EmployeeID
	WorkflowID  WorkflowID // optional: explicit workflow override
	InitiatedBy EmployeeID // optional: actor, recorded nowhere yet but part of the call contract
}

// InitializeResult is returned to the route layer: the (re)started record,
// the ledger rows created by this call, and the resolved configuration.
type InitializeResult struct {
	Record      *Record
	Documents   []Document
	PhaseConfig PhaseConfig
}

// Initialize sets up onboarding for an employee inside a single transaction.
func (e *Engine) Initialize(ctx context.Context, in InitializeInput) (*InitializeResult, error) {
	var result *InitializeResult

	err := e.store.WithTx(ctx, func(tx Store) error {
		wf, err := ResolveWorkflow(ctx, tx, in.TenantID, in.CompanyID, in.WorkflowID)
		if err != nil {
			return err
		}

		cfg := DefaultPhaseConfig()
		var workflowID WorkflowID
		if wf != nil {
			cfg = wf.PhaseConfig
			workflowID = wf.ID
		}

		rec, err := e.upsertRecord(ctx, tx, in, workflowID)
		if err != nil {
			return err
		}

		created, err := e.seedDocuments(ctx, tx, rec, cfg)
		if err != nil {
			return err
		}

		policyDocs, err := e.seedPolicyDocuments(ctx, tx, rec)
		if err != nil {
			return err
		}
		created = append(created, policyDocs...)

		if err := tx.SetEmploymentStatus(ctx, in.EmployeeID, EmploymentPreboarding, nil); err != nil {
			return err
		}

		result = &InitializeResult{Record: rec, Documents: created, PhaseConfig: cfg}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// upsertRecord creates a fresh record, or restarts an existing one while
// preserving its start timestamp and phase-status history.
func (e *Engine) upsertRecord(ctx context.Context, tx Store, in InitializeInput, workflowID WorkflowID) (*Record, error) {
	now := e.now()

	rec, err := tx.GetRecord(ctx, in.TenantID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	if rec == nil {
		rec = &Record{
			ID:            RecordID(e.newID()),
			TenantID:      in.TenantID,
			CompanyID:     in.CompanyID,
			EmployeeID:    in.EmployeeID,
			WorkflowID:    workflowID,
			CurrentPhase:  1,
			OverallStatus: OverallInProgress,
			PhaseStatuses: NewPhaseStatuses(),
			StartedAt:     now,
		}
	} else {
		rec.CurrentPhase = 1
		rec.OverallStatus = OverallInProgress
	}
	rec.UpdatedAt = now

	if err := tx.SaveRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// seedDocuments creates missing ledger rows for every configured phase that
// carries documents. Existing rows are left untouched.
func (e *Engine) seedDocuments(ctx context.Context, tx Store, rec *Record, cfg PhaseConfig) ([]Document, error) {
	now := e.now()
	var created []Document

	for _, phaseNum := range cfg.PhaseNumbers() {
		phase := cfg[phaseNum]
		if len(phase.Documents) == 0 {
			continue
		}

		dueDays := phase.DueDays
		if dueDays == 0 {
			dueDays = 5
		}
		dueDate := now.AddDate(0, 0, dueDays)

		for _, spec := range phase.Documents {
			existing, err := tx.FindDocumentByType(ctx, rec.EmployeeID, spec.Type)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				continue
			}

			doc := Document{
				ID:           DocumentID(e.newID()),
				TenantID:     rec.TenantID,
				CompanyID:    rec.CompanyID,
				EmployeeID:   rec.EmployeeID,
				OnboardingID: rec.ID,
				Type:         spec.Type,
				Name:         spec.Label,
				Category:     CategoryFor(phaseNum, spec.Action),
				Phase:        phaseNum,
				Action:       spec.Action,
				Required:     spec.IsRequired(),
				Status:       DocPending,
				DueDate:      dueDate,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.InsertDocument(ctx, &doc); err != nil {
				return nil, err
			}
			created = append(created, doc)
		}
	}

	return created, nil
}

// seedPolicyDocuments adds one phase-4 acknowledgment row per active policy
// requiring acknowledgment, keyed by (employee, policy).
func (e *Engine) seedPolicyDocuments(ctx context.Context, tx Store, rec *Record) ([]Document, error) {
	now := e.now()
	dueDate := now.AddDate(0, 0, 5)

	policies, err := tx.ListAcknowledgmentPolicies(ctx, rec.TenantID, rec.CompanyID)
	if err != nil {
		return nil, err
	}

	var created []Document
	for _, policy := range policies {
		existing, err := tx.FindDocumentByPolicy(ctx, rec.EmployeeID, policy.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}

		doc := Document{
			ID:           DocumentID(e.newID()),
			TenantID:     rec.TenantID,
			CompanyID:    rec.CompanyID,
			EmployeeID:   rec.EmployeeID,
			OnboardingID: rec.ID,
			Type:         "policy",
			Name:         policy.Name,
			Category:     CategoryFor(4, ActionAcknowledge),
			Phase:        4,
			Action:       ActionAcknowledge,
			Required:     true,
			Status:       DocPending,
			DueDate:      dueDate,
			PolicyID:     policy.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.InsertDocument(ctx, &doc); err != nil {
			return nil, err
		}
		created = append(created, doc)
	}

	return created, nil
}

// RefreshDocuments re-runs idempotent seeding for an existing onboarding,
// picking up configuration or policy-catalog changes. The record itself is
// not touched. Returns only rows created by this call.
func (e *Engine) RefreshDocuments(ctx context.Context, tenantID TenantID, employeeID EmployeeID) ([]Document, error) {
	var created []Document

	err := e.store.WithTx(ctx, func(tx Store) error {
		rec, err := tx.GetRecord(ctx, tenantID, employeeID)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrNoOnboardingRecord
		}

		wf, err := ResolveWorkflow(ctx, tx, rec.TenantID, rec.CompanyID, rec.WorkflowID)
		if err != nil {
			return err
		}
		cfg := DefaultPhaseConfig()
		if wf != nil {
			cfg = wf.PhaseConfig
		}

		created, err = e.seedDocuments(ctx, tx, rec, cfg)
		if err != nil {
			return err
		}
		policyDocs, err := e.seedPolicyDocuments(ctx, tx, rec)
		if err != nil {
			return err
		}
		created = append(created, policyDocs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
