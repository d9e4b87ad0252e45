/*
document.go - Document lifecycle transitions

PURPOSE:
  The explicit state machine over Document.Status. Transition methods on
  Document enforce the legal moves; Engine operations load the row, apply
  the transition, persist, and trigger phase progression.

STATE MACHINE:
  pending  --sign-->        signed                      (action: sign)
  pending  --acknowledge--> acknowledged                (action: acknowledge)
  pending  --upload-->      uploaded                    (action: upload)
  rejected --sign/upload--> signed/uploaded             (retry loop)
  uploaded --verify-->      verified                    (HR)
  uploaded --reject-->      rejected, reason recorded   (HR)

  Employee actions (sign, acknowledge, upload) and HR verification each
  re-evaluate the affected phase afterward; rejection does not, since it can
  only move a phase away from complete and current_phase never decreases.

OVERDUE TRACKING:
  Each transition stamps was_overdue when the action lands after the row's
  due date, so reporting can distinguish late completions.
*/
package onboarding

import (
	"context"
	"time"
)

// =============================================================================
// TRANSITION METHODS
// =============================================================================

func (d *Document) transitionErr(attempted string) error {
	return &TransitionError{DocumentID: d.ID, Action: d.Action, From: d.Status, Attempted: attempted}
}

func (d *Document) markOverdue(at time.Time) {
	if !d.DueDate.IsZero() && at.After(d.DueDate) {
		d.WasOverdue = true
	}
}

// Sign transitions pending|rejected → signed for signature documents.
func (d *Document) Sign(at time.Time) error {
	if d.Action != ActionSign || (d.Status != DocPending && d.Status != DocRejected) {
		return d.transitionErr("sign")
	}
	d.Status = DocSigned
	t := at
	d.SignedAt = &t
	d.markOverdue(at)
	d.UpdatedAt = at
	return nil
}

// Acknowledge transitions pending|rejected → acknowledged.
func (d *Document) Acknowledge(at time.Time) error {
	if d.Action != ActionAcknowledge || (d.Status != DocPending && d.Status != DocRejected) {
		return d.transitionErr("acknowledge")
	}
	d.Status = DocAcknowledged
	t := at
	d.AcknowledgedAt = &t
	d.markOverdue(at)
	d.UpdatedAt = at
	return nil
}

// Upload transitions pending|rejected → uploaded, awaiting HR verification.
// Re-upload after rejection clears the recorded reason.
func (d *Document) Upload(at time.Time) error {
	if d.Action != ActionUpload || (d.Status != DocPending && d.Status != DocRejected) {
		return d.transitionErr("upload")
	}
	d.Status = DocUploaded
	t := at
	d.UploadedAt = &t
	d.RejectionReason = ""
	d.markOverdue(at)
	d.UpdatedAt = at
	return nil
}

// Verify transitions uploaded → verified. HR action.
func (d *Document) Verify(by string, at time.Time) error {
	if d.Status != DocUploaded {
		return d.transitionErr("verify")
	}
	d.Status = DocVerified
	d.VerifiedBy = by
	t := at
	d.VerifiedAt = &t
	d.UpdatedAt = at
	return nil
}

// Reject transitions uploaded → rejected with a mandatory reason. HR action.
// The employee re-enters the loop via Upload.
func (d *Document) Reject(by, reason string, at time.Time) error {
	if reason == "" {
		return ErrRejectionReasonRequired
	}
	if d.Status != DocUploaded {
		return d.transitionErr("reject")
	}
	d.Status = DocRejected
	d.VerifiedBy = by
	t := at
	d.VerifiedAt = &t
	d.RejectionReason = reason
	d.UpdatedAt = at
	return nil
}

// =============================================================================
// ENGINE OPERATIONS
// =============================================================================

// getOwnedDocument loads a ledger row and checks it belongs to the employee.
func (e *Engine) getOwnedDocument(ctx context.Context, tenantID TenantID, employeeID EmployeeID, id DocumentID) (*Document, error) {
	doc, err := e.store.GetDocument(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.EmployeeID != employeeID {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// applyTransition persists a mutated row and re-evaluates its phase.
func (e *Engine) applyTransition(ctx context.Context, doc *Document) (*PhaseResult, error) {
	if err := e.store.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return e.UpdatePhaseStatus(ctx, doc.TenantID, doc.EmployeeID, doc.Phase)
}

// SignDocument records an employee signature on a signing document.
func (e *Engine) SignDocument(ctx context.Context, tenantID TenantID, employeeID EmployeeID, id DocumentID) (*Document, *PhaseResult, error) {
	doc, err := e.getOwnedDocument(ctx, tenantID, employeeID, id)
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Sign(e.now()); err != nil {
		return nil, nil, err
	}
	pr, err := e.applyTransition(ctx, doc)
	return doc, pr, err
}

// AcknowledgeDocument records an employee acknowledgment.
func (e *Engine) AcknowledgeDocument(ctx context.Context, tenantID TenantID, employeeID EmployeeID, id DocumentID) (*Document, *PhaseResult, error) {
	doc, err := e.getOwnedDocument(ctx, tenantID, employeeID, id)
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Acknowledge(e.now()); err != nil {
		return nil, nil, err
	}
	pr, err := e.applyTransition(ctx, doc)
	return doc, pr, err
}

// UploadDocument records that the employee uploaded the requested file.
// File storage itself is the surrounding application's concern; the ledger
// tracks only the act.
func (e *Engine) UploadDocument(ctx context.Context, tenantID TenantID, employeeID EmployeeID, id DocumentID) (*Document, *PhaseResult, error) {
	doc, err := e.getOwnedDocument(ctx, tenantID, employeeID, id)
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Upload(e.now()); err != nil {
		return nil, nil, err
	}
	pr, err := e.applyTransition(ctx, doc)
	return doc, pr, err
}

// VerifyDocument is the HR approval of an uploaded document.
func (e *Engine) VerifyDocument(ctx context.Context, tenantID TenantID, employeeID EmployeeID, id DocumentID, verifiedBy string) (*Document, *PhaseResult, error) {
	doc, err := e.getOwnedDocument(ctx, tenantID, employeeID, id)
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Verify(verifiedBy, e.now()); err != nil {
		return nil, nil, err
	}
	pr, err := e.applyTransition(ctx, doc)
	return doc, pr, err
}

// RejectDocument is the HR rejection of an uploaded document. The row loops
// back through the re-upload path; phase status is left as-is.
func (e *Engine) RejectDocument(ctx context.Context, tenantID TenantID, employeeID EmployeeID, id DocumentID, rejectedBy, reason string) (*Document, error) {
	doc, err := e.getOwnedDocument(ctx, tenantID, employeeID, id)
	if err != nil {
		return nil, err
	}
	if err := doc.Reject(rejectedBy, reason, e.now()); err != nil {
		return nil, err
	}
	if err := e.store.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// MarkEmployeeFileComplete is the HR sign-off on the employee file (Gate 3).
// Independent of the document ledger.
func (e *Engine) MarkEmployeeFileComplete(ctx context.Context, tenantID TenantID, employeeID EmployeeID, verifiedBy string) (*Record, error) {
	rec, err := e.store.GetRecord(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoOnboardingRecord
	}

	now := e.now()
	rec.EmployeeFileComplete = true
	rec.EmployeeFileVerifiedBy = verifiedBy
	rec.EmployeeFileVerifiedAt = &now
	rec.UpdatedAt = now

	if err := e.store.SaveRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
