package onboarding_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfi/onboarding-engine/onboarding"
)

// =============================================================================
// TRANSITION METHOD TESTS
// =============================================================================

func signDoc() *onboarding.Document {
	return &onboarding.Document{
		ID: "doc-1", Action: onboarding.ActionSign, Status: onboarding.DocPending,
		DueDate: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
	}
}

func uploadDoc() *onboarding.Document {
	return &onboarding.Document{
		ID: "doc-2", Action: onboarding.ActionUpload, Status: onboarding.DocPending,
		DueDate: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestDocument_Sign_FromPending(t *testing.T) {
	doc := signDoc()
	at := time.Date(2025, time.June, 5, 12, 0, 0, 0, time.UTC)

	require.NoError(t, doc.Sign(at))
	assert.Equal(t, onboarding.DocSigned, doc.Status)
	require.NotNil(t, doc.SignedAt)
	assert.Equal(t, at, *doc.SignedAt)
	assert.False(t, doc.WasOverdue)
}

func TestDocument_Sign_AfterDueDate_StampsOverdue(t *testing.T) {
	doc := signDoc()
	late := doc.DueDate.AddDate(0, 0, 3)

	require.NoError(t, doc.Sign(late))
	assert.True(t, doc.WasOverdue)
}

func TestDocument_Sign_WrongAction_Rejected(t *testing.T) {
	// GIVEN: An acknowledgment document
	// WHEN: A signature is attempted
	// THEN: The transition is rejected with a TransitionError

	doc := signDoc()
	doc.Action = onboarding.ActionAcknowledge

	err := doc.Sign(time.Now())
	require.Error(t, err)
	var tr *onboarding.TransitionError
	require.ErrorAs(t, err, &tr)
	assert.Equal(t, "sign", tr.Attempted)
	assert.True(t, onboarding.IsClientError(err))
}

func TestDocument_Sign_AlreadySigned_Rejected(t *testing.T) {
	doc := signDoc()
	require.NoError(t, doc.Sign(time.Now()))

	err := doc.Sign(time.Now())
	var tr *onboarding.TransitionError
	require.ErrorAs(t, err, &tr)
	assert.Equal(t, onboarding.DocSigned, tr.From)
}

func TestDocument_Verify_RequiresUploadedState(t *testing.T) {
	doc := uploadDoc()

	err := doc.Verify("hr-1", time.Now())
	var tr *onboarding.TransitionError
	require.ErrorAs(t, err, &tr)

	require.NoError(t, doc.Upload(time.Now()))
	require.NoError(t, doc.Verify("hr-1", time.Now()))
	assert.Equal(t, onboarding.DocVerified, doc.Status)
	assert.Equal(t, "hr-1", doc.VerifiedBy)
}

func TestDocument_Reject_RequiresReason(t *testing.T) {
	doc := uploadDoc()
	require.NoError(t, doc.Upload(time.Now()))

	err := doc.Reject("hr-1", "", time.Now())
	require.ErrorIs(t, err, onboarding.ErrRejectionReasonRequired)
	assert.Equal(t, onboarding.DocUploaded, doc.Status)
}

func TestDocument_ReuploadAfterRejection_ClearsReason(t *testing.T) {
	// GIVEN: An uploaded document rejected by HR
	// WHEN: The employee uploads again
	// THEN: The row re-enters uploaded with the rejection reason cleared

	doc := uploadDoc()
	now := time.Now()
	require.NoError(t, doc.Upload(now))
	require.NoError(t, doc.Reject("hr-1", "photo is blurry", now))
	assert.Equal(t, onboarding.DocRejected, doc.Status)
	assert.Equal(t, "photo is blurry", doc.RejectionReason)

	require.NoError(t, doc.Upload(now.Add(time.Hour)))
	assert.Equal(t, onboarding.DocUploaded, doc.Status)
	assert.Empty(t, doc.RejectionReason)
}

func TestDocument_SignAfterRejection_Allowed(t *testing.T) {
	// The retry loop also applies to signature documents.
	doc := signDoc()
	doc.Status = onboarding.DocRejected

	require.NoError(t, doc.Sign(time.Now()))
	assert.Equal(t, onboarding.DocSigned, doc.Status)
}

func TestDocumentStatus_Satisfied(t *testing.T) {
	satisfied := []onboarding.DocumentStatus{
		onboarding.DocSigned, onboarding.DocAcknowledged,
		onboarding.DocVerified, onboarding.DocUploaded,
	}
	for _, s := range satisfied {
		assert.True(t, s.Satisfied(), string(s))
	}
	assert.False(t, onboarding.DocPending.Satisfied())
	assert.False(t, onboarding.DocRejected.Satisfied())
}

// =============================================================================
// ENGINE OPERATION TESTS
// =============================================================================

func TestEngine_SignDocument_OtherEmployee_NotFound(t *testing.T) {
	// GIVEN: A document belonging to emp-1
	// WHEN: emp-2 tries to sign it
	// THEN: The document is not found

	engine, store := newTestEngine(t)
	seedEmployee(t, store, fullProfileEmployee("emp-1"))
	result := startOnboarding(t, engine, "emp-1")

	_, _, err := engine.SignDocument(context.Background(), testTenant, "emp-2", result.Documents[0].ID)
	require.ErrorIs(t, err, onboarding.ErrDocumentNotFound)
}

func TestEngine_RejectDocument_DoesNotAdvancePhase(t *testing.T) {
	// GIVEN: An uploaded phase-3 document
	// WHEN: HR rejects it
	// THEN: The rejection persists but phase status is untouched

	engine, store := newTestEngine(t)
	ctx := context.Background()
	seedEmployee(t, store, fullProfileEmployee("emp-1"))
	result := startOnboarding(t, engine, "emp-1")

	var target onboarding.DocumentID
	for _, doc := range result.Documents {
		if doc.Action == onboarding.ActionUpload {
			target = doc.ID
			break
		}
	}
	require.NotEmpty(t, target)

	_, _, err := engine.UploadDocument(ctx, testTenant, "emp-1", target)
	require.NoError(t, err)

	rejected, err := engine.RejectDocument(ctx, testTenant, "emp-1", target, "hr-1", "wrong file")
	require.NoError(t, err)
	assert.Equal(t, onboarding.DocRejected, rejected.Status)
	assert.Equal(t, "wrong file", rejected.RejectionReason)

	rec, err := store.GetRecord(ctx, testTenant, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.CurrentPhase)
}

func TestEngine_MarkEmployeeFileComplete(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	seedEmployee(t, store, fullProfileEmployee("emp-1"))
	startOnboarding(t, engine, "emp-1")

	rec, err := engine.MarkEmployeeFileComplete(ctx, testTenant, "emp-1", "hr-9")
	require.NoError(t, err)
	assert.True(t, rec.EmployeeFileComplete)
	assert.Equal(t, "hr-9", rec.EmployeeFileVerifiedBy)
	require.NotNil(t, rec.EmployeeFileVerifiedAt)
}

func TestEngine_MarkEmployeeFileComplete_NoRecord(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.MarkEmployeeFileComplete(context.Background(), testTenant, "nobody", "hr-1")
	require.ErrorIs(t, err, onboarding.ErrNoOnboardingRecord)
}
