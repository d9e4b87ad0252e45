package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfi/onboarding-engine/onboarding"
	"github.com/bfi/onboarding-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

const (
	tenant  = onboarding.TenantID("tenant-1")
	company = onboarding.CompanyID("company-1")
)

func newStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(employeeID onboarding.EmployeeID) *onboarding.Record {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	return &onboarding.Record{
		ID:            onboarding.RecordID("rec-" + string(employeeID)),
		TenantID:      tenant,
		CompanyID:     company,
		EmployeeID:    employeeID,
		CurrentPhase:  1,
		OverallStatus: onboarding.OverallInProgress,
		PhaseStatuses: onboarding.NewPhaseStatuses(),
		StartedAt:     now,
		UpdatedAt:     now,
	}
}

func testDocument(id onboarding.DocumentID, employeeID onboarding.EmployeeID, docType string, phase int) *onboarding.Document {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	return &onboarding.Document{
		ID:           id,
		TenantID:     tenant,
		CompanyID:    company,
		EmployeeID:   employeeID,
		OnboardingID: "rec-" + onboarding.RecordID(employeeID),
		Type:         docType,
		Name:         docType,
		Category:     onboarding.CategoryFor(phase, onboarding.ActionSign),
		Phase:        phase,
		Action:       onboarding.ActionSign,
		Required:     true,
		Status:       onboarding.DocPending,
		DueDate:      now.AddDate(0, 0, 2),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// =============================================================================
// RECORD PERSISTENCE
// =============================================================================

func TestRecord_RoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	rec := testRecord("emp-1")
	rec.PhaseStatuses[1] = onboarding.PhaseInProgress
	require.NoError(t, store.SaveRecord(ctx, rec))

	got, err := store.GetRecord(ctx, tenant, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, onboarding.PhaseInProgress, got.PhaseStatuses.Get(1))
	assert.Equal(t, onboarding.PhasePending, got.PhaseStatuses.Get(2))
	assert.True(t, rec.StartedAt.Equal(got.StartedAt))
}

func TestRecord_WrongTenant_NotVisible(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveRecord(ctx, testRecord("emp-1")))

	got, err := store.GetRecord(ctx, "other-tenant", "emp-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecord_Upsert_PreservesStartedAt(t *testing.T) {
	// Restarting an onboarding must not move the original start timestamp.
	store := newStore(t)
	ctx := context.Background()

	rec := testRecord("emp-1")
	require.NoError(t, store.SaveRecord(ctx, rec))

	restarted := testRecord("emp-1")
	restarted.StartedAt = rec.StartedAt.AddDate(0, 1, 0)
	restarted.CurrentPhase = 1
	require.NoError(t, store.SaveRecord(ctx, restarted))

	got, err := store.GetRecord(ctx, tenant, "emp-1")
	require.NoError(t, err)
	assert.True(t, rec.StartedAt.Equal(got.StartedAt))
}

func TestRecord_List_TenantScoped(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	early := testRecord("emp-2")
	late := testRecord("emp-1")
	late.StartedAt = early.StartedAt.AddDate(0, 0, 7)
	require.NoError(t, store.SaveRecord(ctx, early))
	require.NoError(t, store.SaveRecord(ctx, late))

	other := testRecord("emp-3")
	other.TenantID = "other-tenant"
	require.NoError(t, store.SaveRecord(ctx, other))

	records, err := store.ListRecords(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, onboarding.EmployeeID("emp-2"), records[0].EmployeeID)
	assert.Equal(t, onboarding.EmployeeID("emp-1"), records[1].EmployeeID)
}

// =============================================================================
// DOCUMENT LEDGER
// =============================================================================

func TestDocument_FindByType_IgnoresPolicyRows(t *testing.T) {
	// Policy rows all share document_type "policy"; lookup by type must only
	// see non-policy rows and lookup by policy only its own.
	store := newStore(t)
	ctx := context.Background()

	plain := testDocument("doc-1", "emp-1", "offer_letter", 1)
	require.NoError(t, store.InsertDocument(ctx, plain))

	policyRow := testDocument("doc-2", "emp-1", "policy", 4)
	policyRow.Action = onboarding.ActionAcknowledge
	policyRow.PolicyID = "pol-1"
	require.NoError(t, store.InsertDocument(ctx, policyRow))

	byType, err := store.FindDocumentByType(ctx, "emp-1", "policy")
	require.NoError(t, err)
	assert.Nil(t, byType)

	byPolicy, err := store.FindDocumentByPolicy(ctx, "emp-1", "pol-1")
	require.NoError(t, err)
	require.NotNil(t, byPolicy)
	assert.Equal(t, onboarding.DocumentID("doc-2"), byPolicy.ID)
}

func TestDocument_DuplicateType_Rejected(t *testing.T) {
	// The partial unique index backstops idempotent seeding.
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertDocument(ctx, testDocument("doc-1", "emp-1", "offer_letter", 1)))
	err := store.InsertDocument(ctx, testDocument("doc-dup", "emp-1", "offer_letter", 1))
	assert.Error(t, err)
}

func TestDocument_ListWithFilter(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	d1 := testDocument("doc-1", "emp-1", "offer_letter", 1)
	d2 := testDocument("doc-2", "emp-1", "government_id", 3)
	d2.Status = onboarding.DocUploaded
	require.NoError(t, store.InsertDocument(ctx, d1))
	require.NoError(t, store.InsertDocument(ctx, d2))

	phase := 3
	docs, err := store.ListDocuments(ctx, tenant, "emp-1", onboarding.DocumentFilter{Phase: &phase})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, onboarding.DocumentID("doc-2"), docs[0].ID)

	status := onboarding.DocUploaded
	docs, err = store.ListDocuments(ctx, tenant, "emp-1", onboarding.DocumentFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, onboarding.DocumentID("doc-2"), docs[0].ID)
}

func TestDocument_Update_RoundTripsTimestamps(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	doc := testDocument("doc-1", "emp-1", "offer_letter", 1)
	require.NoError(t, store.InsertDocument(ctx, doc))

	signedAt := time.Date(2025, time.June, 3, 10, 30, 0, 0, time.UTC)
	require.NoError(t, doc.Sign(signedAt))
	require.NoError(t, store.UpdateDocument(ctx, doc))

	got, err := store.GetDocument(ctx, tenant, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, onboarding.DocSigned, got.Status)
	require.NotNil(t, got.SignedAt)
	assert.True(t, signedAt.Equal(*got.SignedAt))
	assert.True(t, got.WasOverdue)
}

// =============================================================================
// CHECK-INS
// =============================================================================

func TestCheckin_UniquePerType(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	task := &onboarding.CheckinTask{
		ID: "task-1", TenantID: tenant, CompanyID: company, EmployeeID: "emp-1",
		Type: onboarding.Checkin30Day, Day: 30,
		ScheduledAt: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		Status:      onboarding.CheckinScheduled,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.InsertCheckin(ctx, task))

	exists, err := store.CheckinExists(ctx, "emp-1", onboarding.Checkin30Day)
	require.NoError(t, err)
	assert.True(t, exists)

	dup := *task
	dup.ID = "task-2"
	assert.Error(t, store.InsertCheckin(ctx, &dup))
}

func TestCheckin_ListOrderedByDay(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	for _, c := range []struct {
		id  onboarding.TaskID
		typ onboarding.CheckinType
		day int
	}{
		{"task-90", onboarding.Checkin90Day, 90},
		{"task-30", onboarding.Checkin30Day, 30},
		{"task-60", onboarding.Checkin60Day, 60},
	} {
		require.NoError(t, store.InsertCheckin(ctx, &onboarding.CheckinTask{
			ID: c.id, TenantID: tenant, CompanyID: company, EmployeeID: "emp-1",
			Type: c.typ, Day: c.day, ScheduledAt: base.AddDate(0, 0, c.day),
			Status: onboarding.CheckinScheduled, CreatedAt: base,
		}))
	}

	tasks, err := store.ListCheckins(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, 30, tasks[0].Day)
	assert.Equal(t, 60, tasks[1].Day)
	assert.Equal(t, 90, tasks[2].Day)
}

// =============================================================================
// EMPLOYEES AND POLICIES
// =============================================================================

func TestEmployee_SetEmploymentStatus_KeepsCompletionTimestamp(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEmployee(ctx, &onboarding.Employee{
		ID: "emp-1", TenantID: tenant, CompanyID: company,
		FirstName: "Ada", LastName: "Obi", Email: "ada@example.com",
	}))

	done := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetEmploymentStatus(ctx, "emp-1", onboarding.EmploymentActive, &done))

	// A later status change without a timestamp must not clear the old one.
	require.NoError(t, store.SetEmploymentStatus(ctx, "emp-1", onboarding.EmploymentPreboarding, nil))

	emp, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, emp.OnboardingCompletedAt)
	assert.True(t, done.Equal(*emp.OnboardingCompletedAt))
}

func TestPolicy_AcknowledgmentListing(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	policies := []onboarding.Policy{
		{ID: "pol-1", TenantID: tenant, Name: "Tenant Wide", RequiresAcknowledgment: true, IsActive: true},
		{ID: "pol-2", TenantID: tenant, CompanyID: company, Name: "Company Scoped", RequiresAcknowledgment: true, IsActive: true},
		{ID: "pol-3", TenantID: tenant, CompanyID: "other-co", Name: "Other Company", RequiresAcknowledgment: true, IsActive: true},
		{ID: "pol-4", TenantID: tenant, Name: "No Ack", RequiresAcknowledgment: false, IsActive: true},
		{ID: "pol-5", TenantID: tenant, Name: "Inactive", RequiresAcknowledgment: true, IsActive: false},
	}
	for i := range policies {
		require.NoError(t, store.SavePolicy(ctx, &policies[i]))
	}

	got, err := store.ListAcknowledgmentPolicies(ctx, tenant, company)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Company Scoped", got[0].Name)
	assert.Equal(t, "Tenant Wide", got[1].Name)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestWithTx_RollbackOnError(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(tx onboarding.Store) error {
		if err := tx.SaveRecord(ctx, testRecord("emp-1")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.GetRecord(ctx, tenant, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithTx_CommitOnSuccess(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx onboarding.Store) error {
		if err := tx.SaveRecord(ctx, testRecord("emp-1")); err != nil {
			return err
		}
		return tx.InsertDocument(ctx, testDocument("doc-1", "emp-1", "offer_letter", 1))
	})
	require.NoError(t, err)

	rec, err := store.GetRecord(ctx, tenant, "emp-1")
	require.NoError(t, err)
	assert.NotNil(t, rec)
	doc, err := store.GetDocument(ctx, tenant, "doc-1")
	require.NoError(t, err)
	assert.NotNil(t, doc)
}
