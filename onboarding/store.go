/*
store.go - Persistence interfaces for the onboarding engine

PURPOSE:
  Defines the interface between the engine and the database. Implementations
  exist for PostgreSQL (production), SQLite (dev/demo and :memory: tests) and
  in-memory (unit tests).

KEY INTERFACES:
  WorkflowStore:  workflow configuration reads (plus admin writes)
  RecordStore:    the one-per-employee onboarding record
  DocumentStore:  the per-employee document ledger
  CheckinStore:   probation check-in tasks
  EmployeeStore:  the narrow employee-record contract (external collaborator)
  PolicyStore:    read-only policy catalog queries
  TxStore:        Store + unit-of-work (WithTx)

TRANSACTION BOUNDARIES:
  Initialize and Activate each run inside a single WithTx call; every other
  operation is a plain read-then-write sequence. WithTx hands the callback a
  Store scoped to the database transaction; returning an error rolls back.

IDEMPOTENCY:
  Duplicate-insert races are backstopped by uniqueness constraints in the
  concrete stores: (employee, document_type) for config-seeded rows,
  (employee, policy_id) for policy rows, (employee, checkin_type) for
  check-ins, and a unique employee_id on the onboarding record.

NOT-FOUND CONVENTION:
  Single-row getters return (nil, nil) when the row doesn't exist. Sentinel
  errors are the engine's concern, not the store's.

IMPLEMENTATIONS:
  - store/postgres: pgx-backed production store
  - store/sqlite:   SQLite store (WAL, partial unique indexes)
  - onboarding/store: in-memory store for unit tests
*/
package onboarding

import (
	"context"
	"time"
)

// =============================================================================
// STORE INTERFACES
// =============================================================================

// WorkflowStore persists workflow configuration templates.
type WorkflowStore interface {
	// GetWorkflow returns the workflow iff it belongs to the tenant.
	GetWorkflow(ctx context.Context, tenantID TenantID, id WorkflowID) (*Workflow, error)

	// GetDefaultWorkflow returns the active company-scoped default, if any.
	GetDefaultWorkflow(ctx context.Context, tenantID TenantID, companyID CompanyID) (*Workflow, error)

	// GetTenantDefaultWorkflow returns the active tenant-wide default
	// (company scope empty), if any.
	GetTenantDefaultWorkflow(ctx context.Context, tenantID TenantID) (*Workflow, error)

	SaveWorkflow(ctx context.Context, wf *Workflow) error
	ListWorkflows(ctx context.Context, tenantID TenantID) ([]Workflow, error)
}

// RecordStore persists the per-employee onboarding record.
type RecordStore interface {
	// GetRecord returns the employee's record scoped to the tenant.
	GetRecord(ctx context.Context, tenantID TenantID, employeeID EmployeeID) (*Record, error)

	// SaveRecord inserts or updates by the unique employee id.
	SaveRecord(ctx context.Context, rec *Record) error

	// ListRecords returns every record in the tenant, oldest start first.
	ListRecords(ctx context.Context, tenantID TenantID) ([]Record, error)
}

// DocumentFilter narrows ledger listings.
type DocumentFilter struct {
	Phase  *int
	Status *DocumentStatus
}

// DocumentStore persists the document ledger. Rows are created once at
// initialization and mutated through status transitions; never deleted.
type DocumentStore interface {
	GetDocument(ctx context.Context, tenantID TenantID, id DocumentID) (*Document, error)

	// FindDocumentByType locates a config-seeded row by (employee, type).
	FindDocumentByType(ctx context.Context, employeeID EmployeeID, docType string) (*Document, error)

	// FindDocumentByPolicy locates a policy row by (employee, policy).
	FindDocumentByPolicy(ctx context.Context, employeeID EmployeeID, policyID PolicyID) (*Document, error)

	InsertDocument(ctx context.Context, doc *Document) error
	UpdateDocument(ctx context.Context, doc *Document) error

	// ListDocuments returns the employee's ledger ordered by phase then type.
	ListDocuments(ctx context.Context, tenantID TenantID, employeeID EmployeeID, filter DocumentFilter) ([]Document, error)

	// ListPhaseDocuments returns all rows for one employee and phase.
	ListPhaseDocuments(ctx context.Context, employeeID EmployeeID, phase int) ([]Document, error)
}

// CheckinStore persists probation check-in tasks.
type CheckinStore interface {
	CheckinExists(ctx context.Context, employeeID EmployeeID, typ CheckinType) (bool, error)
	InsertCheckin(ctx context.Context, task *CheckinTask) error
	ListCheckins(ctx context.Context, employeeID EmployeeID) ([]CheckinTask, error)
}

// EmployeeStore is the narrow contract with the employee-management
// subsystem. The engine reads the profile slice and writes exactly three
// fields: employment status, onboarding-completed timestamp, and the cached
// profile completion percentage.
type EmployeeStore interface {
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)
	SaveEmployee(ctx context.Context, emp *Employee) error
	SetEmploymentStatus(ctx context.Context, id EmployeeID, status EmploymentStatus, completedAt *time.Time) error
	SetProfileCompletion(ctx context.Context, id EmployeeID, percentage int) error
}

// PolicyStore exposes the policy catalog.
type PolicyStore interface {
	// ListAcknowledgmentPolicies returns active policies requiring
	// acknowledgment, scoped to the tenant and visible to the company
	// (company match or tenant-wide).
	ListAcknowledgmentPolicies(ctx context.Context, tenantID TenantID, companyID CompanyID) ([]Policy, error)

	SavePolicy(ctx context.Context, p *Policy) error
}

// Store is the full persistence surface the engine needs.
type Store interface {
	WorkflowStore
	RecordStore
	DocumentStore
	CheckinStore
	EmployeeStore
	PolicyStore
}

// TxStore adds the unit-of-work used by Initialize and Activate.
type TxStore interface {
	Store

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back and the error propagated unchanged.
	WithTx(ctx context.Context, fn func(Store) error) error
}
