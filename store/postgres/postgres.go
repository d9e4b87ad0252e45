/*
Package postgres provides a PostgreSQL-backed implementation of the onboarding store.

PURPOSE:
  Implements onboarding.TxStore on pgx. This is the production store; the
  schema matches store/sqlite with native types (TIMESTAMPTZ, JSONB, BOOLEAN)
  instead of the TEXT encodings SQLite uses.

CONNECTION:
  Backed by a pgxpool.Pool. Both the pool and pgx.Tx satisfy the internal
  querier interface, so every query helper works inside and outside WithTx.

IDEMPOTENCY INDEXES:
  Same backstops as the SQLite store: partial unique indexes on the document
  ledger for (employee_id, document_type) / (employee_id, policy_id), a
  unique (employee_id, checkin_type) on check-ins, and a unique employee_id
  on the onboarding record.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - onboarding/store.go: Interface definitions
  - store/sqlite: SQLite store for dev and :memory: tests
*/
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bfi/onboarding-engine/onboarding"
)

// querier is the subset of *pgxpool.Pool and pgx.Tx the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn implements onboarding.Store against a querier.
type conn struct {
	q querier
}

// Store implements onboarding.TxStore using PostgreSQL.
type Store struct {
	conn
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and migrates the schema.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{conn: conn{q: pool}, pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// migrate creates the database schema.
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS onboarding_workflows (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		phase_config JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workflows_tenant
		ON onboarding_workflows(tenant_id);
	CREATE INDEX IF NOT EXISTS idx_workflows_default
		ON onboarding_workflows(tenant_id, company_id)
		WHERE is_default = TRUE AND is_active = TRUE;

	CREATE TABLE IF NOT EXISTS employee_onboarding (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL UNIQUE,
		workflow_id TEXT,
		current_phase INTEGER NOT NULL DEFAULT 1,
		overall_status TEXT NOT NULL DEFAULT 'in_progress',
		phase_statuses JSONB NOT NULL,
		employee_file_complete BOOLEAN NOT NULL DEFAULT FALSE,
		employee_file_verified_by TEXT,
		employee_file_verified_at TIMESTAMPTZ,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_onboarding_tenant
		ON employee_onboarding(tenant_id);

	CREATE TABLE IF NOT EXISTS onboarding_documents (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		onboarding_id TEXT NOT NULL,
		document_type TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		phase INTEGER NOT NULL,
		action TEXT NOT NULL,
		required BOOLEAN NOT NULL DEFAULT TRUE,
		status TEXT NOT NULL DEFAULT 'pending',
		due_date TIMESTAMPTZ NOT NULL,
		policy_id TEXT,
		rejection_reason TEXT,
		signed_at TIMESTAMPTZ,
		acknowledged_at TIMESTAMPTZ,
		uploaded_at TIMESTAMPTZ,
		verified_by TEXT,
		verified_at TIMESTAMPTZ,
		was_overdue BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_employee_type
		ON onboarding_documents(employee_id, document_type)
		WHERE policy_id IS NULL;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_employee_policy
		ON onboarding_documents(employee_id, policy_id)
		WHERE policy_id IS NOT NULL;
	CREATE INDEX IF NOT EXISTS idx_documents_employee_phase
		ON onboarding_documents(employee_id, phase);
	CREATE INDEX IF NOT EXISTS idx_documents_tenant_employee
		ON onboarding_documents(tenant_id, employee_id);

	CREATE TABLE IF NOT EXISTS probation_checkins (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		checkin_type TEXT NOT NULL,
		day INTEGER NOT NULL,
		scheduled_at TIMESTAMPTZ NOT NULL,
		manager_id TEXT,
		hr_assignee_id TEXT,
		status TEXT NOT NULL DEFAULT 'scheduled',
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE(employee_id, checkin_type)
	);

	CREATE INDEX IF NOT EXISTS idx_checkins_employee
		ON probation_checkins(employee_id);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		date_of_birth TIMESTAMPTZ,
		gender TEXT NOT NULL DEFAULT '',
		marital_status TEXT NOT NULL DEFAULT '',
		national_id TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		bank_name TEXT NOT NULL DEFAULT '',
		bank_account_number TEXT NOT NULL DEFAULT '',
		bank_account_name TEXT NOT NULL DEFAULT '',
		emergency_contact_name TEXT NOT NULL DEFAULT '',
		emergency_contact_phone TEXT NOT NULL DEFAULT '',
		job_title TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		reports_to TEXT NOT NULL DEFAULT '',
		hire_date TIMESTAMPTZ,
		tax_id TEXT NOT NULL DEFAULT '',
		employment_status TEXT NOT NULL DEFAULT '',
		profile_completion INTEGER NOT NULL DEFAULT 0,
		onboarding_completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS policies (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		requires_acknowledgment BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE INDEX IF NOT EXISTS idx_policies_tenant
		ON policies(tenant_id);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

// =============================================================================
// TRANSACTIONAL STORE (onboarding.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(store onboarding.Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&conn{q: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// =============================================================================
// WORKFLOW STORE
// =============================================================================

const workflowColumns = `id, tenant_id, company_id, name, description, is_default, is_active,
	phase_config, created_at, updated_at`

func (c *conn) GetWorkflow(ctx context.Context, tenantID onboarding.TenantID, id onboarding.WorkflowID) (*onboarding.Workflow, error) {
	row := c.q.QueryRow(ctx,
		`SELECT `+workflowColumns+` FROM onboarding_workflows WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	return scanWorkflow(row)
}

func (c *conn) GetDefaultWorkflow(ctx context.Context, tenantID onboarding.TenantID, companyID onboarding.CompanyID) (*onboarding.Workflow, error) {
	row := c.q.QueryRow(ctx,
		`SELECT `+workflowColumns+` FROM onboarding_workflows
		 WHERE tenant_id = $1 AND company_id = $2 AND is_default = TRUE AND is_active = TRUE
		 LIMIT 1`,
		tenantID, companyID,
	)
	return scanWorkflow(row)
}

func (c *conn) GetTenantDefaultWorkflow(ctx context.Context, tenantID onboarding.TenantID) (*onboarding.Workflow, error) {
	row := c.q.QueryRow(ctx,
		`SELECT `+workflowColumns+` FROM onboarding_workflows
		 WHERE tenant_id = $1 AND company_id = '' AND is_default = TRUE AND is_active = TRUE
		 LIMIT 1`,
		tenantID,
	)
	return scanWorkflow(row)
}

func (c *conn) SaveWorkflow(ctx context.Context, wf *onboarding.Workflow) error {
	configJSON, err := json.Marshal(wf.PhaseConfig)
	if err != nil {
		return fmt.Errorf("failed to encode phase config: %w", err)
	}

	query := `
		INSERT INTO onboarding_workflows
		(id, tenant_id, company_id, name, description, is_default, is_active,
		 phase_config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			is_default = excluded.is_default,
			is_active = excluded.is_active,
			phase_config = excluded.phase_config,
			updated_at = excluded.updated_at
	`

	_, err = c.q.Exec(ctx, query,
		wf.ID, wf.TenantID, wf.CompanyID, wf.Name, wf.Description,
		wf.IsDefault, wf.IsActive, configJSON, wf.CreatedAt, wf.UpdatedAt,
	)
	return err
}

func (c *conn) ListWorkflows(ctx context.Context, tenantID onboarding.TenantID) ([]onboarding.Workflow, error) {
	rows, err := c.q.Query(ctx,
		`SELECT `+workflowColumns+` FROM onboarding_workflows WHERE tenant_id = $1 ORDER BY created_at`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []onboarding.Workflow
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, *wf)
	}
	return workflows, rows.Err()
}

func scanWorkflow(row pgx.Row) (*onboarding.Workflow, error) {
	var (
		wf         onboarding.Workflow
		configJSON []byte
	)

	err := row.Scan(
		&wf.ID, &wf.TenantID, &wf.CompanyID, &wf.Name, &wf.Description,
		&wf.IsDefault, &wf.IsActive, &configJSON, &wf.CreatedAt, &wf.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan workflow: %w", err)
	}

	if err := json.Unmarshal(configJSON, &wf.PhaseConfig); err != nil {
		return nil, fmt.Errorf("failed to decode phase config: %w", err)
	}
	return &wf, nil
}

// =============================================================================
// RECORD STORE
// =============================================================================

const recordColumns = `id, tenant_id, company_id, employee_id, workflow_id, current_phase,
	overall_status, phase_statuses, employee_file_complete, employee_file_verified_by,
	employee_file_verified_at, started_at, completed_at, updated_at`

func (c *conn) GetRecord(ctx context.Context, tenantID onboarding.TenantID, employeeID onboarding.EmployeeID) (*onboarding.Record, error) {
	row := c.q.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM employee_onboarding WHERE employee_id = $1 AND tenant_id = $2`,
		employeeID, tenantID,
	)
	return scanRecord(row)
}

func (c *conn) ListRecords(ctx context.Context, tenantID onboarding.TenantID) ([]onboarding.Record, error) {
	rows, err := c.q.Query(ctx,
		`SELECT `+recordColumns+` FROM employee_onboarding
		 WHERE tenant_id = $1 ORDER BY started_at ASC, employee_id ASC`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []onboarding.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (c *conn) SaveRecord(ctx context.Context, rec *onboarding.Record) error {
	statusesJSON, err := json.Marshal(rec.PhaseStatuses)
	if err != nil {
		return fmt.Errorf("failed to encode phase statuses: %w", err)
	}

	// started_at is excluded from the conflict update: restarting an
	// onboarding keeps the original start timestamp.
	query := `
		INSERT INTO employee_onboarding
		(id, tenant_id, company_id, employee_id, workflow_id, current_phase,
		 overall_status, phase_statuses, employee_file_complete,
		 employee_file_verified_by, employee_file_verified_at,
		 started_at, completed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT(employee_id) DO UPDATE SET
			workflow_id = excluded.workflow_id,
			current_phase = excluded.current_phase,
			overall_status = excluded.overall_status,
			phase_statuses = excluded.phase_statuses,
			employee_file_complete = excluded.employee_file_complete,
			employee_file_verified_by = excluded.employee_file_verified_by,
			employee_file_verified_at = excluded.employee_file_verified_at,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at
	`

	_, err = c.q.Exec(ctx, query,
		rec.ID, rec.TenantID, rec.CompanyID, rec.EmployeeID,
		nullString(string(rec.WorkflowID)), rec.CurrentPhase, rec.OverallStatus,
		statusesJSON, rec.EmployeeFileComplete,
		nullString(rec.EmployeeFileVerifiedBy), rec.EmployeeFileVerifiedAt,
		rec.StartedAt, rec.CompletedAt, rec.UpdatedAt,
	)
	return err
}

func scanRecord(row pgx.Row) (*onboarding.Record, error) {
	var (
		rec          onboarding.Record
		workflowID   *string
		statusesJSON []byte
		verifiedBy   *string
	)

	err := row.Scan(
		&rec.ID, &rec.TenantID, &rec.CompanyID, &rec.EmployeeID, &workflowID,
		&rec.CurrentPhase, &rec.OverallStatus, &statusesJSON,
		&rec.EmployeeFileComplete, &verifiedBy, &rec.EmployeeFileVerifiedAt,
		&rec.StartedAt, &rec.CompletedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan onboarding record: %w", err)
	}

	if err := json.Unmarshal(statusesJSON, &rec.PhaseStatuses); err != nil {
		return nil, fmt.Errorf("failed to decode phase statuses: %w", err)
	}
	rec.WorkflowID = onboarding.WorkflowID(deref(workflowID))
	rec.EmployeeFileVerifiedBy = deref(verifiedBy)
	return &rec, nil
}

// =============================================================================
// DOCUMENT STORE
// =============================================================================

const documentColumns = `id, tenant_id, company_id, employee_id, onboarding_id, document_type,
	name, category, phase, action, required, status, due_date, policy_id, rejection_reason,
	signed_at, acknowledged_at, uploaded_at, verified_by, verified_at, was_overdue,
	created_at, updated_at`

func (c *conn) GetDocument(ctx context.Context, tenantID onboarding.TenantID, id onboarding.DocumentID) (*onboarding.Document, error) {
	row := c.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM onboarding_documents WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	return scanDocument(row)
}

func (c *conn) FindDocumentByType(ctx context.Context, employeeID onboarding.EmployeeID, docType string) (*onboarding.Document, error) {
	row := c.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM onboarding_documents
		 WHERE employee_id = $1 AND document_type = $2 AND policy_id IS NULL`,
		employeeID, docType,
	)
	return scanDocument(row)
}

func (c *conn) FindDocumentByPolicy(ctx context.Context, employeeID onboarding.EmployeeID, policyID onboarding.PolicyID) (*onboarding.Document, error) {
	row := c.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM onboarding_documents
		 WHERE employee_id = $1 AND policy_id = $2`,
		employeeID, policyID,
	)
	return scanDocument(row)
}

func (c *conn) InsertDocument(ctx context.Context, doc *onboarding.Document) error {
	query := `
		INSERT INTO onboarding_documents
		(id, tenant_id, company_id, employee_id, onboarding_id, document_type,
		 name, category, phase, action, required, status, due_date, policy_id,
		 rejection_reason, signed_at, acknowledged_at, uploaded_at, verified_by,
		 verified_at, was_overdue, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := c.q.Exec(ctx, query,
		doc.ID, doc.TenantID, doc.CompanyID, doc.EmployeeID, doc.OnboardingID,
		doc.Type, doc.Name, doc.Category, doc.Phase, doc.Action, doc.Required,
		doc.Status, doc.DueDate, nullString(string(doc.PolicyID)),
		nullString(doc.RejectionReason), doc.SignedAt, doc.AcknowledgedAt,
		doc.UploadedAt, nullString(doc.VerifiedBy), doc.VerifiedAt,
		doc.WasOverdue, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (c *conn) UpdateDocument(ctx context.Context, doc *onboarding.Document) error {
	query := `
		UPDATE onboarding_documents SET
			status = $1,
			rejection_reason = $2,
			signed_at = $3,
			acknowledged_at = $4,
			uploaded_at = $5,
			verified_by = $6,
			verified_at = $7,
			was_overdue = $8,
			updated_at = $9
		WHERE id = $10
	`

	_, err := c.q.Exec(ctx, query,
		doc.Status, nullString(doc.RejectionReason), doc.SignedAt,
		doc.AcknowledgedAt, doc.UploadedAt, nullString(doc.VerifiedBy),
		doc.VerifiedAt, doc.WasOverdue, doc.UpdatedAt, doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (c *conn) ListDocuments(ctx context.Context, tenantID onboarding.TenantID, employeeID onboarding.EmployeeID, filter onboarding.DocumentFilter) ([]onboarding.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM onboarding_documents
		 WHERE tenant_id = $1 AND employee_id = $2`
	args := []any{tenantID, employeeID}

	if filter.Phase != nil {
		args = append(args, *filter.Phase)
		query += fmt.Sprintf(" AND phase = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY phase ASC, document_type ASC"

	return c.queryDocuments(ctx, query, args...)
}

func (c *conn) ListPhaseDocuments(ctx context.Context, employeeID onboarding.EmployeeID, phase int) ([]onboarding.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM onboarding_documents
		 WHERE employee_id = $1 AND phase = $2
		 ORDER BY document_type ASC`
	return c.queryDocuments(ctx, query, employeeID, phase)
}

func (c *conn) queryDocuments(ctx context.Context, query string, args ...any) ([]onboarding.Document, error) {
	rows, err := c.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []onboarding.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func scanDocument(row pgx.Row) (*onboarding.Document, error) {
	var (
		doc             onboarding.Document
		policyID        *string
		rejectionReason *string
		verifiedBy      *string
	)

	err := row.Scan(
		&doc.ID, &doc.TenantID, &doc.CompanyID, &doc.EmployeeID, &doc.OnboardingID,
		&doc.Type, &doc.Name, &doc.Category, &doc.Phase, &doc.Action, &doc.Required,
		&doc.Status, &doc.DueDate, &policyID, &rejectionReason,
		&doc.SignedAt, &doc.AcknowledgedAt, &doc.UploadedAt, &verifiedBy,
		&doc.VerifiedAt, &doc.WasOverdue, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.PolicyID = onboarding.PolicyID(deref(policyID))
	doc.RejectionReason = deref(rejectionReason)
	doc.VerifiedBy = deref(verifiedBy)
	return &doc, nil
}

// =============================================================================
// CHECKIN STORE
// =============================================================================

func (c *conn) CheckinExists(ctx context.Context, employeeID onboarding.EmployeeID, typ onboarding.CheckinType) (bool, error) {
	var count int
	err := c.q.QueryRow(ctx,
		"SELECT COUNT(*) FROM probation_checkins WHERE employee_id = $1 AND checkin_type = $2",
		employeeID, typ,
	).Scan(&count)
	return count > 0, err
}

func (c *conn) InsertCheckin(ctx context.Context, task *onboarding.CheckinTask) error {
	query := `
		INSERT INTO probation_checkins
		(id, tenant_id, company_id, employee_id, checkin_type, day, scheduled_at,
		 manager_id, hr_assignee_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := c.q.Exec(ctx, query,
		task.ID, task.TenantID, task.CompanyID, task.EmployeeID, task.Type,
		task.Day, task.ScheduledAt,
		nullString(string(task.ManagerID)), nullString(string(task.HRAssigneeID)),
		task.Status, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert checkin: %w", err)
	}
	return nil
}

func (c *conn) ListCheckins(ctx context.Context, employeeID onboarding.EmployeeID) ([]onboarding.CheckinTask, error) {
	rows, err := c.q.Query(ctx,
		`SELECT id, tenant_id, company_id, employee_id, checkin_type, day, scheduled_at,
		        manager_id, hr_assignee_id, status, created_at
		 FROM probation_checkins WHERE employee_id = $1 ORDER BY day ASC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []onboarding.CheckinTask
	for rows.Next() {
		var (
			task      onboarding.CheckinTask
			managerID *string
			hrID      *string
		)
		if err := rows.Scan(
			&task.ID, &task.TenantID, &task.CompanyID, &task.EmployeeID,
			&task.Type, &task.Day, &task.ScheduledAt, &managerID, &hrID,
			&task.Status, &task.CreatedAt,
		); err != nil {
			return nil, err
		}
		task.ManagerID = onboarding.EmployeeID(deref(managerID))
		task.HRAssigneeID = onboarding.EmployeeID(deref(hrID))
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

const employeeColumns = `id, tenant_id, company_id, first_name, last_name, email, phone,
	date_of_birth, gender, marital_status, national_id, address, city, state, country,
	bank_name, bank_account_number, bank_account_name, emergency_contact_name,
	emergency_contact_phone, job_title, department, reports_to, hire_date, tax_id,
	employment_status, profile_completion, onboarding_completed_at, created_at`

func (c *conn) GetEmployee(ctx context.Context, id onboarding.EmployeeID) (*onboarding.Employee, error) {
	row := c.q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`,
		id,
	)

	var emp onboarding.Employee
	err := row.Scan(
		&emp.ID, &emp.TenantID, &emp.CompanyID, &emp.FirstName, &emp.LastName,
		&emp.Email, &emp.Phone, &emp.DateOfBirth, &emp.Gender, &emp.MaritalStatus,
		&emp.NationalID, &emp.Address, &emp.City, &emp.State, &emp.Country,
		&emp.BankName, &emp.BankAccountNumber, &emp.BankAccountName,
		&emp.EmergencyContactName, &emp.EmergencyContactPhone,
		&emp.JobTitle, &emp.Department, &emp.ReportsTo, &emp.HireDate, &emp.TaxID,
		&emp.EmploymentStatus, &emp.ProfileCompletion, &emp.OnboardingCompletedAt,
		&emp.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}
	return &emp, nil
}

func (c *conn) SaveEmployee(ctx context.Context, emp *onboarding.Employee) error {
	query := `
		INSERT INTO employees
		(id, tenant_id, company_id, first_name, last_name, email, phone,
		 date_of_birth, gender, marital_status, national_id, address, city, state,
		 country, bank_name, bank_account_number, bank_account_name,
		 emergency_contact_name, emergency_contact_phone, job_title, department,
		 reports_to, hire_date, tax_id, employment_status, profile_completion,
		 onboarding_completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			phone = excluded.phone,
			date_of_birth = excluded.date_of_birth,
			gender = excluded.gender,
			marital_status = excluded.marital_status,
			national_id = excluded.national_id,
			address = excluded.address,
			city = excluded.city,
			state = excluded.state,
			country = excluded.country,
			bank_name = excluded.bank_name,
			bank_account_number = excluded.bank_account_number,
			bank_account_name = excluded.bank_account_name,
			emergency_contact_name = excluded.emergency_contact_name,
			emergency_contact_phone = excluded.emergency_contact_phone,
			job_title = excluded.job_title,
			department = excluded.department,
			reports_to = excluded.reports_to,
			hire_date = excluded.hire_date,
			tax_id = excluded.tax_id,
			employment_status = excluded.employment_status,
			profile_completion = excluded.profile_completion,
			onboarding_completed_at = excluded.onboarding_completed_at
	`

	_, err := c.q.Exec(ctx, query,
		emp.ID, emp.TenantID, emp.CompanyID, emp.FirstName, emp.LastName,
		emp.Email, emp.Phone, emp.DateOfBirth, emp.Gender, emp.MaritalStatus,
		emp.NationalID, emp.Address, emp.City, emp.State, emp.Country,
		emp.BankName, emp.BankAccountNumber, emp.BankAccountName,
		emp.EmergencyContactName, emp.EmergencyContactPhone,
		emp.JobTitle, emp.Department, emp.ReportsTo, emp.HireDate, emp.TaxID,
		emp.EmploymentStatus, emp.ProfileCompletion, emp.OnboardingCompletedAt,
		emp.CreatedAt,
	)
	return err
}

func (c *conn) SetEmploymentStatus(ctx context.Context, id onboarding.EmployeeID, status onboarding.EmploymentStatus, completedAt *time.Time) error {
	// COALESCE keeps the existing completion timestamp when none is passed.
	_, err := c.q.Exec(ctx,
		`UPDATE employees
		 SET employment_status = $1,
		     onboarding_completed_at = COALESCE($2, onboarding_completed_at)
		 WHERE id = $3`,
		status, completedAt, id,
	)
	return err
}

func (c *conn) SetProfileCompletion(ctx context.Context, id onboarding.EmployeeID, percentage int) error {
	_, err := c.q.Exec(ctx,
		"UPDATE employees SET profile_completion = $1 WHERE id = $2",
		percentage, id,
	)
	return err
}

// =============================================================================
// POLICY STORE
// =============================================================================

func (c *conn) ListAcknowledgmentPolicies(ctx context.Context, tenantID onboarding.TenantID, companyID onboarding.CompanyID) ([]onboarding.Policy, error) {
	rows, err := c.q.Query(ctx,
		`SELECT id, tenant_id, company_id, name, requires_acknowledgment, is_active
		 FROM policies
		 WHERE tenant_id = $1 AND (company_id = $2 OR company_id = '')
		   AND requires_acknowledgment = TRUE AND is_active = TRUE
		 ORDER BY name`,
		tenantID, companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []onboarding.Policy
	for rows.Next() {
		var p onboarding.Policy
		if err := rows.Scan(&p.ID, &p.TenantID, &p.CompanyID, &p.Name,
			&p.RequiresAcknowledgment, &p.IsActive); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (c *conn) SavePolicy(ctx context.Context, p *onboarding.Policy) error {
	query := `
		INSERT INTO policies (id, tenant_id, company_id, name, requires_acknowledgment, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			requires_acknowledgment = excluded.requires_acknowledgment,
			is_active = excluded.is_active
	`

	_, err := c.q.Exec(ctx, query,
		p.ID, p.TenantID, p.CompanyID, p.Name, p.RequiresAcknowledgment, p.IsActive,
	)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
