/*
Package sqlite provides a SQLite-backed implementation of the onboarding store.

PURPOSE:
  Implements onboarding.TxStore using SQLite. Used for development, demos and
  :memory: integration tests; the PostgreSQL store in store/postgres carries
  the same schema with dialect differences.

KEY TABLES:
  onboarding_workflows: Tenant/company workflow configuration templates
  employee_onboarding:  One record per employee (unique employee_id)
  onboarding_documents: The per-employee document ledger
  probation_checkins:   30/60/90-day follow-up tasks
  employees:            Employee records (profile slice + status fields)
  policies:             Policy catalog feeding phase-4 acknowledgments

IDEMPOTENCY INDEXES:
  Seeding is check-then-insert in the engine; these unique indexes are its
  backstop against concurrent initializations:
  - idx_documents_employee_type:   (employee_id, document_type) for
                                   config-seeded rows (policy_id IS NULL)
  - idx_documents_employee_policy: (employee_id, policy_id) for policy rows
  - idx_checkins_employee_type:    (employee_id, checkin_type)
  - employee_onboarding.employee_id UNIQUE

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  during writes. Transactions are additionally serialized with a mutex to
  avoid SQLITE_BUSY under concurrent WithTx calls.

USAGE:
  store, err := sqlite.New("./data/onboarding.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := onboarding.New(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - onboarding/store.go: Interface definitions
  - store/postgres: pgx-backed production store
  - onboarding/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bfi/onboarding-engine/onboarding"
)

// querier is the subset of *sql.DB and *sql.Tx the store uses, so every
// query helper works both inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn implements onboarding.Store against a querier.
type conn struct {
	q querier
}

// Store implements onboarding.TxStore using SQLite.
type Store struct {
	conn
	db *sql.DB
	mu sync.Mutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{conn: conn{q: db}, db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Workflow configuration templates
	CREATE TABLE IF NOT EXISTS onboarding_workflows (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		phase_config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workflows_tenant
		ON onboarding_workflows(tenant_id);
	CREATE INDEX IF NOT EXISTS idx_workflows_default
		ON onboarding_workflows(tenant_id, company_id, is_default)
		WHERE is_default = TRUE AND is_active = TRUE;

	-- One onboarding record per employee
	CREATE TABLE IF NOT EXISTS employee_onboarding (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL UNIQUE,
		workflow_id TEXT,
		current_phase INTEGER NOT NULL DEFAULT 1,
		overall_status TEXT NOT NULL DEFAULT 'in_progress',
		phase_statuses_json TEXT NOT NULL,
		employee_file_complete BOOLEAN NOT NULL DEFAULT FALSE,
		employee_file_verified_by TEXT,
		employee_file_verified_at TEXT,
		started_at TEXT NOT NULL,
		completed_at TEXT,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_onboarding_tenant
		ON employee_onboarding(tenant_id);

	-- Document ledger (rows are created at initialization, never deleted)
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
		due_date TEXT NOT NULL,
		policy_id TEXT,
		rejection_reason TEXT,
		signed_at TEXT,
		acknowledged_at TEXT,
		uploaded_at TEXT,
		verified_by TEXT,
		verified_at TEXT,
		was_overdue BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- CRITICAL: Backstops idempotent seeding. Config-seeded rows are unique
	-- per (employee, type); policy rows all share type 'policy' and are
	-- unique per (employee, policy) instead.
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

	-- Probation check-in tasks
	CREATE TABLE IF NOT EXISTS probation_checkins (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		checkin_type TEXT NOT NULL,
		day INTEGER NOT NULL,
		scheduled_at TEXT NOT NULL,
		manager_id TEXT,
		hr_assignee_id TEXT,
		status TEXT NOT NULL DEFAULT 'scheduled',
		created_at TEXT NOT NULL,
		UNIQUE(employee_id, checkin_type)
	);

	CREATE INDEX IF NOT EXISTS idx_checkins_employee
		ON probation_checkins(employee_id);

	-- Employees (profile slice + the fields this engine writes)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		date_of_birth TEXT,
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
		hire_date TEXT,
		tax_id TEXT NOT NULL DEFAULT '',
		employment_status TEXT NOT NULL DEFAULT '',
		profile_completion INTEGER NOT NULL DEFAULT 0,
		onboarding_completed_at TEXT,
		created_at TEXT NOT NULL
	);

	-- Policy catalog
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

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TRANSACTIONAL STORE (onboarding.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(store onboarding.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&conn{q: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

// =============================================================================
// WORKFLOW STORE
// =============================================================================

const workflowColumns = `id, tenant_id, company_id, name, description, is_default, is_active,
	phase_config_json, created_at, updated_at`

func (c *conn) GetWorkflow(ctx context.Context, tenantID onboarding.TenantID, id onboarding.WorkflowID) (*onboarding.Workflow, error) {
	row := c.q.QueryRowContext(ctx,
		`SELECT `+workflowColumns+` FROM onboarding_workflows WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	)
	return scanWorkflow(row)
}

func (c *conn) GetDefaultWorkflow(ctx context.Context, tenantID onboarding.TenantID, companyID onboarding.CompanyID) (*onboarding.Workflow, error) {
	row := c.q.QueryRowContext(ctx,
		`SELECT `+workflowColumns+` FROM onboarding_workflows
		 WHERE tenant_id = ? AND company_id = ? AND is_default = TRUE AND is_active = TRUE
		 LIMIT 1`,
		tenantID, companyID,
	)
	return scanWorkflow(row)
}

func (c *conn) GetTenantDefaultWorkflow(ctx context.Context, tenantID onboarding.TenantID) (*onboarding.Workflow, error) {
	row := c.q.QueryRowContext(ctx,
		`SELECT `+workflowColumns+` FROM onboarding_workflows
		 WHERE tenant_id = ? AND company_id = '' AND is_default = TRUE AND is_active = TRUE
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
		 phase_config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			is_default = excluded.is_default,
			is_active = excluded.is_active,
			phase_config_json = excluded.phase_config_json,
			updated_at = excluded.updated_at
	`

	_, err = c.q.ExecContext(ctx, query,
		wf.ID, wf.TenantID, wf.CompanyID, wf.Name, wf.Description,
		wf.IsDefault, wf.IsActive, string(configJSON),
		formatTime(wf.CreatedAt), formatTime(wf.UpdatedAt),
	)
	return err
}

func (c *conn) ListWorkflows(ctx context.Context, tenantID onboarding.TenantID) ([]onboarding.Workflow, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT `+workflowColumns+` FROM onboarding_workflows WHERE tenant_id = ? ORDER BY created_at`,
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

func scanWorkflow(row rowScanner) (*onboarding.Workflow, error) {
	var (
		wf         onboarding.Workflow
		configJSON string
		createdAt  string
		updatedAt  string
	)

	err := row.Scan(
		&wf.ID, &wf.TenantID, &wf.CompanyID, &wf.Name, &wf.Description,
		&wf.IsDefault, &wf.IsActive, &configJSON, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan workflow: %w", err)
	}

	if err := json.Unmarshal([]byte(configJSON), &wf.PhaseConfig); err != nil {
		return nil, fmt.Errorf("failed to decode phase config: %w", err)
	}
	wf.CreatedAt = parseTime(createdAt)
	wf.UpdatedAt = parseTime(updatedAt)
	return &wf, nil
}

// =============================================================================
// RECORD STORE
// =============================================================================

const recordColumns = `id, tenant_id, company_id, employee_id, workflow_id, current_phase,
	overall_status, phase_statuses_json, employee_file_complete, employee_file_verified_by,
	employee_file_verified_at, started_at, completed_at, updated_at`

func (c *conn) GetRecord(ctx context.Context, tenantID onboarding.TenantID, employeeID onboarding.EmployeeID) (*onboarding.Record, error) {
	row := c.q.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM employee_onboarding WHERE employee_id = ? AND tenant_id = ?`,
		employeeID, tenantID,
	)
	return scanRecord(row)
}

func (c *conn) ListRecords(ctx context.Context, tenantID onboarding.TenantID) ([]onboarding.Record, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM employee_onboarding
		 WHERE tenant_id = ? ORDER BY started_at ASC, employee_id ASC`,
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
		 overall_status, phase_statuses_json, employee_file_complete,
		 employee_file_verified_by, employee_file_verified_at,
		 started_at, completed_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			workflow_id = excluded.workflow_id,
			current_phase = excluded.current_phase,
			overall_status = excluded.overall_status,
			phase_statuses_json = excluded.phase_statuses_json,
			employee_file_complete = excluded.employee_file_complete,
			employee_file_verified_by = excluded.employee_file_verified_by,
			employee_file_verified_at = excluded.employee_file_verified_at,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at
	`

	_, err = c.q.ExecContext(ctx, query,
		rec.ID, rec.TenantID, rec.CompanyID, rec.EmployeeID,
		nullString(string(rec.WorkflowID)), rec.CurrentPhase, rec.OverallStatus,
		string(statusesJSON), rec.EmployeeFileComplete,
		nullString(rec.EmployeeFileVerifiedBy), nullTime(rec.EmployeeFileVerifiedAt),
		formatTime(rec.StartedAt), nullTime(rec.CompletedAt), formatTime(rec.UpdatedAt),
	)
	return err
}

func scanRecord(row rowScanner) (*onboarding.Record, error) {
	var (
		rec          onboarding.Record
		workflowID   sql.NullString
		statusesJSON string
		verifiedBy   sql.NullString
		verifiedAt   sql.NullString
		startedAt    string
		completedAt  sql.NullString
		updatedAt    string
	)

	err := row.Scan(
		&rec.ID, &rec.TenantID, &rec.CompanyID, &rec.EmployeeID, &workflowID,
		&rec.CurrentPhase, &rec.OverallStatus, &statusesJSON,
		&rec.EmployeeFileComplete, &verifiedBy, &verifiedAt,
		&startedAt, &completedAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan onboarding record: %w", err)
	}

	if err := json.Unmarshal([]byte(statusesJSON), &rec.PhaseStatuses); err != nil {
		return nil, fmt.Errorf("failed to decode phase statuses: %w", err)
	}
	rec.WorkflowID = onboarding.WorkflowID(workflowID.String)
	rec.EmployeeFileVerifiedBy = verifiedBy.String
	rec.EmployeeFileVerifiedAt = parseTimePtr(verifiedAt)
	rec.StartedAt = parseTime(startedAt)
	rec.CompletedAt = parseTimePtr(completedAt)
	rec.UpdatedAt = parseTime(updatedAt)
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
	row := c.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM onboarding_documents WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	)
	return scanDocument(row)
}

func (c *conn) FindDocumentByType(ctx context.Context, employeeID onboarding.EmployeeID, docType string) (*onboarding.Document, error) {
	row := c.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM onboarding_documents
		 WHERE employee_id = ? AND document_type = ? AND policy_id IS NULL`,
		employeeID, docType,
	)
	return scanDocument(row)
}

func (c *conn) FindDocumentByPolicy(ctx context.Context, employeeID onboarding.EmployeeID, policyID onboarding.PolicyID) (*onboarding.Document, error) {
	row := c.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM onboarding_documents
		 WHERE employee_id = ? AND policy_id = ?`,
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := c.q.ExecContext(ctx, query,
		doc.ID, doc.TenantID, doc.CompanyID, doc.EmployeeID, doc.OnboardingID,
		doc.Type, doc.Name, doc.Category, doc.Phase, doc.Action, doc.Required,
		doc.Status, formatTime(doc.DueDate), nullString(string(doc.PolicyID)),
		nullString(doc.RejectionReason), nullTime(doc.SignedAt),
		nullTime(doc.AcknowledgedAt), nullTime(doc.UploadedAt),
		nullString(doc.VerifiedBy), nullTime(doc.VerifiedAt), doc.WasOverdue,
		formatTime(doc.CreatedAt), formatTime(doc.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (c *conn) UpdateDocument(ctx context.Context, doc *onboarding.Document) error {
	query := `
		UPDATE onboarding_documents SET
			status = ?,
			rejection_reason = ?,
			signed_at = ?,
			acknowledged_at = ?,
			uploaded_at = ?,
			verified_by = ?,
			verified_at = ?,
			was_overdue = ?,
			updated_at = ?
		WHERE id = ?
	`

	_, err := c.q.ExecContext(ctx, query,
		doc.Status, nullString(doc.RejectionReason), nullTime(doc.SignedAt),
		nullTime(doc.AcknowledgedAt), nullTime(doc.UploadedAt),
		nullString(doc.VerifiedBy), nullTime(doc.VerifiedAt), doc.WasOverdue,
		formatTime(doc.UpdatedAt), doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (c *conn) ListDocuments(ctx context.Context, tenantID onboarding.TenantID, employeeID onboarding.EmployeeID, filter onboarding.DocumentFilter) ([]onboarding.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM onboarding_documents
		 WHERE tenant_id = ? AND employee_id = ?`
	args := []any{tenantID, employeeID}

	if filter.Phase != nil {
		query += " AND phase = ?"
		args = append(args, *filter.Phase)
	}
	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, *filter.Status)
	}
	query += " ORDER BY phase ASC, document_type ASC"

	return c.queryDocuments(ctx, query, args...)
}

func (c *conn) ListPhaseDocuments(ctx context.Context, employeeID onboarding.EmployeeID, phase int) ([]onboarding.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM onboarding_documents
		 WHERE employee_id = ? AND phase = ?
		 ORDER BY document_type ASC`
	return c.queryDocuments(ctx, query, employeeID, phase)
}

func (c *conn) queryDocuments(ctx context.Context, query string, args ...any) ([]onboarding.Document, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
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

func scanDocument(row rowScanner) (*onboarding.Document, error) {
	var (
		doc             onboarding.Document
		dueDate         string
		policyID        sql.NullString
		rejectionReason sql.NullString
		signedAt        sql.NullString
		acknowledgedAt  sql.NullString
		uploadedAt      sql.NullString
		verifiedBy      sql.NullString
		verifiedAt      sql.NullString
		createdAt       string
		updatedAt       string
	)

	err := row.Scan(
		&doc.ID, &doc.TenantID, &doc.CompanyID, &doc.EmployeeID, &doc.OnboardingID,
		&doc.Type, &doc.Name, &doc.Category, &doc.Phase, &doc.Action, &doc.Required,
		&doc.Status, &dueDate, &policyID, &rejectionReason,
		&signedAt, &acknowledgedAt, &uploadedAt, &verifiedBy, &verifiedAt,
		&doc.WasOverdue, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.DueDate = parseTime(dueDate)
	doc.PolicyID = onboarding.PolicyID(policyID.String)
	doc.RejectionReason = rejectionReason.String
	doc.SignedAt = parseTimePtr(signedAt)
	doc.AcknowledgedAt = parseTimePtr(acknowledgedAt)
	doc.UploadedAt = parseTimePtr(uploadedAt)
	doc.VerifiedBy = verifiedBy.String
	doc.VerifiedAt = parseTimePtr(verifiedAt)
	doc.CreatedAt = parseTime(createdAt)
	doc.UpdatedAt = parseTime(updatedAt)
	return &doc, nil
}

// =============================================================================
// CHECKIN STORE
// =============================================================================

func (c *conn) CheckinExists(ctx context.Context, employeeID onboarding.EmployeeID, typ onboarding.CheckinType) (bool, error) {
	var count int
	err := c.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM probation_checkins WHERE employee_id = ? AND checkin_type = ?",
		employeeID, typ,
	).Scan(&count)
	return count > 0, err
}

func (c *conn) InsertCheckin(ctx context.Context, task *onboarding.CheckinTask) error {
	query := `
		INSERT INTO probation_checkins
		(id, tenant_id, company_id, employee_id, checkin_type, day, scheduled_at,
		 manager_id, hr_assignee_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := c.q.ExecContext(ctx, query,
		task.ID, task.TenantID, task.CompanyID, task.EmployeeID, task.Type,
		task.Day, formatTime(task.ScheduledAt),
		nullString(string(task.ManagerID)), nullString(string(task.HRAssigneeID)),
		task.Status, formatTime(task.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert checkin: %w", err)
	}
	return nil
}

func (c *conn) ListCheckins(ctx context.Context, employeeID onboarding.EmployeeID) ([]onboarding.CheckinTask, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, tenant_id, company_id, employee_id, checkin_type, day, scheduled_at,
		        manager_id, hr_assignee_id, status, created_at
		 FROM probation_checkins WHERE employee_id = ? ORDER BY day ASC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []onboarding.CheckinTask
	for rows.Next() {
		var (
			task        onboarding.CheckinTask
			scheduledAt string
			managerID   sql.NullString
			hrID        sql.NullString
			createdAt   string
		)
		if err := rows.Scan(
			&task.ID, &task.TenantID, &task.CompanyID, &task.EmployeeID,
			&task.Type, &task.Day, &scheduledAt, &managerID, &hrID,
			&task.Status, &createdAt,
		); err != nil {
			return nil, err
		}
		task.ScheduledAt = parseTime(scheduledAt)
		task.ManagerID = onboarding.EmployeeID(managerID.String)
		task.HRAssigneeID = onboarding.EmployeeID(hrID.String)
		task.CreatedAt = parseTime(createdAt)
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
	row := c.q.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`,
		id,
	)

	var (
		emp         onboarding.Employee
		dateOfBirth sql.NullString
		hireDate    sql.NullString
		completedAt sql.NullString
		createdAt   string
	)

	err := row.Scan(
		&emp.ID, &emp.TenantID, &emp.CompanyID, &emp.FirstName, &emp.LastName,
		&emp.Email, &emp.Phone, &dateOfBirth, &emp.Gender, &emp.MaritalStatus,
		&emp.NationalID, &emp.Address, &emp.City, &emp.State, &emp.Country,
		&emp.BankName, &emp.BankAccountNumber, &emp.BankAccountName,
		&emp.EmergencyContactName, &emp.EmergencyContactPhone,
		&emp.JobTitle, &emp.Department, &emp.ReportsTo, &hireDate, &emp.TaxID,
		&emp.EmploymentStatus, &emp.ProfileCompletion, &completedAt, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}

	emp.DateOfBirth = parseTimePtr(dateOfBirth)
	emp.HireDate = parseTimePtr(hireDate)
	emp.OnboardingCompletedAt = parseTimePtr(completedAt)
	emp.CreatedAt = parseTime(createdAt)
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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

	_, err := c.q.ExecContext(ctx, query,
		emp.ID, emp.TenantID, emp.CompanyID, emp.FirstName, emp.LastName,
		emp.Email, emp.Phone, nullTime(emp.DateOfBirth), emp.Gender,
		emp.MaritalStatus, emp.NationalID, emp.Address, emp.City, emp.State,
		emp.Country, emp.BankName, emp.BankAccountNumber, emp.BankAccountName,
		emp.EmergencyContactName, emp.EmergencyContactPhone,
		emp.JobTitle, emp.Department, emp.ReportsTo, nullTime(emp.HireDate),
		emp.TaxID, emp.EmploymentStatus, emp.ProfileCompletion,
		nullTime(emp.OnboardingCompletedAt), formatTime(emp.CreatedAt),
	)
	return err
}

func (c *conn) SetEmploymentStatus(ctx context.Context, id onboarding.EmployeeID, status onboarding.EmploymentStatus, completedAt *time.Time) error {
	// COALESCE keeps the existing completion timestamp when none is passed.
	_, err := c.q.ExecContext(ctx,
		`UPDATE employees
		 SET employment_status = ?,
		     onboarding_completed_at = COALESCE(?, onboarding_completed_at)
		 WHERE id = ?`,
		status, nullTime(completedAt), id,
	)
	return err
}

func (c *conn) SetProfileCompletion(ctx context.Context, id onboarding.EmployeeID, percentage int) error {
	_, err := c.q.ExecContext(ctx,
		"UPDATE employees SET profile_completion = ? WHERE id = ?",
		percentage, id,
	)
	return err
}

// =============================================================================
// POLICY STORE
// =============================================================================

func (c *conn) ListAcknowledgmentPolicies(ctx context.Context, tenantID onboarding.TenantID, companyID onboarding.CompanyID) ([]onboarding.Policy, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, tenant_id, company_id, name, requires_acknowledgment, is_active
		 FROM policies
		 WHERE tenant_id = ? AND (company_id = ? OR company_id = '')
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
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			requires_acknowledgment = excluded.requires_acknowledgment,
			is_active = excluded.is_active
	`

	_, err := c.q.ExecContext(ctx, query,
		p.ID, p.TenantID, p.CompanyID, p.Name, p.RequiresAcknowledgment, p.IsActive,
	)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

// rowScanner lets scan helpers accept both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseTimePtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, _ := time.Parse(time.RFC3339, s.String)
	return &t
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}
