// Package store provides the in-memory onboarding.TxStore used by unit tests.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bfi/onboarding-engine/onboarding"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	workflows map[onboarding.WorkflowID]onboarding.Workflow
	records   map[onboarding.EmployeeID]onboarding.Record
	documents map[onboarding.DocumentID]onboarding.Document
	checkins  map[checkinKey]onboarding.CheckinTask
	employees map[onboarding.EmployeeID]onboarding.Employee
	policies  map[onboarding.PolicyID]onboarding.Policy
}

type checkinKey struct {
	EmployeeID onboarding.EmployeeID
	Type       onboarding.CheckinType
}

func NewMemory() *Memory {
	return &Memory{
		workflows: make(map[onboarding.WorkflowID]onboarding.Workflow),
		records:   make(map[onboarding.EmployeeID]onboarding.Record),
		documents: make(map[onboarding.DocumentID]onboarding.Document),
		checkins:  make(map[checkinKey]onboarding.CheckinTask),
		employees: make(map[onboarding.EmployeeID]onboarding.Employee),
		policies:  make(map[onboarding.PolicyID]onboarding.Policy),
	}
}

// -----------------------------------------------------------------------------
// WorkflowStore
// -----------------------------------------------------------------------------

func (m *Memory) GetWorkflow(_ context.Context, tenantID onboarding.TenantID, id onboarding.WorkflowID) (*onboarding.Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wf, ok := m.workflows[id]
	if !ok || wf.TenantID != tenantID {
		return nil, nil
	}
	return cloneWorkflow(wf), nil
}

func (m *Memory) GetDefaultWorkflow(_ context.Context, tenantID onboarding.TenantID, companyID onboarding.CompanyID) (*onboarding.Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, wf := range m.workflows {
		if wf.TenantID == tenantID && wf.CompanyID == companyID && wf.IsDefault && wf.IsActive {
			return cloneWorkflow(wf), nil
		}
	}
	return nil, nil
}

func (m *Memory) GetTenantDefaultWorkflow(_ context.Context, tenantID onboarding.TenantID) (*onboarding.Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, wf := range m.workflows {
		if wf.TenantID == tenantID && wf.CompanyID == "" && wf.IsDefault && wf.IsActive {
			return cloneWorkflow(wf), nil
		}
	}
	return nil, nil
}

func (m *Memory) SaveWorkflow(_ context.Context, wf *onboarding.Workflow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflows[wf.ID] = *cloneWorkflow(*wf)
	return nil
}

func (m *Memory) ListWorkflows(_ context.Context, tenantID onboarding.TenantID) ([]onboarding.Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]onboarding.Workflow, 0)
	for _, wf := range m.workflows {
		if wf.TenantID == tenantID {
			out = append(out, *cloneWorkflow(wf))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// -----------------------------------------------------------------------------
// RecordStore
// -----------------------------------------------------------------------------

func (m *Memory) GetRecord(_ context.Context, tenantID onboarding.TenantID, employeeID onboarding.EmployeeID) (*onboarding.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[employeeID]
	if !ok || rec.TenantID != tenantID {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

func (m *Memory) SaveRecord(_ context.Context, rec *onboarding.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.EmployeeID] = *cloneRecord(*rec)
	return nil
}

func (m *Memory) ListRecords(_ context.Context, tenantID onboarding.TenantID) ([]onboarding.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []onboarding.Record
	for _, rec := range m.records {
		if rec.TenantID == tenantID {
			out = append(out, *cloneRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

// -----------------------------------------------------------------------------
// DocumentStore
// -----------------------------------------------------------------------------

func (m *Memory) GetDocument(_ context.Context, tenantID onboarding.TenantID, id onboarding.DocumentID) (*onboarding.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.documents[id]
	if !ok || doc.TenantID != tenantID {
		return nil, nil
	}
	cp := doc
	return &cp, nil
}

func (m *Memory) FindDocumentByType(_ context.Context, employeeID onboarding.EmployeeID, docType string) (*onboarding.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, doc := range m.documents {
		// Policy rows share the "policy" type; they are keyed by policy id.
		if doc.EmployeeID == employeeID && doc.Type == docType && doc.PolicyID == "" {
			cp := doc
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) FindDocumentByPolicy(_ context.Context, employeeID onboarding.EmployeeID, policyID onboarding.PolicyID) (*onboarding.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, doc := range m.documents {
		if doc.EmployeeID == employeeID && doc.PolicyID == policyID {
			cp := doc
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) InsertDocument(_ context.Context, doc *onboarding.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[doc.ID] = *doc
	return nil
}

func (m *Memory) UpdateDocument(_ context.Context, doc *onboarding.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[doc.ID] = *doc
	return nil
}

func (m *Memory) ListDocuments(_ context.Context, tenantID onboarding.TenantID, employeeID onboarding.EmployeeID, filter onboarding.DocumentFilter) ([]onboarding.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]onboarding.Document, 0)
	for _, doc := range m.documents {
		if doc.TenantID != tenantID || doc.EmployeeID != employeeID {
			continue
		}
		if filter.Phase != nil && doc.Phase != *filter.Phase {
			continue
		}
		if filter.Status != nil && doc.Status != *filter.Status {
			continue
		}
		out = append(out, doc)
	}
	sortDocuments(out)
	return out, nil
}

func (m *Memory) ListPhaseDocuments(_ context.Context, employeeID onboarding.EmployeeID, phase int) ([]onboarding.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]onboarding.Document, 0)
	for _, doc := range m.documents {
		if doc.EmployeeID == employeeID && doc.Phase == phase {
			out = append(out, doc)
		}
	}
	sortDocuments(out)
	return out, nil
}

func sortDocuments(docs []onboarding.Document) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Phase != docs[j].Phase {
			return docs[i].Phase < docs[j].Phase
		}
		return docs[i].Type < docs[j].Type
	})
}

// -----------------------------------------------------------------------------
// CheckinStore
// -----------------------------------------------------------------------------

func (m *Memory) CheckinExists(_ context.Context, employeeID onboarding.EmployeeID, typ onboarding.CheckinType) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.checkins[checkinKey{EmployeeID: employeeID, Type: typ}]
	return ok, nil
}

func (m *Memory) InsertCheckin(_ context.Context, task *onboarding.CheckinTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkins[checkinKey{EmployeeID: task.EmployeeID, Type: task.Type}] = *task
	return nil
}

func (m *Memory) ListCheckins(_ context.Context, employeeID onboarding.EmployeeID) ([]onboarding.CheckinTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]onboarding.CheckinTask, 0)
	for _, task := range m.checkins {
		if task.EmployeeID == employeeID {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// -----------------------------------------------------------------------------
// EmployeeStore
// -----------------------------------------------------------------------------

func (m *Memory) GetEmployee(_ context.Context, id onboarding.EmployeeID) (*onboarding.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emp, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	cp := emp
	return &cp, nil
}

func (m *Memory) SaveEmployee(_ context.Context, emp *onboarding.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = *emp
	return nil
}

func (m *Memory) SetEmploymentStatus(_ context.Context, id onboarding.EmployeeID, status onboarding.EmploymentStatus, completedAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	emp, ok := m.employees[id]
	if !ok {
		return nil
	}
	emp.EmploymentStatus = status
	if completedAt != nil {
		t := *completedAt
		emp.OnboardingCompletedAt = &t
	}
	m.employees[id] = emp
	return nil
}

func (m *Memory) SetProfileCompletion(_ context.Context, id onboarding.EmployeeID, percentage int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	emp, ok := m.employees[id]
	if !ok {
		return nil
	}
	emp.ProfileCompletion = percentage
	m.employees[id] = emp
	return nil
}

// -----------------------------------------------------------------------------
// PolicyStore
// -----------------------------------------------------------------------------

func (m *Memory) ListAcknowledgmentPolicies(_ context.Context, tenantID onboarding.TenantID, companyID onboarding.CompanyID) ([]onboarding.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]onboarding.Policy, 0)
	for _, p := range m.policies {
		if p.TenantID != tenantID || !p.RequiresAcknowledgment || !p.IsActive {
			continue
		}
		if p.CompanyID != "" && p.CompanyID != companyID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) SavePolicy(_ context.Context, p *onboarding.Policy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[p.ID] = *p
	return nil
}

// -----------------------------------------------------------------------------
// Clone helpers - maps inside Record and Workflow must not alias
// -----------------------------------------------------------------------------

func cloneRecord(rec onboarding.Record) *onboarding.Record {
	cp := rec
	cp.PhaseStatuses = rec.PhaseStatuses.Clone()
	return &cp
}

func cloneWorkflow(wf onboarding.Workflow) *onboarding.Workflow {
	cp := wf
	cfg := make(onboarding.PhaseConfig, len(wf.PhaseConfig))
	for k, v := range wf.PhaseConfig {
		docs := make([]onboarding.DocumentSpec, len(v.Documents))
		copy(docs, v.Documents)
		v.Documents = docs
		cfg[k] = v
	}
	cp.PhaseConfig = cfg
	return &cp
}

// =============================================================================
// TRANSACTIONAL MEMORY STORE
// =============================================================================

// TxMemory wraps Memory with transaction support, simulated with a snapshot
// taken before fn and restored when fn errors. Transactions do not overlap;
// this store backs single-goroutine unit tests.
type TxMemory struct {
	*Memory
}

func NewTxMemory() *TxMemory {
	return &TxMemory{Memory: NewMemory()}
}

// WithTx executes fn against the store and rolls back on error.
func (tm *TxMemory) WithTx(ctx context.Context, fn func(onboarding.Store) error) error {
	snapshot := tm.snapshot()

	if err := fn(tm.Memory); err != nil {
		tm.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	workflows map[onboarding.WorkflowID]onboarding.Workflow
	records   map[onboarding.EmployeeID]onboarding.Record
	documents map[onboarding.DocumentID]onboarding.Document
	checkins  map[checkinKey]onboarding.CheckinTask
	employees map[onboarding.EmployeeID]onboarding.Employee
	policies  map[onboarding.PolicyID]onboarding.Policy
}

func (tm *TxMemory) snapshot() memorySnapshot {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	s := memorySnapshot{
		workflows: make(map[onboarding.WorkflowID]onboarding.Workflow, len(tm.workflows)),
		records:   make(map[onboarding.EmployeeID]onboarding.Record, len(tm.records)),
		documents: make(map[onboarding.DocumentID]onboarding.Document, len(tm.documents)),
		checkins:  make(map[checkinKey]onboarding.CheckinTask, len(tm.checkins)),
		employees: make(map[onboarding.EmployeeID]onboarding.Employee, len(tm.employees)),
		policies:  make(map[onboarding.PolicyID]onboarding.Policy, len(tm.policies)),
	}
	for k, v := range tm.workflows {
		s.workflows[k] = *cloneWorkflow(v)
	}
	for k, v := range tm.records {
		s.records[k] = *cloneRecord(v)
	}
	for k, v := range tm.documents {
		s.documents[k] = v
	}
	for k, v := range tm.checkins {
		s.checkins[k] = v
	}
	for k, v := range tm.employees {
		s.employees[k] = v
	}
	for k, v := range tm.policies {
		s.policies[k] = v
	}
	return s
}

func (tm *TxMemory) restore(s memorySnapshot) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.workflows = s.workflows
	tm.records = s.records
	tm.documents = s.documents
	tm.checkins = s.checkins
	tm.employees = s.employees
	tm.policies = s.policies
}
