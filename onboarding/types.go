/*
Package onboarding implements the phased employee onboarding engine.

PURPOSE:
  This package contains the domain types and algorithms for driving a new
  hire through a phased onboarding workflow: a per-employee document ledger,
  phase progression, hard-gate evaluation before activation, weighted
  profile-completion scoring, and probation check-in scheduling.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: one row per employee tracking current phase and overall status
  - Document: a ledger row for one tracked document or policy acknowledgment
  - CheckinTask: a scheduled probation follow-up (30/60/90 day)
  - Employee: the narrow contract with the employee-management subsystem
  - Closed enums for every status and action (no free-form strings)

DESIGN PRINCIPLES:
  1. Closed state machines: statuses are typed enums with explicit
     transition methods (see document.go), never ad-hoc string comparisons
  2. Integer phases everywhere: phase keys are ints in Go; the legacy
     "phaseN" JSON keys exist only at the serialization boundary
  3. Ledger rows are never deleted: rejection loops a document back through
     pending, it does not remove history

SEE ALSO:
  - workflow.go: phase configuration and workflow resolution
  - document.go: document status transitions
  - store.go: persistence interfaces
*/
package onboarding

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type TenantID string
type CompanyID string
type EmployeeID string
type WorkflowID string
type RecordID string
type DocumentID string
type PolicyID string
type TaskID string

// PhaseCount is the number of onboarding phases. Phase numbers run 1..PhaseCount.
const PhaseCount = 5

// =============================================================================
// ENUMS - Closed status and action sets
// =============================================================================

// DocumentAction identifies what an employee must do with a document.
// Exactly one action per ledger row; the legacy requires_* booleans are
// derived from it at the storage/API boundary.
type DocumentAction string

const (
	ActionSign        DocumentAction = "sign"
	ActionAcknowledge DocumentAction = "acknowledge"
	ActionUpload      DocumentAction = "upload"
)

// DocumentStatus is the lifecycle state of a ledger row.
//
// pending → {signed | acknowledged | uploaded} → verified (upload path)
//                                              | rejected → uploaded (re-upload loop)
type DocumentStatus string

const (
	DocPending      DocumentStatus = "pending"
	DocSigned       DocumentStatus = "signed"
	DocAcknowledged DocumentStatus = "acknowledged"
	DocUploaded     DocumentStatus = "uploaded"
	DocVerified     DocumentStatus = "verified"
	DocRejected     DocumentStatus = "rejected"
)

// Satisfied reports whether the status counts as employee-complete for phase
// progression and progress percentages. Note that uploaded counts even before
// HR verification: phase completion tracks employee action, while the hard
// gates separately require verification signals.
func (s DocumentStatus) Satisfied() bool {
	switch s {
	case DocSigned, DocAcknowledged, DocVerified, DocUploaded:
		return true
	}
	return false
}

// PhaseStatus is the state of one phase within a Record.
type PhaseStatus string

const (
	PhasePending    PhaseStatus = "pending"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseCompleted  PhaseStatus = "completed"
)

// OverallStatus is the state of the onboarding record as a whole.
// The only transition is in_progress → completed, via activation.
type OverallStatus string

const (
	OverallInProgress OverallStatus = "in_progress"
	OverallCompleted  OverallStatus = "completed"
)

// EmploymentStatus values this engine writes on the employee record.
// Other values exist in the wider system; the engine only ever sets these two.
type EmploymentStatus string

const (
	EmploymentPreboarding EmploymentStatus = "preboarding"
	EmploymentActive      EmploymentStatus = "active"
)

// CheckinType identifies a probation check-in milestone.
type CheckinType string

const (
	Checkin30Day CheckinType = "30_day"
	Checkin60Day CheckinType = "60_day"
	Checkin90Day CheckinType = "90_day"
)

// CheckinStatus for ProbationCheckinTask. Downstream lifecycle (completed,
// canceled, ...) is owned outside this engine; it only ever writes scheduled.
type CheckinStatus string

const CheckinScheduled CheckinStatus = "scheduled"

// =============================================================================
// PHASE STATUSES - int-keyed map with legacy "phaseN" JSON encoding
// =============================================================================

// PhaseStatuses maps phase number → status. In Go the keys are ints; the JSON
// form uses the legacy "phase1".."phase5" keys the frontend consumes.
type PhaseStatuses map[int]PhaseStatus

// NewPhaseStatuses returns the initial per-phase map: phase 1 in progress,
// the rest pending.
func NewPhaseStatuses() PhaseStatuses {
	ps := make(PhaseStatuses, PhaseCount)
	ps[1] = PhaseInProgress
	for p := 2; p <= PhaseCount; p++ {
		ps[p] = PhasePending
	}
	return ps
}

// Get returns the status for a phase, defaulting to pending.
func (ps PhaseStatuses) Get(phase int) PhaseStatus {
	if s, ok := ps[phase]; ok {
		return s
	}
	return PhasePending
}

// Clone returns a copy safe to mutate.
func (ps PhaseStatuses) Clone() PhaseStatuses {
	out := make(PhaseStatuses, len(ps))
	for k, v := range ps {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes with "phaseN" keys.
func (ps PhaseStatuses) MarshalJSON() ([]byte, error) {
	m := make(map[string]PhaseStatus, len(ps))
	for phase, status := range ps {
		m[phaseKey(phase)] = status
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts "phaseN" keys (and bare integer keys, for safety).
func (ps *PhaseStatuses) UnmarshalJSON(data []byte) error {
	var m map[string]PhaseStatus
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(PhaseStatuses, len(m))
	for k, v := range m {
		phase, err := parsePhaseKey(k)
		if err != nil {
			return err
		}
		out[phase] = v
	}
	*ps = out
	return nil
}

func phaseKey(phase int) string { return "phase" + strconv.Itoa(phase) }

func parsePhaseKey(k string) (int, error) {
	s := strings.TrimPrefix(k, "phase")
	phase, err := strconv.Atoi(s)
	if err != nil || phase < 1 {
		return 0, fmt.Errorf("invalid phase key %q", k)
	}
	return phase, nil
}

// =============================================================================
// RECORD - one per employee (EmployeeOnboarding)
// =============================================================================

// Record tracks one employee's passage through the onboarding phases.
// Records are never deleted; timestamps form the audit trail.
type Record struct {
	ID         RecordID
	TenantID   TenantID
	CompanyID  CompanyID
	EmployeeID EmployeeID
	WorkflowID WorkflowID // empty = built-in default config was used

	CurrentPhase  int // 1..PhaseCount, monotonically non-decreasing
	OverallStatus OverallStatus
	PhaseStatuses PhaseStatuses

	// Set exclusively by HR, independent of the document ledger.
	EmployeeFileComplete   bool
	EmployeeFileVerifiedBy string
	EmployeeFileVerifiedAt *time.Time

	StartedAt   time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

// =============================================================================
// DOCUMENT - ledger row (OnboardingDocument)
// =============================================================================

// Document is one tracked requirement for one employee: a document to sign or
// acknowledge, a file to upload, or a policy to acknowledge (PolicyID set).
type Document struct {
	ID           DocumentID
	TenantID     TenantID
	CompanyID    CompanyID
	EmployeeID   EmployeeID
	OnboardingID RecordID

	Type     string // e.g. "offer_letter", "policy"
	Name     string
	Category string // derived: phaseN_signing / phaseN_acknowledgment / phaseN_employee_file
	Phase    int
	Action   DocumentAction
	Required bool

	Status          DocumentStatus
	DueDate         time.Time
	PolicyID        PolicyID // set only for phase-4 policy acknowledgment rows
	RejectionReason string

	SignedAt       *time.Time
	AcknowledgedAt *time.Time
	UploadedAt     *time.Time
	VerifiedBy     string
	VerifiedAt     *time.Time
	WasOverdue     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresSignature reports the legacy requires_signature flag, derived from
// the action. Likewise for the other two; exactly one is true per row.
func (d *Document) RequiresSignature() bool      { return d.Action == ActionSign }
func (d *Document) RequiresAcknowledgment() bool { return d.Action == ActionAcknowledge }
func (d *Document) RequiresUpload() bool         { return d.Action == ActionUpload }

// CategoryFor derives the document_category string from phase and action.
func CategoryFor(phase int, action DocumentAction) string {
	suffix := "employee_file"
	switch action {
	case ActionSign:
		suffix = "signing"
	case ActionAcknowledge:
		suffix = "acknowledgment"
	}
	return fmt.Sprintf("phase%d_%s", phase, suffix)
}

// =============================================================================
// CHECKIN TASK (ProbationCheckinTask)
// =============================================================================

// CheckinTask is a probation follow-up created at activation. Unique per
// (employee, checkin type); scheduling is idempotent.
type CheckinTask struct {
	ID           TaskID
	TenantID     TenantID
	CompanyID    CompanyID
	EmployeeID   EmployeeID
	Type         CheckinType
	Day          int // offset in days from hire date
	ScheduledAt  time.Time
	ManagerID    EmployeeID
	HRAssigneeID EmployeeID
	Status       CheckinStatus
	CreatedAt    time.Time
}

// =============================================================================
// EXTERNAL COLLABORATOR CONTRACTS
// =============================================================================

// Employee is the slice of the employee record this engine reads and writes.
// The entity is owned by the broader employee-management subsystem; only
// EmploymentStatus, OnboardingCompletedAt and ProfileCompletion are mutated
// here. Optional profile fields are empty strings / nil when unset.
type Employee struct {
	ID        EmployeeID
	TenantID  TenantID
	CompanyID CompanyID

	// Personal
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DateOfBirth   *time.Time
	Gender        string
	MaritalStatus string
	NationalID    string

	// Address
	Address string
	City    string
	State   string
	Country string

	// Banking
	BankName          string
	BankAccountNumber string
	BankAccountName   string

	// Emergency contact
	EmergencyContactName  string
	EmergencyContactPhone string

	// Employment
	JobTitle   string
	Department string
	ReportsTo  EmployeeID
	HireDate   *time.Time
	TaxID      string

	EmploymentStatus      EmploymentStatus
	ProfileCompletion     int // cached percentage, 0 when never scored
	OnboardingCompletedAt *time.Time

	CreatedAt time.Time
}

// FullName joins first and last name for display reads.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Policy is the read-only view of the policy catalog: active policies that
// require acknowledgment seed phase-4 ledger rows.
type Policy struct {
	ID                     PolicyID
	TenantID               TenantID
	CompanyID              CompanyID // empty = tenant-wide
	Name                   string
	RequiresAcknowledgment bool
	IsActive               bool
}
