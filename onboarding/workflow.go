/*
workflow.go - Phase configuration and workflow resolution

PURPOSE:
  A Workflow is a tenant- or company-scoped configuration template: an ordered
  set of phases, each with a due-day offset, a hard-gate flag, and the
  documents the phase requires. The engine reads workflows, never writes them;
  tenant admins own them through the API layer.

RESOLUTION ORDER:
  1. Explicit workflow ID (must belong to the tenant)
  2. Company-scoped default (is_default AND is_active)
  3. Tenant-wide default (company_id empty)
  4. Built-in DefaultPhaseConfig

  The chain is a single ordered resolver function so the precedence rule is
  testable in isolation, not nested conditionals.

JSON FORM:
  phase_config is stored as a JSON object keyed "phase1".."phase5", the shape
  the admin UI produces. In Go the keys are ints; PhaseConfig carries the same
  codec as PhaseStatuses.

SEE ALSO:
  - initialize.go: seeds the document ledger from the resolved config
  - store.go: WorkflowStore interface
*/
package onboarding

import (
	"context"
	"encoding/json"
	"sort"
	"time"
)

// =============================================================================
// PHASE CONFIGURATION
// =============================================================================

// DocumentSpec is one document entry inside a phase configuration.
// Required defaults to true unless explicitly false in the JSON.
type DocumentSpec struct {
	Type     string         `json:"type"`
	Label    string         `json:"label"`
	Action   DocumentAction `json:"action"`
	Required *bool          `json:"required,omitempty"`
}

// IsRequired resolves the default-true semantics of the Required pointer.
func (d DocumentSpec) IsRequired() bool { return d.Required == nil || *d.Required }

// Phase is the configuration of a single onboarding phase.
type Phase struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	DueDays     int            `json:"due_days"`
	HardGate    bool           `json:"hard_gate"`
	Documents   []DocumentSpec `json:"documents"`
}

// PhaseConfig maps phase number → phase configuration.
type PhaseConfig map[int]Phase

// PhaseNumbers returns the configured phase numbers in ascending order.
func (c PhaseConfig) PhaseNumbers() []int {
	nums := make([]int, 0, len(c))
	for p := range c {
		nums = append(nums, p)
	}
	sort.Ints(nums)
	return nums
}

// MarshalJSON encodes with "phaseN" keys.
func (c PhaseConfig) MarshalJSON() ([]byte, error) {
	m := make(map[string]Phase, len(c))
	for phase, cfg := range c {
		m[phaseKey(phase)] = cfg
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts "phaseN" keys.
func (c *PhaseConfig) UnmarshalJSON(data []byte) error {
	var m map[string]Phase
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(PhaseConfig, len(m))
	for k, v := range m {
		phase, err := parsePhaseKey(k)
		if err != nil {
			return err
		}
		out[phase] = v
	}
	*c = out
	return nil
}

// =============================================================================
// WORKFLOW - stored configuration template
// =============================================================================

// Workflow is a stored onboarding configuration. CompanyID empty means
// tenant-wide. Read-only to the engine at runtime.
type Workflow struct {
	ID          WorkflowID
	TenantID    TenantID
	CompanyID   CompanyID
	Name        string
	Description string
	IsDefault   bool
	IsActive    bool
	PhaseConfig PhaseConfig
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// =============================================================================
// BUILT-IN DEFAULT CONFIGURATION
// =============================================================================

func requiredFalse() *bool { b := false; return &b }

// DefaultPhaseConfig returns the built-in five-phase configuration used when
// no workflow is configured for the tenant or company. A fresh value is
// returned each call so callers may mutate their copy.
func DefaultPhaseConfig() PhaseConfig {
	return PhaseConfig{
		1: {
			Name:        "Document Signing",
			Description: "Essential documents requiring signature",
			DueDays:     2,
			HardGate:    true,
			Documents: []DocumentSpec{
				{Type: "offer_letter", Label: "Offer Letter", Action: ActionSign},
				{Type: "employment_contract", Label: "Employment Contract", Action: ActionSign},
				{Type: "nda", Label: "Non-Disclosure Agreement", Action: ActionSign},
				{Type: "ndpa_consent", Label: "NDPA Notice & Consent", Action: ActionAcknowledge},
				{Type: "code_of_conduct", Label: "Code of Conduct", Action: ActionAcknowledge},
			},
		},
		2: {
			Name:        "Role Clarity",
			Description: "Understanding your role and team",
			DueDays:     3,
			Documents: []DocumentSpec{
				{Type: "job_description", Label: "Job Description", Action: ActionAcknowledge},
				{Type: "org_chart", Label: "Organizational Chart", Action: ActionAcknowledge},
				{Type: "key_contacts", Label: "Key Contacts & Escalation Map", Action: ActionAcknowledge, Required: requiredFalse()},
			},
		},
		3: {
			Name:        "Employee File",
			Description: "Complete profile and upload documents",
			DueDays:     5,
			HardGate:    true,
			Documents: []DocumentSpec{
				{Type: "passport_photos", Label: "Passport Photographs", Action: ActionUpload},
				{Type: "educational_certs", Label: "Educational Certificates", Action: ActionUpload},
				{Type: "professional_certs", Label: "Professional Certifications", Action: ActionUpload, Required: requiredFalse()},
				{Type: "government_id", Label: "Government-Issued ID", Action: ActionUpload},
				{Type: "bank_details", Label: "Bank Account Verification", Action: ActionUpload},
			},
		},
		4: {
			Name:        "Policy Acknowledgments",
			Description: "Company policies and procedures",
			DueDays:     5,
			// Documents populated dynamically from the policy catalog.
		},
		5: {
			Name:        "Probation Check-ins",
			Description: "Scheduled review milestones",
			DueDays:     90,
		},
	}
}

// =============================================================================
// RESOLVER
// =============================================================================

// ResolveWorkflow returns the effective workflow for an employee following the
// precedence chain: explicit ID → company default → tenant default. Returns
// nil (no error) when none is configured; callers fall back to
// DefaultPhaseConfig.
func ResolveWorkflow(ctx context.Context, s WorkflowStore, tenantID TenantID, companyID CompanyID, explicit WorkflowID) (*Workflow, error) {
	if explicit != "" {
		wf, err := s.GetWorkflow(ctx, tenantID, explicit)
		if err != nil {
			return nil, err
		}
		if wf != nil {
			return wf, nil
		}
	}

	wf, err := s.GetDefaultWorkflow(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	if wf != nil {
		return wf, nil
	}

	return s.GetTenantDefaultWorkflow(ctx, tenantID)
}
