/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. The onboarding
  wizard frontend consumes these shapes, so several field names are
  load-bearing: phases, overallProgress, profileCompletion, hardGatesPassed,
  checkInsScheduled and the per-phase counters.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

CONVENTIONS:
  - JSON field names are camelCase
  - Times are RFC3339 strings, omitted when unset
  - Phase maps are keyed "phase1".."phase5"

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"strconv"
	"time"

	"github.com/bfi/onboarding-engine/onboarding"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// StartOnboardingRequest begins (or restarts) onboarding for an employee.
type StartOnboardingRequest struct {
	CompanyID   string `json:"companyId"`
	WorkflowID  string `json:"workflowId,omitempty"`
	InitiatedBy string `json:"initiatedBy,omitempty"`
}

// SignDocumentRequest covers both signing and acknowledging; the document's
// configured action decides which transition runs. Signature documents must
// carry signatureData (storage of the signature itself lives outside this
// service).
type SignDocumentRequest struct {
	SignatureData string `json:"signatureData,omitempty"`
}

// VerifyDocumentRequest is the HR approval of an upload.
type VerifyDocumentRequest struct {
	VerifiedBy string `json:"verifiedBy"`
}

// RejectDocumentRequest is the HR rejection of an upload. Reason is mandatory.
type RejectDocumentRequest struct {
	RejectedBy string `json:"rejectedBy"`
	Reason     string `json:"reason"`
}

// FileCompleteRequest marks the employee file verified by HR.
type FileCompleteRequest struct {
	VerifiedBy string `json:"verifiedBy"`
}

// ActivateRequest converts a preboarding employee to active.
type ActivateRequest struct {
	ActivatedBy string `json:"activatedBy"`
}

// CreateWorkflowRequest stores a workflow configuration template.
type CreateWorkflowRequest struct {
	CompanyID   string                 `json:"companyId,omitempty"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	IsDefault   bool                   `json:"isDefault"`
	IsActive    *bool                  `json:"isActive,omitempty"` // default true
	PhaseConfig onboarding.PhaseConfig `json:"phaseConfig"`
}

// CreateEmployeeRequest seeds an employee record. The employee subsystem owns
// these in production; this seam exists for demos and tests.
type CreateEmployeeRequest struct {
	ID        string `json:"id,omitempty"`
	CompanyID string `json:"companyId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	ReportsTo string `json:"reportsTo,omitempty"`
	HireDate  string `json:"hireDate,omitempty"` // YYYY-MM-DD
}

// CreatePolicyRequest seeds a policy catalog entry (demo/test seam).
type CreatePolicyRequest struct {
	ID                     string `json:"id,omitempty"`
	CompanyID              string `json:"companyId,omitempty"`
	Name                   string `json:"name"`
	RequiresAcknowledgment bool   `json:"requiresAcknowledgment"`
	IsActive               *bool  `json:"isActive,omitempty"` // default true
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// PolicyDTO mirrors onboarding.Policy for API responses.
type PolicyDTO struct {
	ID                     string `json:"id"`
	CompanyID              string `json:"companyId,omitempty"`
	Name                   string `json:"name"`
	RequiresAcknowledgment bool   `json:"requiresAcknowledgment"`
	IsActive               bool   `json:"isActive"`
}

// ErrorResponse is the standard error shape. Errors carries the full
// violation list for gate-blocked activations.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// RecordDTO is the onboarding record.
type RecordDTO struct {
	ID                   string            `json:"id"`
	EmployeeID           string            `json:"employeeId"`
	CompanyID            string            `json:"companyId"`
	WorkflowID           string            `json:"workflowId,omitempty"`
	CurrentPhase         int               `json:"currentPhase"`
	OverallStatus        string            `json:"overallStatus"`
	PhaseStatuses        map[string]string `json:"phaseStatuses"`
	EmployeeFileComplete bool              `json:"employeeFileComplete"`
	StartedAt            string            `json:"startedAt"`
	CompletedAt          *string           `json:"completedAt,omitempty"`
}

// DocumentDTO is one ledger row. The requires* booleans are derived from the
// action for frontend compatibility.
type DocumentDTO struct {
	ID                     string  `json:"id"`
	EmployeeID             string  `json:"employeeId"`
	DocumentType           string  `json:"documentType"`
	Name                   string  `json:"name"`
	Category               string  `json:"category"`
	Phase                  int     `json:"phase"`
	Action                 string  `json:"action"`
	RequiresSignature      bool    `json:"requiresSignature"`
	RequiresAcknowledgment bool    `json:"requiresAcknowledgment"`
	RequiresUpload         bool    `json:"requiresUpload"`
	Required               bool    `json:"required"`
	Status                 string  `json:"status"`
	DueDate                string  `json:"dueDate"`
	PolicyID               string  `json:"policyId,omitempty"`
	RejectionReason        string  `json:"rejectionReason,omitempty"`
	SignedAt               *string `json:"signedAt,omitempty"`
	AcknowledgedAt         *string `json:"acknowledgedAt,omitempty"`
	UploadedAt             *string `json:"uploadedAt,omitempty"`
	VerifiedBy             string  `json:"verifiedBy,omitempty"`
	VerifiedAt             *string `json:"verifiedAt,omitempty"`
	WasOverdue             bool    `json:"wasOverdue"`
}

// PhaseProgressDTO is the per-phase counter block inside the progress view.
type PhaseProgressDTO struct {
	Total             int `json:"total"`
	Completed         int `json:"completed"`
	RequiredTotal     int `json:"requiredTotal"`
	RequiredCompleted int `json:"requiredCompleted"`
	Progress          int `json:"progress"`
}

// ProgressDTO is the aggregated read model the wizard renders.
type ProgressDTO struct {
	Onboarding        RecordDTO                   `json:"onboarding"`
	EmployeeName      string                      `json:"employeeName"`
	Phases            map[string]PhaseProgressDTO `json:"phases"`
	OverallProgress   int                         `json:"overallProgress"`
	ProfileCompletion int                         `json:"profileCompletion"`
	HardGates         GateCheckDTO                `json:"hardGatesPassed"`
}

// SummaryDTO is one row of the HR dashboard onboarding listing.
type SummaryDTO struct {
	Onboarding        RecordDTO `json:"onboarding"`
	EmployeeName      string    `json:"employeeName"`
	OverallProgress   int       `json:"overallProgress"`
	ProfileCompletion int       `json:"profileCompletion"`
}

// GateCheckDTO is the hard-gate evaluation result embedded in progress.
type GateCheckDTO struct {
	Passed bool     `json:"passed"`
	Errors []string `json:"errors"`
}

// HardGatesResponse is the standalone gate-check endpoint response.
type HardGatesResponse struct {
	HardGatesPassed bool     `json:"hardGatesPassed"`
	Errors          []string `json:"errors"`
}

// TransitionResponse is returned by document actions: the updated row plus
// the phase re-evaluation outcome.
type TransitionResponse struct {
	Document      DocumentDTO       `json:"document"`
	PhaseComplete bool              `json:"phaseComplete"`
	CurrentPhase  int               `json:"currentPhase"`
	PhaseStatuses map[string]string `json:"phaseStatuses,omitempty"`
}

// StartOnboardingResponse reports what initialization created.
type StartOnboardingResponse struct {
	Onboarding       RecordDTO     `json:"onboarding"`
	DocumentsCreated []DocumentDTO `json:"documentsCreated"`
}

// ActivationResponse reports the activation outcome.
type ActivationResponse struct {
	Success           bool   `json:"success"`
	EmployeeID        string `json:"employeeId"`
	Status            string `json:"status"`
	CheckInsScheduled int    `json:"checkInsScheduled"`
}

// ProfileCompletionResponse carries the freshly computed percentage.
type ProfileCompletionResponse struct {
	EmployeeID        string `json:"employeeId"`
	ProfileCompletion int    `json:"profileCompletion"`
}

// WorkflowDTO is a stored workflow configuration.
type WorkflowDTO struct {
	ID          string                 `json:"id"`
	CompanyID   string                 `json:"companyId,omitempty"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	IsDefault   bool                   `json:"isDefault"`
	IsActive    bool                   `json:"isActive"`
	PhaseConfig onboarding.PhaseConfig `json:"phaseConfig"`
	CreatedAt   string                 `json:"createdAt"`
}

// EmployeeDTO is the employee read model exposed by the demo/test seam.
type EmployeeDTO struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"companyId"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	JobTitle          string  `json:"jobTitle,omitempty"`
	HireDate          *string `json:"hireDate,omitempty"`
	EmploymentStatus  string  `json:"employmentStatus"`
	ProfileCompletion int     `json:"profileCompletion"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func phaseKey(phase int) string {
	return "phase" + strconv.Itoa(phase)
}

func phaseStatusesDTO(ps onboarding.PhaseStatuses) map[string]string {
	out := make(map[string]string, len(ps))
	for phase, status := range ps {
		out[phaseKey(phase)] = string(status)
	}
	return out
}

func toRecordDTO(rec *onboarding.Record) RecordDTO {
	return RecordDTO{
		ID:                   string(rec.ID),
		EmployeeID:           string(rec.EmployeeID),
		CompanyID:            string(rec.CompanyID),
		WorkflowID:           string(rec.WorkflowID),
		CurrentPhase:         rec.CurrentPhase,
		OverallStatus:        string(rec.OverallStatus),
		PhaseStatuses:        phaseStatusesDTO(rec.PhaseStatuses),
		EmployeeFileComplete: rec.EmployeeFileComplete,
		StartedAt:            formatTime(rec.StartedAt),
		CompletedAt:          formatTimePtr(rec.CompletedAt),
	}
}

func toDocumentDTO(doc *onboarding.Document) DocumentDTO {
	return DocumentDTO{
		ID:                     string(doc.ID),
		EmployeeID:             string(doc.EmployeeID),
		DocumentType:           doc.Type,
		Name:                   doc.Name,
		Category:               doc.Category,
		Phase:                  doc.Phase,
		Action:                 string(doc.Action),
		RequiresSignature:      doc.RequiresSignature(),
		RequiresAcknowledgment: doc.RequiresAcknowledgment(),
		RequiresUpload:         doc.RequiresUpload(),
		Required:               doc.Required,
		Status:                 string(doc.Status),
		DueDate:                formatTime(doc.DueDate),
		PolicyID:               string(doc.PolicyID),
		RejectionReason:        doc.RejectionReason,
		SignedAt:               formatTimePtr(doc.SignedAt),
		AcknowledgedAt:         formatTimePtr(doc.AcknowledgedAt),
		UploadedAt:             formatTimePtr(doc.UploadedAt),
		VerifiedBy:             doc.VerifiedBy,
		VerifiedAt:             formatTimePtr(doc.VerifiedAt),
		WasOverdue:             doc.WasOverdue,
	}
}

func toDocumentDTOs(docs []onboarding.Document) []DocumentDTO {
	dtos := make([]DocumentDTO, len(docs))
	for i := range docs {
		dtos[i] = toDocumentDTO(&docs[i])
	}
	return dtos
}

func toTransitionResponse(doc *onboarding.Document, pr *onboarding.PhaseResult) TransitionResponse {
	resp := TransitionResponse{Document: toDocumentDTO(doc)}
	if pr != nil {
		resp.PhaseComplete = pr.PhaseComplete
		resp.CurrentPhase = pr.CurrentPhase
		resp.PhaseStatuses = phaseStatusesDTO(pr.PhaseStatuses)
	}
	return resp
}

func toWorkflowDTO(wf *onboarding.Workflow) WorkflowDTO {
	return WorkflowDTO{
		ID:          string(wf.ID),
		CompanyID:   string(wf.CompanyID),
		Name:        wf.Name,
		Description: wf.Description,
		IsDefault:   wf.IsDefault,
		IsActive:    wf.IsActive,
		PhaseConfig: wf.PhaseConfig,
		CreatedAt:   formatTime(wf.CreatedAt),
	}
}

func toEmployeeDTO(emp *onboarding.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:                string(emp.ID),
		CompanyID:         string(emp.CompanyID),
		FirstName:         emp.FirstName,
		LastName:          emp.LastName,
		Email:             emp.Email,
		JobTitle:          emp.JobTitle,
		EmploymentStatus:  string(emp.EmploymentStatus),
		ProfileCompletion: emp.ProfileCompletion,
	}
	if emp.HireDate != nil {
		s := emp.HireDate.Format("2006-01-02")
		dto.HireDate = &s
	}
	return dto
}

func toSummaryDTO(s *onboarding.Summary) SummaryDTO {
	return SummaryDTO{
		Onboarding:        toRecordDTO(s.Record),
		EmployeeName:      s.EmployeeName,
		OverallProgress:   s.OverallProgress,
		ProfileCompletion: s.ProfileCompletion,
	}
}

func toPolicyDTO(p *onboarding.Policy) PolicyDTO {
	return PolicyDTO{
		ID:                     string(p.ID),
		CompanyID:              string(p.CompanyID),
		Name:                   p.Name,
		RequiresAcknowledgment: p.RequiresAcknowledgment,
		IsActive:               p.IsActive,
	}
}

func toProgressDTO(p *onboarding.Progress) ProgressDTO {
	phases := make(map[string]PhaseProgressDTO, len(p.Phases))
	for phase, pp := range p.Phases {
		phases[phaseKey(phase)] = PhaseProgressDTO{
			Total:             pp.Total,
			Completed:         pp.Completed,
			RequiredTotal:     pp.RequiredTotal,
			RequiredCompleted: pp.RequiredCompleted,
			Progress:          pp.Progress,
		}
	}
	return ProgressDTO{
		Onboarding:        toRecordDTO(p.Record),
		EmployeeName:      p.EmployeeName,
		Phases:            phases,
		OverallProgress:   p.OverallProgress,
		ProfileCompletion: p.ProfileCompletion,
		HardGates: GateCheckDTO{
			Passed: p.HardGates.Passed,
			Errors: gateErrors(p.HardGates.Errors),
		},
	}
}

// gateErrors keeps the errors field a JSON array even when no gate failed.
func gateErrors(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}
