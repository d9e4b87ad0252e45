/*
handlers.go - HTTP API handlers for the onboarding engine

PURPOSE:
  Exposes the onboarding engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Onboarding:
    GET  /api/onboarding/employees                          Dashboard listing
    POST /api/onboarding/employees/{id}/start               Initialize onboarding
    GET  /api/onboarding/employees/{id}/progress            Aggregated progress view
    GET  /api/onboarding/employees/{id}/gates               Hard-gate evaluation
    GET  /api/onboarding/employees/{id}/documents           Document ledger
    POST /api/onboarding/employees/{id}/documents/{docID}/sign    Sign or acknowledge
    POST /api/onboarding/employees/{id}/documents/{docID}/upload  Record upload
    PUT  /api/onboarding/employees/{id}/documents/{docID}/verify  HR verify
    PUT  /api/onboarding/employees/{id}/documents/{docID}/reject  HR reject
    PUT  /api/onboarding/employees/{id}/file-complete       HR employee-file sign-off
    POST /api/onboarding/employees/{id}/refresh-documents   Re-run idempotent seeding
    POST /api/onboarding/employees/{id}/activate            Activate employee
    POST /api/onboarding/employees/{id}/profile-completion  Recompute profile score

  Workflows:
    GET  /api/onboarding/workflows          List workflow templates
    POST /api/onboarding/workflows          Create workflow template
    GET  /api/onboarding/workflows/{id}     Get workflow template
    PUT  /api/onboarding/workflows/{id}     Update workflow template

  Seams (demo/dev; owned by the wider system in production):
    POST /api/employees                     Create employee
    GET  /api/employees/{id}                Get employee
    POST /api/policies                      Create policy

TENANCY:
  Every request is scoped by the X-Tenant-ID header. The auth middleware
  that would populate it from a session is an external collaborator;
  requests without the header are rejected with 400.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, invalid document transitions
  - 404: Resource not found
  - 409: Activation blocked by hard gates (full violation list included)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - onboarding: the engine these handlers delegate to
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bfi/onboarding-engine/onboarding"
)

// tenantHeader carries the tenant scope on every request.
const tenantHeader = "X-Tenant-ID"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *onboarding.Engine
}

// NewHandler creates a new handler around the engine.
func NewHandler(engine *onboarding.Engine) *Handler {
	return &Handler{Engine: engine}
}

func (h *Handler) store() onboarding.TxStore {
	return h.Engine.Store()
}

// tenantID extracts the tenant scope, writing a 400 when absent.
func tenantID(w http.ResponseWriter, r *http.Request) (onboarding.TenantID, bool) {
	t := r.Header.Get(tenantHeader)
	if t == "" {
		writeError(w, http.StatusBadRequest, "Missing "+tenantHeader+" header", nil)
		return "", false
	}
	return onboarding.TenantID(t), true
}

// =============================================================================
// ONBOARDING LIFECYCLE
// =============================================================================

// StartOnboarding initializes (or restarts) onboarding for an employee.
// POST /api/onboarding/employees/{id}/start
func (h *Handler) StartOnboarding(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))

	var req StartOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.CompanyID == "" {
		writeError(w, http.StatusBadRequest, "companyId is required", nil)
		return
	}

	result, err := h.Engine.Initialize(r.Context(), onboarding.InitializeInput{
		TenantID:    tenant,
		CompanyID:   onboarding.CompanyID(req.CompanyID),
		EmployeeID:  employeeID,
		WorkflowID:  onboarding.WorkflowID(req.WorkflowID),
		InitiatedBy: onboarding.EmployeeID(req.InitiatedBy),
	})
	if err != nil {
		writeEngineError(w, "Failed to initialize onboarding", err)
		return
	}

	writeJSON(w, http.StatusCreated, StartOnboardingResponse{
		Onboarding:       toRecordDTO(result.Record),
		DocumentsCreated: toDocumentDTOs(result.Documents),
	})
}

// ListOnboarding returns the HR dashboard listing: every onboarding in the
// tenant with its progress summary.
// GET /api/onboarding/employees
func (h *Handler) ListOnboarding(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	summaries, err := h.Engine.ListOnboardingSummaries(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list onboardings", err)
		return
	}

	dtos := make([]SummaryDTO, len(summaries))
	for i := range summaries {
		dtos[i] = toSummaryDTO(&summaries[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProgress returns the aggregated progress view.
// GET /api/onboarding/employees/{id}/progress
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))

	progress, err := h.Engine.GetOnboardingProgress(r.Context(), tenant, employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get progress", err)
		return
	}
	if progress == nil {
		writeError(w, http.StatusNotFound, "No onboarding record found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toProgressDTO(progress))
}

// GetHardGates evaluates the activation gates without activating.
// GET /api/onboarding/employees/{id}/gates
func (h *Handler) GetHardGates(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))

	gates, err := h.Engine.CheckHardGates(r.Context(), tenant, employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check gates", err)
		return
	}

	writeJSON(w, http.StatusOK, HardGatesResponse{
		HardGatesPassed: gates.Passed,
		Errors:          gateErrors(gates.Errors),
	})
}

// ListDocuments returns the employee's document ledger, optionally filtered
// by phase and status query parameters.
// GET /api/onboarding/employees/{id}/documents
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))

	var filter onboarding.DocumentFilter
	if p := r.URL.Query().Get("phase"); p != "" {
		phase, err := parsePhase(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid phase parameter", err)
			return
		}
		filter.Phase = &phase
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := onboarding.DocumentStatus(s)
		filter.Status = &status
	}

	docs, err := h.store().ListDocuments(r.Context(), tenant, employeeID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list documents", err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentDTOs(docs))
}

// RefreshDocuments re-runs idempotent seeding for an existing onboarding.
// POST /api/onboarding/employees/{id}/refresh-documents
func (h *Handler) RefreshDocuments(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))

	created, err := h.Engine.RefreshDocuments(r.Context(), tenant, employeeID)
	if err != nil {
		writeEngineError(w, "Failed to refresh documents", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"documentsCreated": toDocumentDTOs(created),
	})
}

// =============================================================================
// DOCUMENT ACTIONS
// =============================================================================

// SignDocument signs or acknowledges a document, dispatched on the row's
// configured action. Signature documents require signatureData in the body.
// POST /api/onboarding/employees/{id}/documents/{docID}/sign
func (h *Handler) SignDocument(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))
	docID := onboarding.DocumentID(chi.URLParam(r, "docID"))

	var req SignDocumentRequest
	if r.Body != nil {
		// Body is optional for acknowledgments.
		json.NewDecoder(r.Body).Decode(&req)
	}

	doc, err := h.store().GetDocument(r.Context(), tenant, docID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load document", err)
		return
	}
	if doc == nil || doc.EmployeeID != employeeID {
		writeError(w, http.StatusNotFound, "Document not found", nil)
		return
	}

	var (
		updated *onboarding.Document
		pr      *onboarding.PhaseResult
	)
	if doc.RequiresSignature() {
		if req.SignatureData == "" {
			writeError(w, http.StatusBadRequest, "signatureData is required for signature documents", nil)
			return
		}
		updated, pr, err = h.Engine.SignDocument(r.Context(), tenant, employeeID, docID)
	} else {
		updated, pr, err = h.Engine.AcknowledgeDocument(r.Context(), tenant, employeeID, docID)
	}
	if err != nil {
		writeEngineError(w, "Failed to complete document", err)
		return
	}

	writeJSON(w, http.StatusOK, toTransitionResponse(updated, pr))
}

// UploadDocument records that the employee uploaded the requested file.
// POST /api/onboarding/employees/{id}/documents/{docID}/upload
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))
	docID := onboarding.DocumentID(chi.URLParam(r, "docID"))

	doc, pr, err := h.Engine.UploadDocument(r.Context(), tenant, employeeID, docID)
	if err != nil {
		writeEngineError(w, "Failed to record upload", err)
		return
	}

	writeJSON(w, http.StatusOK, toTransitionResponse(doc, pr))
}

// VerifyDocument is the HR approval of an uploaded document.
// PUT /api/onboarding/employees/{id}/documents/{docID}/verify
func (h *Handler) VerifyDocument(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))
	docID := onboarding.DocumentID(chi.URLParam(r, "docID"))

	var req VerifyDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	doc, pr, err := h.Engine.VerifyDocument(r.Context(), tenant, employeeID, docID, req.VerifiedBy)
	if err != nil {
		writeEngineError(w, "Failed to verify document", err)
		return
	}

	writeJSON(w, http.StatusOK, toTransitionResponse(doc, pr))
}

// RejectDocument is the HR rejection of an uploaded document.
// PUT /api/onboarding/employees/{id}/documents/{docID}/reject
func (h *Handler) RejectDocument(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))
	docID := onboarding.DocumentID(chi.URLParam(r, "docID"))

	var req RejectDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	doc, err := h.Engine.RejectDocument(r.Context(), tenant, employeeID, docID, req.RejectedBy, req.Reason)
	if err != nil {
		writeEngineError(w, "Failed to reject document", err)
		return
	}

	writeJSON(w, http.StatusOK, toTransitionResponse(doc, nil))
}

// MarkFileComplete is the HR sign-off on the employee file (Gate 3).
// PUT /api/onboarding/employees/{id}/file-complete
func (h *Handler) MarkFileComplete(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))

	var req FileCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.Engine.MarkEmployeeFileComplete(r.Context(), tenant, employeeID, req.VerifiedBy)
	if err != nil {
		writeEngineError(w, "Failed to mark employee file complete", err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordDTO(rec))
}

// =============================================================================
// ACTIVATION AND PROFILE
// =============================================================================

// ActivateEmployee runs the gate check and converts the employee to active.
// A gate-blocked activation returns 409 with the full violation list.
// POST /api/onboarding/employees/{id}/activate
func (h *Handler) ActivateEmployee(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))

	var req ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Engine.ActivateEmployee(r.Context(), tenant, employeeID, onboarding.EmployeeID(req.ActivatedBy))
	if err != nil {
		var gateErr *onboarding.GateError
		if errors.As(err, &gateErr) {
			writeJSON(w, http.StatusConflict, ErrorResponse{
				Error:  "Cannot activate employee: hard gates not passed",
				Errors: gateErr.Violations,
			})
			return
		}
		writeEngineError(w, "Failed to activate employee", err)
		return
	}

	writeJSON(w, http.StatusOK, ActivationResponse{
		Success:           result.Success,
		EmployeeID:        string(result.EmployeeID),
		Status:            string(result.Status),
		CheckInsScheduled: result.CheckInsScheduled,
	})
}

// CalculateProfileCompletion recomputes and persists the profile score.
// POST /api/onboarding/employees/{id}/profile-completion
func (h *Handler) CalculateProfileCompletion(w http.ResponseWriter, r *http.Request) {
	if _, ok := tenantID(w, r); !ok {
		return
	}
	employeeID := onboarding.EmployeeID(chi.URLParam(r, "id"))

	completion, err := h.Engine.CalculateProfileCompletion(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to calculate profile completion", err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileCompletionResponse{
		EmployeeID:        string(employeeID),
		ProfileCompletion: completion,
	})
}

// =============================================================================
// WORKFLOW ADMIN
// =============================================================================

// ListWorkflows returns the tenant's workflow templates.
// GET /api/onboarding/workflows
func (h *Handler) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	workflows, err := h.store().ListWorkflows(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workflows", err)
		return
	}

	dtos := make([]WorkflowDTO, len(workflows))
	for i := range workflows {
		dtos[i] = toWorkflowDTO(&workflows[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorkflow returns a single workflow template.
// GET /api/onboarding/workflows/{id}
func (h *Handler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	id := onboarding.WorkflowID(chi.URLParam(r, "id"))

	wf, err := h.store().GetWorkflow(r.Context(), tenant, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get workflow", err)
		return
	}
	if wf == nil {
		writeError(w, http.StatusNotFound, "Workflow not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toWorkflowDTO(wf))
}

// CreateWorkflow stores a workflow template.
// POST /api/onboarding/workflows
func (h *Handler) CreateWorkflow(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	var req CreateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	if len(req.PhaseConfig) == 0 {
		writeError(w, http.StatusBadRequest, "phaseConfig is required", nil)
		return
	}

	now := time.Now().UTC()
	wf := &onboarding.Workflow{
		ID:          onboarding.WorkflowID(uuid.NewString()),
		TenantID:    tenant,
		CompanyID:   onboarding.CompanyID(req.CompanyID),
		Name:        req.Name,
		Description: req.Description,
		IsDefault:   req.IsDefault,
		IsActive:    req.IsActive == nil || *req.IsActive,
		PhaseConfig: req.PhaseConfig,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store().SaveWorkflow(r.Context(), wf); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create workflow", err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorkflowDTO(wf))
}

// UpdateWorkflow replaces the mutable fields of a workflow template.
// PUT /api/onboarding/workflows/{id}
func (h *Handler) UpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}
	id := onboarding.WorkflowID(chi.URLParam(r, "id"))

	var req CreateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wf, err := h.store().GetWorkflow(r.Context(), tenant, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get workflow", err)
		return
	}
	if wf == nil {
		writeError(w, http.StatusNotFound, "Workflow not found", nil)
		return
	}

	if req.Name != "" {
		wf.Name = req.Name
	}
	wf.Description = req.Description
	wf.IsDefault = req.IsDefault
	if req.IsActive != nil {
		wf.IsActive = *req.IsActive
	}
	if len(req.PhaseConfig) > 0 {
		wf.PhaseConfig = req.PhaseConfig
	}
	wf.UpdatedAt = time.Now().UTC()

	if err := h.store().SaveWorkflow(r.Context(), wf); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update workflow", err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkflowDTO(wf))
}

// =============================================================================
// EXTERNAL-COLLABORATOR SEAMS (demo/dev)
// =============================================================================

// CreateEmployee seeds an employee record.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "firstName, lastName and email are required", nil)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	emp := &onboarding.Employee{
		ID:        onboarding.EmployeeID(id),
		TenantID:  tenant,
		CompanyID: onboarding.CompanyID(req.CompanyID),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		JobTitle:  req.JobTitle,
		ReportsTo: onboarding.EmployeeID(req.ReportsTo),
		CreatedAt: time.Now().UTC(),
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid hireDate format (use YYYY-MM-DD)", err)
			return
		}
		emp.HireDate = &hireDate
	}

	if err := h.store().SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployee returns a single employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	if _, ok := tenantID(w, r); !ok {
		return
	}
	id := onboarding.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.store().GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// CreatePolicy seeds a policy catalog entry.
// POST /api/policies
func (h *Handler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	var req CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	policy := &onboarding.Policy{
		ID:                     onboarding.PolicyID(id),
		TenantID:               tenant,
		CompanyID:              onboarding.CompanyID(req.CompanyID),
		Name:                   req.Name,
		RequiresAcknowledgment: req.RequiresAcknowledgment,
		IsActive:               req.IsActive == nil || *req.IsActive,
	}

	if err := h.store().SavePolicy(r.Context(), policy); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create policy", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPolicyDTO(policy))
}

// =============================================================================
// HELPERS
// =============================================================================

func parsePhase(s string) (int, error) {
	return strconv.Atoi(s)
}

// writeEngineError maps engine errors onto HTTP statuses using the error
// taxonomy helpers.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case onboarding.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case onboarding.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
