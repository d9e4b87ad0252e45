package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfi/onboarding-engine/api"
	"github.com/bfi/onboarding-engine/onboarding"
	memstore "github.com/bfi/onboarding-engine/onboarding/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

const testTenant = "tenant-1"

func newTestServer(t *testing.T) (*httptest.Server, *memstore.TxMemory) {
	store := memstore.NewTxMemory()
	engine := onboarding.New(store)
	server := httptest.NewServer(api.NewRouter(api.NewHandler(engine)))
	t.Cleanup(server.Close)
	return server, store
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", testTenant)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedEmployee(t *testing.T, store *memstore.TxMemory, id string) {
	hire := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveEmployee(context.Background(), &onboarding.Employee{
		ID:        onboarding.EmployeeID(id),
		TenantID:  testTenant,
		CompanyID: "company-1",
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		HireDate:  &hire,
	}))
}

func startOnboarding(t *testing.T, server *httptest.Server, employeeID string) api.StartOnboardingResponse {
	resp := doJSON(t, http.MethodPost,
		server.URL+"/api/onboarding/employees/"+employeeID+"/start",
		map[string]string{"companyId": "company-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[api.StartOnboardingResponse](t, resp)
}

// =============================================================================
// TENANCY
// =============================================================================

func TestAPI_MissingTenantHeader_Rejected(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/onboarding/workflows")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// ONBOARDING LIFECYCLE
// =============================================================================

func TestAPI_StartOnboarding(t *testing.T) {
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")

	result := startOnboarding(t, server, "emp-1")

	assert.Equal(t, "emp-1", result.Onboarding.EmployeeID)
	assert.Equal(t, 1, result.Onboarding.CurrentPhase)
	assert.Len(t, result.DocumentsCreated, 13)
}

func TestAPI_StartOnboarding_MissingCompany_Rejected(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost,
		server.URL+"/api/onboarding/employees/emp-1/start", map[string]string{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Progress_UnknownEmployee_404(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet,
		server.URL+"/api/onboarding/employees/nobody/progress", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Progress_FrontendShape(t *testing.T) {
	// The progress payload keys are consumed by the frontend as-is; this
	// test pins the contract.
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")
	startOnboarding(t, server, "emp-1")

	resp := doJSON(t, http.MethodGet,
		server.URL+"/api/onboarding/employees/emp-1/progress", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw := decode[map[string]json.RawMessage](t, resp)
	for _, key := range []string{"onboarding", "employeeName", "phases", "overallProgress", "profileCompletion", "hardGatesPassed"} {
		assert.Contains(t, raw, key)
	}

	var phases map[string]api.PhaseProgressDTO
	require.NoError(t, json.Unmarshal(raw["phases"], &phases))
	assert.Contains(t, phases, "phase1")
	assert.Equal(t, 5, phases["phase1"].RequiredTotal)

	// The wizard dereferences .passed and .errors off hardGatesPassed.
	var gates api.GateCheckDTO
	require.NoError(t, json.Unmarshal(raw["hardGatesPassed"], &gates))
	assert.False(t, gates.Passed)
	assert.NotEmpty(t, gates.Errors)
}

func TestAPI_ListOnboarding_Dashboard(t *testing.T) {
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")
	seedEmployee(t, store, "emp-2")
	startOnboarding(t, server, "emp-1")
	startOnboarding(t, server, "emp-2")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/onboarding/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summaries := decode[[]api.SummaryDTO](t, resp)
	require.Len(t, summaries, 2)
	assert.Equal(t, "emp-1", summaries[0].Onboarding.EmployeeID)
	assert.Equal(t, "Ada Obi", summaries[0].EmployeeName)
	assert.Equal(t, 0, summaries[0].OverallProgress)
}

// =============================================================================
// DOCUMENT ACTIONS
// =============================================================================

func findDocument(t *testing.T, docs []api.DocumentDTO, docType string) api.DocumentDTO {
	t.Helper()
	for _, doc := range docs {
		if doc.DocumentType == docType {
			return doc
		}
	}
	t.Fatalf("document %s not seeded", docType)
	return api.DocumentDTO{}
}

func TestAPI_SignDocument_RequiresSignatureData(t *testing.T) {
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")
	result := startOnboarding(t, server, "emp-1")
	offer := findDocument(t, result.DocumentsCreated, "offer_letter")

	url := fmt.Sprintf("%s/api/onboarding/employees/emp-1/documents/%s/sign", server.URL, offer.ID)

	// Without signature data: rejected.
	resp := doJSON(t, http.MethodPost, url, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// With signature data: signed.
	resp = doJSON(t, http.MethodPost, url, map[string]string{"signatureData": "data:image/png;base64,AAAA"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	transition := decode[api.TransitionResponse](t, resp)
	assert.Equal(t, "signed", transition.Document.Status)
	assert.False(t, transition.PhaseComplete)
}

func TestAPI_SignRoute_DispatchesAcknowledgment(t *testing.T) {
	// Acknowledgment documents go through the same route without a body.
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")
	result := startOnboarding(t, server, "emp-1")
	conduct := findDocument(t, result.DocumentsCreated, "code_of_conduct")

	resp := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/onboarding/employees/emp-1/documents/%s/sign", server.URL, conduct.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	transition := decode[api.TransitionResponse](t, resp)
	assert.Equal(t, "acknowledged", transition.Document.Status)
}

func TestAPI_UploadVerifyReject_Loop(t *testing.T) {
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")
	result := startOnboarding(t, server, "emp-1")
	id := findDocument(t, result.DocumentsCreated, "government_id").ID
	base := fmt.Sprintf("%s/api/onboarding/employees/emp-1/documents/%s", server.URL, id)

	resp := doJSON(t, http.MethodPost, base+"/upload", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, base+"/reject", map[string]string{"rejectedBy": "hr-1", "reason": "blurry scan"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	transition := decode[api.TransitionResponse](t, resp)
	assert.Equal(t, "rejected", transition.Document.Status)
	assert.Equal(t, "blurry scan", transition.Document.RejectionReason)

	// Re-upload then verify.
	resp = doJSON(t, http.MethodPost, base+"/upload", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, base+"/verify", map[string]string{"verifiedBy": "hr-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	transition = decode[api.TransitionResponse](t, resp)
	assert.Equal(t, "verified", transition.Document.Status)
}

func TestAPI_InvalidTransition_400(t *testing.T) {
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")
	result := startOnboarding(t, server, "emp-1")
	id := findDocument(t, result.DocumentsCreated, "government_id").ID

	// Verify before upload is an invalid move.
	resp := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/api/onboarding/employees/emp-1/documents/%s/verify", server.URL, id),
		map[string]string{"verifiedBy": "hr-1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// ACTIVATION
// =============================================================================

func TestAPI_Activate_Blocked_409WithViolations(t *testing.T) {
	// GIVEN: A fresh onboarding with all gates failing
	// WHEN: Activation is requested
	// THEN: 409 carrying the complete violation list

	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")
	startOnboarding(t, server, "emp-1")

	resp := doJSON(t, http.MethodPost,
		server.URL+"/api/onboarding/employees/emp-1/activate",
		map[string]string{"activatedBy": "hr-1"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode[api.ErrorResponse](t, resp)
	assert.NotEmpty(t, body.Errors)
	assert.Contains(t, body.Errors, "Employee file not marked complete by HR")
}

func TestAPI_Gates_Endpoint(t *testing.T) {
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")
	startOnboarding(t, server, "emp-1")

	resp := doJSON(t, http.MethodGet,
		server.URL+"/api/onboarding/employees/emp-1/gates", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	gates := decode[api.HardGatesResponse](t, resp)
	assert.False(t, gates.HardGatesPassed)
	assert.NotEmpty(t, gates.Errors)
}

func TestAPI_ProfileCompletion(t *testing.T) {
	server, store := newTestServer(t)
	seedEmployee(t, store, "emp-1")

	resp := doJSON(t, http.MethodPost,
		server.URL+"/api/onboarding/employees/emp-1/profile-completion", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[api.ProfileCompletionResponse](t, resp)
	assert.Equal(t, "emp-1", body.EmployeeID)
	// first/last/email/hire_date populated by the fixture: 5+5+5+5
	assert.Equal(t, 20, body.ProfileCompletion)
}

// =============================================================================
// WORKFLOW ADMIN
// =============================================================================

func TestAPI_CreateAndGetWorkflow(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/onboarding/workflows", api.CreateWorkflowRequest{
		Name:        "Engineering Onboarding",
		IsDefault:   true,
		PhaseConfig: onboarding.DefaultPhaseConfig(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.WorkflowDTO](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/onboarding/workflows/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.WorkflowDTO](t, resp)
	assert.Equal(t, "Engineering Onboarding", got.Name)
}

func TestAPI_UpdateWorkflow(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/onboarding/workflows", api.CreateWorkflowRequest{
		Name:        "Engineering Onboarding",
		PhaseConfig: onboarding.DefaultPhaseConfig(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.WorkflowDTO](t, resp)

	inactive := false
	resp = doJSON(t, http.MethodPut, server.URL+"/api/onboarding/workflows/"+created.ID, api.CreateWorkflowRequest{
		Name:     "Engineering Onboarding v2",
		IsActive: &inactive,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[api.WorkflowDTO](t, resp)
	assert.Equal(t, "Engineering Onboarding v2", updated.Name)
	assert.False(t, updated.IsActive)
	// Omitting phaseConfig keeps the stored configuration.
	assert.Len(t, updated.PhaseConfig, onboarding.PhaseCount)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/onboarding/workflows/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.WorkflowDTO](t, resp)
	assert.Equal(t, "Engineering Onboarding v2", got.Name)
}

func TestAPI_UpdateWorkflow_Unknown_404(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, server.URL+"/api/onboarding/workflows/wf-gone", api.CreateWorkflowRequest{
		Name: "Renamed",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CreateWorkflow_MissingName_Rejected(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/onboarding/workflows", api.CreateWorkflowRequest{
		PhaseConfig: onboarding.DefaultPhaseConfig(),
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// EMPLOYEE SEAM
// =============================================================================

func TestAPI_CreateEmployee_InvalidHireDate_Rejected(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/employees", map[string]string{
		"firstName": "Ada", "lastName": "Obi", "email": "ada@example.com",
		"hireDate": "06/01/2025",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CreateAndGetEmployee(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/employees", map[string]string{
		"id": "emp-9", "companyId": "company-1",
		"firstName": "Ada", "lastName": "Obi", "email": "ada@example.com",
		"hireDate": "2025-06-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/employees/emp-9", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	emp := decode[api.EmployeeDTO](t, resp)
	assert.Equal(t, "Ada", emp.FirstName)
	require.NotNil(t, emp.HireDate)
	assert.Equal(t, "2025-06-01", *emp.HireDate)
}
