package onboarding_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfi/onboarding-engine/onboarding"
	memstore "github.com/bfi/onboarding-engine/onboarding/store"
)

// =============================================================================
// DEFAULT CONFIGURATION TESTS
// =============================================================================

func TestDefaultPhaseConfig_Shape(t *testing.T) {
	cfg := onboarding.DefaultPhaseConfig()

	require.Len(t, cfg, onboarding.PhaseCount)
	assert.Len(t, cfg[1].Documents, 5)
	assert.Len(t, cfg[2].Documents, 3)
	assert.Len(t, cfg[3].Documents, 5)
	assert.Empty(t, cfg[4].Documents)
	assert.Empty(t, cfg[5].Documents)

	assert.True(t, cfg[1].HardGate)
	assert.True(t, cfg[3].HardGate)
	assert.False(t, cfg[2].HardGate)
}

func TestDefaultPhaseConfig_OptionalDocuments(t *testing.T) {
	cfg := onboarding.DefaultPhaseConfig()

	optional := map[string]bool{}
	for _, phase := range cfg {
		for _, spec := range phase.Documents {
			if !spec.IsRequired() {
				optional[spec.Type] = true
			}
		}
	}
	assert.Equal(t, map[string]bool{
		"key_contacts":       true,
		"professional_certs": true,
	}, optional)
}

func TestDefaultPhaseConfig_FreshCopyPerCall(t *testing.T) {
	a := onboarding.DefaultPhaseConfig()
	a[1] = onboarding.Phase{Name: "mutated"}

	b := onboarding.DefaultPhaseConfig()
	assert.Equal(t, "Document Signing", b[1].Name)
}

// =============================================================================
// JSON CODEC TESTS
// =============================================================================

func TestPhaseConfig_JSONKeys(t *testing.T) {
	// Phase numbers serialize as "phaseN" object keys.
	cfg := onboarding.PhaseConfig{
		1: {Name: "First", DueDays: 2},
		3: {Name: "Third", DueDays: 5},
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "phase1")
	assert.Contains(t, keys, "phase3")

	var back onboarding.PhaseConfig
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
}

func TestPhaseStatuses_JSONKeys(t *testing.T) {
	ps := onboarding.NewPhaseStatuses()
	ps[1] = onboarding.PhaseCompleted

	data, err := json.Marshal(ps)
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "completed", m["phase1"])
	assert.Equal(t, "pending", m["phase5"])
	assert.Len(t, m, onboarding.PhaseCount)

	var back onboarding.PhaseStatuses
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ps, back)
}

// =============================================================================
// RESOLVER PRECEDENCE TESTS
// =============================================================================

func resolverFixture(t *testing.T) (*memstore.Memory, onboarding.PhaseConfig) {
	s := memstore.NewMemory()
	ctx := context.Background()
	cfg := onboarding.DefaultPhaseConfig()

	require.NoError(t, s.SaveWorkflow(ctx, &onboarding.Workflow{
		ID: "wf-explicit", TenantID: testTenant, Name: "Explicit",
		IsActive: true, PhaseConfig: cfg,
	}))
	require.NoError(t, s.SaveWorkflow(ctx, &onboarding.Workflow{
		ID: "wf-company", TenantID: testTenant, CompanyID: testCompany,
		Name: "Company Default", IsDefault: true, IsActive: true, PhaseConfig: cfg,
	}))
	require.NoError(t, s.SaveWorkflow(ctx, &onboarding.Workflow{
		ID: "wf-tenant", TenantID: testTenant, Name: "Tenant Default",
		IsDefault: true, IsActive: true, PhaseConfig: cfg,
	}))
	return s, cfg
}

func TestResolveWorkflow_ExplicitWins(t *testing.T) {
	s, _ := resolverFixture(t)

	wf, err := onboarding.ResolveWorkflow(context.Background(), s, testTenant, testCompany, "wf-explicit")
	require.NoError(t, err)
	require.NotNil(t, wf)
	assert.Equal(t, onboarding.WorkflowID("wf-explicit"), wf.ID)
}

func TestResolveWorkflow_CompanyDefaultBeatsTenantDefault(t *testing.T) {
	s, _ := resolverFixture(t)

	wf, err := onboarding.ResolveWorkflow(context.Background(), s, testTenant, testCompany, "")
	require.NoError(t, err)
	require.NotNil(t, wf)
	assert.Equal(t, onboarding.WorkflowID("wf-company"), wf.ID)
}

func TestResolveWorkflow_TenantDefaultFallback(t *testing.T) {
	s, _ := resolverFixture(t)

	wf, err := onboarding.ResolveWorkflow(context.Background(), s, testTenant, "other-company", "")
	require.NoError(t, err)
	require.NotNil(t, wf)
	assert.Equal(t, onboarding.WorkflowID("wf-tenant"), wf.ID)
}

func TestResolveWorkflow_MissingExplicit_FallsThrough(t *testing.T) {
	// A dangling explicit ID is not an error; resolution continues down the
	// precedence chain.
	s, _ := resolverFixture(t)

	wf, err := onboarding.ResolveWorkflow(context.Background(), s, testTenant, testCompany, "wf-gone")
	require.NoError(t, err)
	require.NotNil(t, wf)
	assert.Equal(t, onboarding.WorkflowID("wf-company"), wf.ID)
}

func TestResolveWorkflow_NothingConfigured_ReturnsNil(t *testing.T) {
	s := memstore.NewMemory()

	wf, err := onboarding.ResolveWorkflow(context.Background(), s, testTenant, testCompany, "")
	require.NoError(t, err)
	assert.Nil(t, wf)
}
