package onboarding_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfi/onboarding-engine/onboarding"
)

// =============================================================================
// SCORING TESTS
// =============================================================================

func TestScoreProfile_Empty(t *testing.T) {
	assert.Equal(t, 0, onboarding.ScoreProfile(&onboarding.Employee{}))
}

func TestScoreProfile_NameAndEmailOnly(t *testing.T) {
	// first_name 5 + last_name 5 + email 5 = 15%
	emp := &onboarding.Employee{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
	}
	assert.Equal(t, 15, onboarding.ScoreProfile(emp))
}

func TestScoreProfile_WhitespaceNotCounted(t *testing.T) {
	emp := &onboarding.Employee{
		FirstName: "  ",
		LastName:  "Obi",
	}
	assert.Equal(t, 5, onboarding.ScoreProfile(emp))
}

func TestScoreProfile_FullProfile(t *testing.T) {
	emp := fullProfileEmployee("emp-1")
	assert.Equal(t, 100, onboarding.ScoreProfile(emp))
}

func TestScoreProfile_MissingHireDate(t *testing.T) {
	// hire_date carries weight 5; everything else present scores 95.
	emp := fullProfileEmployee("emp-1")
	emp.HireDate = nil
	assert.Equal(t, 95, onboarding.ScoreProfile(emp))
}

func TestScoreProfile_BankingGroupWeight(t *testing.T) {
	// Banking fields alone: 7 + 7 + 6 = 20%
	emp := &onboarding.Employee{
		BankName:          "GTBank",
		BankAccountNumber: "0123456789",
		BankAccountName:   "Ada Obi",
	}
	assert.Equal(t, 20, onboarding.ScoreProfile(emp))
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestCalculateProfileCompletion_PersistsCachedScore(t *testing.T) {
	// GIVEN: An employee with a partial profile
	// WHEN: Completion is calculated
	// THEN: The score is cached on the employee row for the gate check

	engine, store := newTestEngine(t)
	ctx := context.Background()
	seedEmployee(t, store, &onboarding.Employee{
		ID: "emp-1", TenantID: testTenant, CompanyID: testCompany,
		FirstName: "Ada", LastName: "Obi", Email: "ada@example.com",
	})

	pct, err := engine.CalculateProfileCompletion(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 15, pct)

	emp, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 15, emp.ProfileCompletion)
}

func TestCalculateProfileCompletion_MissingEmployee(t *testing.T) {
	engine, _ := newTestEngine(t)

	pct, err := engine.CalculateProfileCompletion(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}
