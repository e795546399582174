package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenshelf/advisory-engine/engine"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

// june15 is the fixed reference day used across engine tests.
func june15() engine.Date { return engine.NewDate(2025, time.June, 15) }

func classifier() *engine.RiskClassifier {
	return engine.NewRiskClassifier("", june15())
}

func lotExpiring(daysFromToday int, freshness float64) engine.ProductLot {
	return engine.ProductLot{
		ProductID:      "p-1",
		StoreLocation:  "store-a",
		RawExpiryDate:  june15().AddDays(daysFromToday).Format(engine.DefaultDateLayout),
		FreshnessScore: freshness,
	}
}

// =============================================================================
// RISK CLASSIFIER
// =============================================================================

func TestRiskClassifier_HighFreshness_NeverAtRisk(t *testing.T) {
	// GIVEN: freshness at or above 0.7
	// WHEN: classifying lots at any expiry proximity
	// THEN: the risk flag is always false

	for _, days := range []int{-3, 0, 1, 2, 10} {
		for _, freshness := range []float64{0.7, 0.85, 1.0} {
			risk := classifier().Classify(lotExpiring(days, freshness))
			assert.False(t, risk.AtRisk, "days=%d freshness=%v should not be at risk", days, freshness)
		}
	}
}

func TestRiskClassifier_UnparsableDate_DegradesToInvalid(t *testing.T) {
	// GIVEN: a lot whose expiry date cannot be parsed
	// WHEN: classifying
	// THEN: status is invalid, days unknown, risk false - even at low freshness

	for _, raw := range []string{"", "not-a-date", "2025-06-15", "31-02-20xy"} {
		lot := engine.ProductLot{RawExpiryDate: raw, FreshnessScore: 0.1}
		risk := classifier().Classify(lot)

		assert.Equal(t, engine.ExpiryStatusInvalidDate, risk.Status.Kind, "raw=%q", raw)
		assert.Nil(t, risk.DaysToExpiry, "raw=%q", raw)
		assert.False(t, risk.AtRisk, "raw=%q", raw)
	}
}

func TestRiskClassifier_ExpiresToday_LowFreshness_AtRisk(t *testing.T) {
	// GIVEN: a lot expiring today with freshness 0.5
	// WHEN: classifying
	// THEN: risk is true and the status reads "0 day(s) left"

	risk := classifier().Classify(lotExpiring(0, 0.5))

	require.NotNil(t, risk.DaysToExpiry)
	assert.Equal(t, 0, *risk.DaysToExpiry)
	assert.Equal(t, engine.ExpiryStatusDaysLeft, risk.Status.Kind)
	assert.Equal(t, "0 day(s) left", risk.Status.String())
	assert.True(t, risk.AtRisk)
}

func TestRiskClassifier_AlreadyExpired(t *testing.T) {
	// GIVEN: a lot that expired two days ago
	// WHEN: classifying
	// THEN: status is already-expired with negative days; risk still follows
	//       the freshness rule

	risk := classifier().Classify(lotExpiring(-2, 0.4))

	require.NotNil(t, risk.DaysToExpiry)
	assert.Equal(t, -2, *risk.DaysToExpiry)
	assert.Equal(t, engine.ExpiryStatusExpired, risk.Status.Kind)
	assert.Equal(t, "Already Expired", risk.Status.String())
	assert.True(t, risk.AtRisk)
}

func TestRiskClassifier_WindowBoundaries(t *testing.T) {
	// Risk requires days <= 2 AND freshness < 0.7; both boundaries matter.

	assert.True(t, classifier().Classify(lotExpiring(2, 0.69)).AtRisk, "2 days, 0.69 freshness")
	assert.False(t, classifier().Classify(lotExpiring(3, 0.1)).AtRisk, "3 days out is beyond the window")
	assert.False(t, classifier().Classify(lotExpiring(2, 0.7)).AtRisk, "freshness 0.7 is not below the floor")
}
