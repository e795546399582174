package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenshelf/advisory-engine/engine"
)

func daysLeft(n int) engine.RiskAssessment {
	return engine.RiskAssessment{
		DaysToExpiry: iptr(n),
		Status:       engine.ExpiryStatus{Kind: engine.ExpiryStatusDaysLeft, DaysLeft: n},
	}
}

func stockedLot(stock int) engine.ProductLot {
	return engine.ProductLot{ProductID: "p-1", StoreLocation: "store-a", Stock: stock}
}

// =============================================================================
// ALERT DETECTOR
// =============================================================================

func TestAlertDetector_ExpiringToday(t *testing.T) {
	// GIVEN: a lot with less than one day to expiry
	// WHEN: detecting
	// THEN: the expiring-today alert fires

	for _, days := range []int{0, -1, -5} {
		alert, ok := engine.NewAlertDetector().Detect(stockedLot(10), daysLeft(days), fptr(50))
		require.True(t, ok, "days=%d", days)
		assert.Equal(t, engine.AlertExpiringToday, alert.Reason)
	}
}

func TestAlertDetector_OverstockedLowDemand(t *testing.T) {
	alert, ok := engine.NewAlertDetector().Detect(stockedLot(60), daysLeft(5), fptr(5))

	require.True(t, ok)
	assert.Equal(t, engine.AlertOverstockedLowDemand, alert.Reason)
	assert.Equal(t, "p-1", alert.ProductID)
	assert.Equal(t, "store-a", alert.StoreLocation)
}

func TestAlertDetector_DemandSurgeLowStock(t *testing.T) {
	alert, ok := engine.NewAlertDetector().Detect(stockedLot(10), daysLeft(5), fptr(90))

	require.True(t, ok)
	assert.Equal(t, engine.AlertDemandSurgeLowStock, alert.Reason)
}

func TestAlertDetector_SurgeNeedsShelfLife(t *testing.T) {
	// GIVEN: a surge on thin stock but only one day of shelf life
	// WHEN: detecting
	// THEN: no alert - restocking a lot that expires tomorrow is pointless

	_, ok := engine.NewAlertDetector().Detect(stockedLot(10), daysLeft(1), fptr(90))
	assert.False(t, ok)
}

func TestAlertDetector_PriorityOrder(t *testing.T) {
	// GIVEN: a lot matching both the expiry rule and the overstock rule
	// WHEN: detecting
	// THEN: only the expiring-today alert fires - expiry urgency dominates

	alert, ok := engine.NewAlertDetector().Detect(stockedLot(60), daysLeft(0), fptr(5))

	require.True(t, ok)
	assert.Equal(t, engine.AlertExpiringToday, alert.Reason)
}

func TestAlertDetector_UnknownDemand_SkipsStockingRules(t *testing.T) {
	// GIVEN: no demand estimate
	// THEN: rules 2 and 3 cannot fire, rule 1 still can

	_, ok := engine.NewAlertDetector().Detect(stockedLot(60), daysLeft(5), nil)
	assert.False(t, ok)

	alert, ok := engine.NewAlertDetector().Detect(stockedLot(60), daysLeft(0), nil)
	require.True(t, ok)
	assert.Equal(t, engine.AlertExpiringToday, alert.Reason)
}

func TestAlertDetector_ThresholdsAreStrict(t *testing.T) {
	d := engine.NewAlertDetector()

	// stock must exceed 50, demand must be below 10
	_, ok := d.Detect(stockedLot(50), daysLeft(5), fptr(5))
	assert.False(t, ok, "stock exactly 50 is not overstocked")
	_, ok = d.Detect(stockedLot(60), daysLeft(5), fptr(10))
	assert.False(t, ok, "demand exactly 10 is not low")

	// demand must exceed 80, stock must be below 20
	_, ok = d.Detect(stockedLot(20), daysLeft(5), fptr(90))
	assert.False(t, ok, "stock exactly 20 is not low")
	_, ok = d.Detect(stockedLot(10), daysLeft(5), fptr(80))
	assert.False(t, ok, "demand exactly 80 is not a surge")
}

func TestAlertDetector_NoConditions_NoAlert(t *testing.T) {
	_, ok := engine.NewAlertDetector().Detect(stockedLot(30), daysLeft(5), fptr(40))
	assert.False(t, ok)
}
