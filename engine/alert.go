package engine

// =============================================================================
// ALERT DETECTOR - Ordered, first-match-wins condition set
// =============================================================================

// AlertThresholds parameterizes the stocking-signal rules. Zero value is not
// usable; start from DefaultAlertThresholds.
type AlertThresholds struct {
	OverstockUnits   int     // rule 2: stock strictly above this
	LowDemandUnits   float64 // rule 2: daily demand strictly below this
	SurgeDemandUnits float64 // rule 3: daily demand strictly above this
	LowStockUnits    int     // rule 3: stock strictly below this
}

func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		OverstockUnits:   50,
		LowDemandUnits:   10,
		SurgeDemandUnits: 80,
		LowStockUnits:    20,
	}
}

// AlertDetector evaluates the alert rules top to bottom and stops at the
// first match. Expiry urgency dominates stocking signals: a lot that is
// both expiring and overstocked reports as expiring, the more time-critical
// condition.
type AlertDetector struct {
	Thresholds AlertThresholds
}

func NewAlertDetector() *AlertDetector {
	return &AlertDetector{Thresholds: DefaultAlertThresholds()}
}

// Detect returns at most one alert per lot. dailyDemand is nil when the
// estimate was unavailable; rules that need demand are then skipped.
func (d *AlertDetector) Detect(lot ProductLot, risk RiskAssessment, dailyDemand *float64) (Alert, bool) {
	t := d.Thresholds

	// Rule 1: expires today or already expired.
	if risk.DaysToExpiry != nil && *risk.DaysToExpiry < 1 {
		return d.alert(lot, AlertExpiringToday), true
	}

	// Rule 2: overstocked with low demand.
	if dailyDemand != nil && lot.Stock > t.OverstockUnits && *dailyDemand < t.LowDemandUnits {
		return d.alert(lot, AlertOverstockedLowDemand), true
	}

	// Rule 3: demand surge on thin stock, with enough shelf life left for a
	// restock to matter.
	if dailyDemand != nil && *dailyDemand > t.SurgeDemandUnits && lot.Stock < t.LowStockUnits &&
		risk.DaysToExpiry != nil && *risk.DaysToExpiry > 1 {
		return d.alert(lot, AlertDemandSurgeLowStock), true
	}

	return Alert{}, false
}

func (d *AlertDetector) alert(lot ProductLot, reason AlertReason) Alert {
	return Alert{
		ProductID:     lot.ProductID,
		StoreLocation: lot.StoreLocation,
		Reason:        reason,
	}
}
