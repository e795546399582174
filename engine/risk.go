package engine

// =============================================================================
// RISK CLASSIFIER - Expiry status and binary risk flag
// =============================================================================

const (
	// A lot is at risk only when it expires within this many days AND its
	// freshness has dropped below the floor. Both must hold.
	riskExpiryWindowDays = 2
	riskFreshnessFloor   = 0.7
)

// RiskClassifier derives expiry fields from a lot's raw expiry date and
// freshness score against a fixed reference day. The reference day is
// injected so classification is reproducible in tests and batch replays.
type RiskClassifier struct {
	Layout string // date layout for RawExpiryDate; empty means DefaultDateLayout
	Today  Date
}

func NewRiskClassifier(layout string, today Date) *RiskClassifier {
	if today.IsZero() {
		today = Today()
	}
	return &RiskClassifier{Layout: layout, Today: today}
}

// Classify never fails: an unparsable or missing expiry date yields
// ExpiryStatusInvalidDate with a nil DaysToExpiry and AtRisk=false.
func (c *RiskClassifier) Classify(lot ProductLot) RiskAssessment {
	expiry, err := ParseDate(c.Layout, lot.RawExpiryDate)
	if err != nil {
		return RiskAssessment{
			Status: ExpiryStatus{Kind: ExpiryStatusInvalidDate},
		}
	}

	days := DaysBetween(c.Today, expiry)
	status := ExpiryStatus{Kind: ExpiryStatusDaysLeft, DaysLeft: days}
	if days < 0 {
		status = ExpiryStatus{Kind: ExpiryStatusExpired}
	}

	return RiskAssessment{
		DaysToExpiry: &days,
		Status:       status,
		AtRisk:       days <= riskExpiryWindowDays && lot.FreshnessScore < riskFreshnessFloor,
	}
}
