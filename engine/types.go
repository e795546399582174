/*
Package engine provides the inventory risk and redistribution advisory core.

PURPOSE:
  This package contains the decision logic applied to perishable product
  lots: expiry-risk classification, demand-aware transfer planning,
  multi-condition alert detection, and the per-lot recommendation pipeline
  that composes them.

KEY CONCEPTS IN THIS FILE (types.go):
  - ProductLot: One lot of a perishable product at a store
  - DemandRecord / DistanceEdge: The store network reference tables
  - Network: Indexed view over demand and distance data for planning
  - Recommendation / Alert: Per-lot outputs

DESIGN PRINCIPLES:
  1. Degradation over failure: malformed fields default to the unknown
     branch; a single bad record never aborts a batch
  2. Determinism: candidate iteration follows input order, sorts are stable
  3. Ownership: a lot and its derived fields belong to one request; the
     network tables are read-only for the duration of a request

SEE ALSO:
  - risk.go: Expiry classification
  - redistribution.go: Transfer destination search
  - alert.go: Alert rule set
  - recommend.go: Pipeline composition
*/
package engine

import "fmt"

// =============================================================================
// PRODUCT LOT - Input record for the advisory pipeline
// =============================================================================

// ProductLot is one perishable lot at a store. RawExpiryDate carries the
// boundary text form; parsing happens in the RiskClassifier so an
// unparsable date degrades the lot instead of rejecting it.
type ProductLot struct {
	ProductID      string
	Name           string
	Category       string
	Stock          int
	RawExpiryDate  string
	StoreLocation  string
	FreshnessScore float64

	// Optional estimator features. Nil means absent; the assembler applies
	// the documented defaults.
	PreviousSales *float64
	TemperatureC  *float64
}

// =============================================================================
// NETWORK REFERENCE DATA
// =============================================================================

// DemandRecord is one (store, product) demand observation. It serves both as
// estimator fallback input and as the planner's destination lookup table.
type DemandRecord struct {
	StoreLocation string
	ProductID     string
	DailyDemand   float64
}

// DistanceEdge is a directed edge in the store network. Distances may be
// asymmetric; both directions must be listed explicitly.
type DistanceEdge struct {
	FromStore  string
	ToStore    string
	DistanceKm float64
}

// Network indexes demand records for lookup while preserving the edge list
// in its given order. Candidate iteration order is part of the planner's
// tie-break contract, so edges are never re-sorted.
type Network struct {
	edges  []DistanceEdge
	demand map[demandKey]float64
}

type demandKey struct {
	StoreLocation string
	ProductID     string
}

func NewNetwork(demand []DemandRecord, edges []DistanceEdge) *Network {
	n := &Network{
		edges:  edges,
		demand: make(map[demandKey]float64, len(demand)),
	}
	for _, r := range demand {
		n.demand[demandKey{r.StoreLocation, r.ProductID}] = r.DailyDemand
	}
	return n
}

// DemandAt returns the recorded daily demand for (store, product).
func (n *Network) DemandAt(store, productID string) (float64, bool) {
	v, ok := n.demand[demandKey{store, productID}]
	return v, ok
}

// Edges returns the edge list in its original order.
func (n *Network) Edges() []DistanceEdge { return n.edges }

// =============================================================================
// EXPIRY STATUS
// =============================================================================

type ExpiryStatusKind string

const (
	ExpiryStatusInvalidDate ExpiryStatusKind = "invalid_date"
	ExpiryStatusExpired     ExpiryStatusKind = "already_expired"
	ExpiryStatusDaysLeft    ExpiryStatusKind = "days_left"
)

// ExpiryStatus describes how close a lot is to expiry. DaysLeft is only
// meaningful when Kind is ExpiryStatusDaysLeft.
type ExpiryStatus struct {
	Kind     ExpiryStatusKind
	DaysLeft int
}

func (s ExpiryStatus) String() string {
	switch s.Kind {
	case ExpiryStatusInvalidDate:
		return "Invalid Date"
	case ExpiryStatusExpired:
		return "Already Expired"
	default:
		return fmt.Sprintf("%d day(s) left", s.DaysLeft)
	}
}

// RiskAssessment holds the fields derived by the RiskClassifier.
// DaysToExpiry is nil when the expiry date is missing or unparsable.
type RiskAssessment struct {
	DaysToExpiry *int
	Status       ExpiryStatus
	AtRisk       bool
}

// =============================================================================
// RECOMMENDATION
// =============================================================================

type RecommendationAction string

const (
	ActionDonate             RecommendationAction = "donate"
	ActionKeepInStock        RecommendationAction = "keep_in_stock"
	ActionTransfer           RecommendationAction = "transfer"
	ActionDiscountOrTransfer RecommendationAction = "discount_or_transfer"
)

// Recommendation is the per-lot output. Exactly one is produced per input
// lot. Degraded marks lots whose demand estimate was unavailable; their
// recommendation falls back to expiry-only logic.
type Recommendation struct {
	ProductID     string
	Name          string
	Category      string
	StoreLocation string
	Stock         int

	DaysToExpiry *int
	ExpiryStatus ExpiryStatus
	ExpiryRisk   bool
	DailyDemand  *float64

	Action     RecommendationAction
	TransferTo string // set only when Action == ActionTransfer

	Degraded       bool
	DegradedReason string
}

// =============================================================================
// ALERT
// =============================================================================

type AlertReason string

const (
	AlertExpiringToday         AlertReason = "expiring_today"
	AlertOverstockedLowDemand  AlertReason = "overstocked_low_demand"
	AlertDemandSurgeLowStock   AlertReason = "demand_surge_low_stock"
)

// Alert flags a lot that matched one of the ordered alert conditions.
// At most one alert is emitted per lot.
type Alert struct {
	ProductID     string
	StoreLocation string
	Reason        AlertReason
}
