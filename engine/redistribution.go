package engine

// =============================================================================
// REDISTRIBUTION PLANNER - Closest eligible destination search
// =============================================================================

// RedistributionPlanner finds a better-placed destination store for a lot
// that is not expiry-risk, instead of defaulting to keep-in-stock.
type RedistributionPlanner struct {
	Network *Network
}

func NewRedistributionPlanner(network *Network) *RedistributionPlanner {
	return &RedistributionPlanner{Network: network}
}

// Plan returns the destination store for (origin, product), or ok=false
// when the lot should stay where it is.
//
// A destination is eligible iff a demand record exists for
// (destination, product) AND its daily demand strictly exceeds
// requiredDemand. Among eligible destinations the strictly closest wins;
// on equal distance the earlier edge in the input order is kept. The
// strict "<" on the incumbent comparison is what makes the tie-break
// deterministic - an equally-close later candidate never replaces the
// incumbent.
//
// A nil requiredDemand means the origin lot's own demand is unknown; no
// candidate can satisfy the constraint and the lot stays put.
func (p *RedistributionPlanner) Plan(origin, productID string, requiredDemand *float64) (string, bool) {
	if p.Network == nil || requiredDemand == nil {
		return "", false
	}

	var (
		best     string
		bestDist float64
		found    bool
	)

	for _, edge := range p.Network.Edges() {
		if edge.FromStore != origin {
			continue
		}
		demand, ok := p.Network.DemandAt(edge.ToStore, productID)
		if !ok || demand <= *requiredDemand {
			continue
		}
		if !found || edge.DistanceKm < bestDist {
			best = edge.ToStore
			bestDist = edge.DistanceKm
			found = true
		}
	}

	return best, found
}
