/*
recommend.go - Per-lot recommendation pipeline

PURPOSE:
  Composes the classifier, estimator, planner, and detector into one pass
  over a batch of lots. Every input lot yields exactly one recommendation;
  alerts are a strict subset (zero or one per lot).

PIPELINE (per lot):
  1. RiskClassifier derives expiry fields
  2. DemandEstimator predicts daily demand (defaults applied for absent
     features; a failed call degrades the lot, not the batch)
  3. At-risk lots: Donate when forecast demand is below the donate ceiling,
     DiscountOrTransfer otherwise
  4. Safe lots: planner result (TransferTo or KeepInStock)
  5. AlertDetector appends at most one alert for the lot
*/
package engine

import (
	"context"
	"math"
)

// DefaultDonateDemandCeiling: an at-risk lot with forecast demand below
// this cannot sell through in time and is donated outright.
const DefaultDonateDemandCeiling = 20.0

const (
	defaultPreviousSalesRatio = 0.7
	defaultTemperatureC       = 25.0
)

// RecommendationAssembler runs the advisory pipeline over product lots.
type RecommendationAssembler struct {
	Classifier *RiskClassifier
	Estimator  DemandEstimator
	Planner    *RedistributionPlanner
	Detector   *AlertDetector

	// DonateDemandCeiling defaults to DefaultDonateDemandCeiling when zero.
	DonateDemandCeiling float64
}

func NewRecommendationAssembler(classifier *RiskClassifier, estimator DemandEstimator, planner *RedistributionPlanner, detector *AlertDetector) *RecommendationAssembler {
	return &RecommendationAssembler{
		Classifier:          classifier,
		Estimator:           estimator,
		Planner:             planner,
		Detector:            detector,
		DonateDemandCeiling: DefaultDonateDemandCeiling,
	}
}

// Assemble produces one recommendation per lot plus the alert list.
func (a *RecommendationAssembler) Assemble(ctx context.Context, lots []ProductLot) ([]Recommendation, []Alert) {
	recs := make([]Recommendation, 0, len(lots))
	var alerts []Alert

	for _, lot := range lots {
		rec, alert, matched := a.assembleLot(ctx, lot)
		recs = append(recs, rec)
		if matched {
			alerts = append(alerts, alert)
		}
	}

	return recs, alerts
}

func (a *RecommendationAssembler) assembleLot(ctx context.Context, lot ProductLot) (Recommendation, Alert, bool) {
	risk := a.Classifier.Classify(lot)

	rec := Recommendation{
		ProductID:     lot.ProductID,
		Name:          lot.Name,
		Category:      lot.Category,
		StoreLocation: lot.StoreLocation,
		Stock:         lot.Stock,
		DaysToExpiry:  risk.DaysToExpiry,
		ExpiryStatus:  risk.Status,
		ExpiryRisk:    risk.AtRisk,
	}

	demand, err := a.estimate(ctx, lot)
	if err != nil {
		rec.Degraded = true
		rec.DegradedReason = (&ScoringError{Subject: lot.ProductID, Err: err}).Error()
	} else {
		rec.DailyDemand = &demand
	}

	rec.Action, rec.TransferTo = a.decide(lot, risk, rec.DailyDemand)

	alert, matched := a.Detector.Detect(lot, risk, rec.DailyDemand)
	return rec, alert, matched
}

func (a *RecommendationAssembler) decide(lot ProductLot, risk RiskAssessment, demand *float64) (RecommendationAction, string) {
	if risk.AtRisk {
		// Without a demand estimate the conservative choice is to donate.
		if demand == nil || *demand < a.donateCeiling() {
			return ActionDonate, ""
		}
		return ActionDiscountOrTransfer, ""
	}

	if dest, ok := a.Planner.Plan(lot.StoreLocation, lot.ProductID, demand); ok {
		return ActionTransfer, dest
	}
	return ActionKeepInStock, ""
}

func (a *RecommendationAssembler) estimate(ctx context.Context, lot ProductLot) (float64, error) {
	in := DemandInputs{
		PreviousSales: math.Max(1, math.Round(defaultPreviousSalesRatio*float64(lot.Stock))),
		Stock:         float64(lot.Stock),
		TemperatureC:  defaultTemperatureC,
	}
	if lot.PreviousSales != nil {
		in.PreviousSales = *lot.PreviousSales
	}
	if lot.TemperatureC != nil {
		in.TemperatureC = *lot.TemperatureC
	}
	return a.Estimator.EstimateDemand(ctx, in)
}

func (a *RecommendationAssembler) donateCeiling() float64 {
	if a.DonateDemandCeiling > 0 {
		return a.DonateDemandCeiling
	}
	return DefaultDonateDemandCeiling
}
