package analysis

import (
	"math"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// Weights are the fixed per-lens contributions to the overall risk score.
// They sum to exactly 1.0 by construction; the table is exported so tests can
// assert on that invariant directly.
var Weights = map[Lens]float64{
	LensLegal:       0.25,
	LensFinancial:   0.20,
	LensOperational: 0.20,
	LensVendor:      0.15,
	LensCompliance:  0.20,
}

// overallLevel computes the weighted overall score from the five lens scores
// and classifies it through the same band thresholds every lens uses.
func overallLevel(r *Result) risk.Level {
	sum := Weights[LensLegal]*float64(r.Legal.RiskLevel.Score) +
		Weights[LensFinancial]*float64(r.Financial.RiskLevel.Score) +
		Weights[LensOperational]*float64(r.Operational.RiskLevel.Score) +
		Weights[LensVendor]*float64(r.Vendor.RiskLevel.Score) +
		Weights[LensCompliance]*float64(r.Compliance.RiskLevel.Score)
	return risk.LevelFromScore(int(math.Round(sum)))
}
