package analysis

import (
	"sort"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// maxTopRecommendations caps the synthesized cross-lens list.
const maxTopRecommendations = 5

// Per-lens contribution limits into the top list. The vendor lens contributes
// none: its recommendations are standing due-diligence advice rather than
// document-specific findings, and promoting them would crowd out actionable
// items.
const (
	legalRecLimit       = 2
	financialRecLimit   = 2
	complianceRecLimit  = 2
	operationalRecLimit = 1
)

// synthesizeRecommendations promotes recommendations from lenses whose band
// is CRITICAL or HIGH into a single ranked list. Each entry carries its
// source lens and a priority equal to that lens's band; the list is sorted by
// priority ordinal (stable, so within a priority the lens emission order
// holds) and truncated to five.
func synthesizeRecommendations(r *Result) []Recommendation {
	var out []Recommendation

	promote := func(l Lens, lvl risk.Level, recs []string, limit int) {
		if lvl.Band != risk.BandCritical && lvl.Band != risk.BandHigh {
			return
		}
		p := risk.PriorityFromBand(lvl.Band)
		for i, text := range recs {
			if i == limit {
				break
			}
			out = append(out, Recommendation{Lens: l, Priority: p, Text: text})
		}
	}

	promote(LensLegal, r.Legal.RiskLevel, r.Legal.Recommendations, legalRecLimit)
	promote(LensFinancial, r.Financial.RiskLevel, r.Financial.Recommendations, financialRecLimit)
	promote(LensCompliance, r.Compliance.RiskLevel, r.Compliance.Recommendations, complianceRecLimit)
	// Operational findings are promoted only at CRITICAL; tight-but-workable
	// schedules stay in the lens result.
	if r.Operational.RiskLevel.Band == risk.BandCritical {
		promote(LensOperational, r.Operational.RiskLevel, r.Operational.Recommendations, operationalRecLimit)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Ordinal() < out[j].Priority.Ordinal()
	})
	if len(out) > maxTopRecommendations {
		out = out[:maxTopRecommendations]
	}
	return out
}
