package analysis

import (
	"github.com/procurelens/ProcureLens/internal/analysis/lens"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// generateQuickActions derives the short next-step action list from specific
// lens conditions. The four triggers are independent, so several actions can
// appear together; escalate and approve are disjoint because a CRITICAL legal
// or compliance band rules out all three bands being LOW. At most four
// actions can ever be emitted.
func generateQuickActions(r *Result) []QuickAction {
	var actions []QuickAction

	if len(r.Legal.ClausesMissing) > 0 {
		actions = append(actions, QuickAction{
			Action: ActionAddMissingClauses,
			Label:  "Add missing legal clauses",
			Lenses: []Lens{LensLegal, LensCompliance},
		})
	}
	if r.Legal.RiskLevel.Band == risk.BandCritical || r.Compliance.RiskLevel.Band == risk.BandCritical {
		actions = append(actions, QuickAction{
			Action: ActionEscalateLegalReview,
			Label:  "Escalate to legal review",
			Lenses: []Lens{LensLegal, LensCompliance},
		})
	}
	if r.Financial.PaymentTerms.Clarity == lens.ClarityMissing {
		actions = append(actions, QuickAction{
			Action: ActionClarifyPaymentTerms,
			Label:  "Request payment terms clarification",
			Lenses: []Lens{LensFinancial},
		})
	}
	if r.Legal.RiskLevel.Band == risk.BandLow &&
		r.Financial.RiskLevel.Band == risk.BandLow &&
		r.Compliance.RiskLevel.Band == risk.BandLow {
		actions = append(actions, QuickAction{
			Action: ActionApproveLowRisk,
			Label:  "Approve, low risk",
			Lenses: []Lens{LensLegal, LensFinancial, LensCompliance},
		})
	}
	return actions
}
