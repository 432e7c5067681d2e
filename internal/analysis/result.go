// Package analysis implements the multi-lens contract risk engine: five
// stakeholder-perspective analyzers run over the same document text, their
// scores are combined through fixed weights, and the findings are synthesized
// into a ranked recommendation list and a short set of quick actions.
//
// The engine prefers an external AI analysis service when one is configured
// and falls back to the deterministic heuristic pipeline on any failure. It
// never returns an error to the caller; a degraded AI service must not block
// contract review.
package analysis

import (
	"time"

	"github.com/procurelens/ProcureLens/internal/analysis/lens"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// Lens identifies one of the five analyzer perspectives.
type Lens string

const (
	LensLegal       Lens = "legal"
	LensFinancial   Lens = "financial"
	LensOperational Lens = "operational"
	LensVendor      Lens = "vendor"
	LensCompliance  Lens = "compliance"
)

// Request carries everything the engine needs for one analysis. VendorID is
// optional; without it the vendor lens notes that the historical lookup was
// skipped.
type Request struct {
	Content      string            `json:"content"`
	DocumentType risk.DocumentType `json:"document_type"`
	ContractID   string            `json:"contract_id"`
	ContractName string            `json:"contract_name"`
	VendorID     string            `json:"vendor_id,omitempty"`
}

// Recommendation is one cross-lens top recommendation, tagged with the lens
// it came from and the priority derived from that lens's risk band.
type Recommendation struct {
	Lens     Lens          `json:"lens"`
	Priority risk.Priority `json:"priority"`
	Text     string        `json:"text"`
}

// ActionTag names a quick action.
type ActionTag string

const (
	ActionAddMissingClauses   ActionTag = "add_missing_clauses"
	ActionEscalateLegalReview ActionTag = "escalate_legal_review"
	ActionClarifyPaymentTerms ActionTag = "request_payment_clarification"
	ActionApproveLowRisk      ActionTag = "approve_low_risk"
)

// QuickAction is a discrete suggested next step, distinct from the ranked
// recommendations, with the lenses whose findings triggered it.
type QuickAction struct {
	Action ActionTag `json:"action"`
	Label  string    `json:"label"`
	Lenses []Lens    `json:"lenses"`
}

// Result is the aggregate analysis root. It is created fresh per request and
// never mutated afterwards; ownership passes entirely to the caller.
type Result struct {
	ContractID     string              `json:"contract_id"`
	ContractName   string              `json:"contract_name"`
	DocumentType   risk.DocumentType   `json:"document_type"`
	AnalyzedAt     time.Time           `json:"analyzed_at"`
	AnalysisMethod risk.AnalysisMethod `json:"analysis_method"`

	Legal       lens.LegalResult       `json:"legal"`
	Financial   lens.FinancialResult   `json:"financial"`
	Operational lens.OperationalResult `json:"operational"`
	Vendor      lens.VendorResult      `json:"vendor"`
	Compliance  lens.ComplianceResult  `json:"compliance"`

	OverallRisk        risk.Level       `json:"overall_risk"`
	TopRecommendations []Recommendation `json:"top_recommendations"`
	QuickActions       []QuickAction    `json:"quick_actions"`
}
