package lens

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// Financial lens scoring constants.
const (
	financialClarityMissingPenalty = 20
	financialClarityUnclearPenalty = 10
	financialUnfavorablePenalty    = 15
	financialOutlierPenalty        = 10
	financialOverrunHighPenalty    = 20
	financialOverrunMediumPenalty  = 10
)

// Amount thresholds and defaults, in contract currency units.
const (
	DefaultContractAmount  = 50000
	OutlierThreshold       = 100000
	OutlierBenchmark       = 75000
	OutlierSevereThreshold = 200000
	OverrunHighThreshold   = 150000
	OverrunMediumThreshold = 75000
)

// PaymentClarity rates how explicitly payment terms are stated.
type PaymentClarity string

const (
	ClarityMissing PaymentClarity = "missing"
	ClarityUnclear PaymentClarity = "unclear"
	ClarityClear   PaymentClarity = "clear"
)

// PaymentFavorability rates the payment terms from the buyer's side.
type PaymentFavorability string

const (
	FavorabilityFavorable   PaymentFavorability = "favorable"
	FavorabilityStandard    PaymentFavorability = "standard"
	FavorabilityUnfavorable PaymentFavorability = "unfavorable"
)

// OverrunRisk rates budget overrun exposure.
type OverrunRisk string

const (
	OverrunHigh   OverrunRisk = "high"
	OverrunMedium OverrunRisk = "medium"
	OverrunLow    OverrunRisk = "low"
)

// CostOutlier flags a contract amount well above the category benchmark.
type CostOutlier struct {
	Amount    float64       `json:"amount"`
	Benchmark float64       `json:"benchmark"`
	Severity  risk.Severity `json:"severity"`
}

// PaymentTerms summarizes the payment-term assessment.
type PaymentTerms struct {
	Clarity      PaymentClarity      `json:"clarity"`
	Favorability PaymentFavorability `json:"favorability"`
}

// BudgetImpact summarizes overrun exposure for the buyer's budget.
type BudgetImpact struct {
	TotalAmount float64     `json:"total_amount"`
	OverrunRisk OverrunRisk `json:"overrun_risk"`
}

// FinancialResult is the financial lens output.
type FinancialResult struct {
	RiskLevel       risk.Level    `json:"risk_level"`
	PaymentTerms    PaymentTerms  `json:"payment_terms"`
	CostOutliers    []CostOutlier `json:"cost_outliers"`
	BudgetImpact    BudgetImpact  `json:"budget_impact"`
	Recommendations []string      `json:"recommendations"`
}

// amountPattern matches $-prefixed amounts and bare comma-grouped numbers,
// e.g. "$125,000.00" or "125,000".
var amountPattern = regexp.MustCompile(`\$\s?[0-9][0-9,]*(?:\.[0-9]+)?|\b[0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]+)?\b`)

// extractAmounts returns every monetary amount detected in the text.
func extractAmounts(text string) []float64 {
	matches := amountPattern.FindAllString(text, -1)
	amounts := make([]float64, 0, len(matches))
	for _, m := range matches {
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(m)
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, v)
	}
	return amounts
}

// AnalyzeFinancial assesses payment-term clarity and favorability and flags
// cost outliers against the fixed category benchmark.
func AnalyzeFinancial(text string, docType risk.DocumentType) FinancialResult {
	doc := newDocument(text)

	paymentSignal := doc.containsAny("payment", "invoice")
	net30 := doc.containsAny("net 30", "net-30", "net thirty")
	advance := doc.containsAny("advance payment", "upfront payment", "payment in advance")

	// Net-30 alone is a fully explicit term; the generic payment signal only
	// matters when nothing more specific is present.
	clarity := ClarityMissing
	switch {
	case net30:
		clarity = ClarityClear
	case paymentSignal:
		clarity = ClarityUnclear
	}

	favorability := FavorabilityFavorable
	switch {
	case advance:
		favorability = FavorabilityUnfavorable
	case net30:
		favorability = FavorabilityStandard
	}

	// The largest detected amount is treated as the nominal contract total;
	// the default applies only when no amount is detected at all.
	amounts := extractAmounts(text)
	var total float64
	for _, amt := range amounts {
		if amt > total {
			total = amt
		}
	}
	if len(amounts) == 0 {
		total = DefaultContractAmount
	}

	var outliers []CostOutlier
	if total > OutlierThreshold {
		sev := risk.SeverityMedium
		if total > OutlierSevereThreshold {
			sev = risk.SeverityHigh
		}
		outliers = append(outliers, CostOutlier{Amount: total, Benchmark: OutlierBenchmark, Severity: sev})
	}

	overrun := OverrunLow
	switch {
	case total > OverrunHighThreshold:
		overrun = OverrunHigh
	case total > OverrunMediumThreshold:
		overrun = OverrunMedium
	}

	score := baseScore
	var recs []string
	switch clarity {
	case ClarityMissing:
		score += financialClarityMissingPenalty
		recs = append(recs, "Add explicit payment terms with invoicing schedule and due dates")
	case ClarityUnclear:
		score += financialClarityUnclearPenalty
		recs = append(recs, "Specify standard Net-30 payment terms")
	}
	if favorability == FavorabilityUnfavorable {
		score += financialUnfavorablePenalty
		recs = append(recs, "Renegotiate advance payment requirements to milestone-based payments")
	}
	score += financialOutlierPenalty * len(outliers)
	if len(outliers) > 0 {
		recs = append(recs, "Obtain competitive quotes to validate the contract amount against benchmarks")
	}
	switch overrun {
	case OverrunHigh:
		score += financialOverrunHighPenalty
		recs = append(recs, "Add not-to-exceed language and change-order controls")
	case OverrunMedium:
		score += financialOverrunMediumPenalty
	}

	return FinancialResult{
		RiskLevel:       risk.LevelFromScore(score),
		PaymentTerms:    PaymentTerms{Clarity: clarity, Favorability: favorability},
		CostOutliers:    outliers,
		BudgetImpact:    BudgetImpact{TotalAmount: total, OverrunRisk: overrun},
		Recommendations: capRecommendations(recs),
	}
}
