package lens

import (
	"math"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// Vendor lens scoring constants.
const (
	vendorCriticalMissingPenalty = 20
	vendorMissingClausePenalty   = 5
)

// Relationship status thresholds on the document score.
const (
	relationshipStrongMin     = 85
	relationshipGoodMin       = 70
	relationshipConcerningMin = 50
)

// RelationshipStatus rates vendor-protection completeness of the document.
type RelationshipStatus string

const (
	RelationshipStrong     RelationshipStatus = "strong"
	RelationshipGood       RelationshipStatus = "good"
	RelationshipConcerning RelationshipStatus = "concerning"
	RelationshipPoor       RelationshipStatus = "poor"
)

// vendorClause describes one of the eight vendor-protection clause signals.
type vendorClause struct {
	name     string
	signals  []string
	critical bool
}

// vendorClauses is the fixed protection-clause table. Performance metrics,
// SLA, and the termination clause are the critical subset.
var vendorClauses = []vendorClause{
	{name: "performance metrics", signals: []string{"performance metric", "kpi"}, critical: true},
	{name: "service level agreement", signals: []string{"sla", "service level"}, critical: true},
	{name: "quality standards", signals: []string{"quality standard", "quality assurance"}},
	{name: "delivery terms", signals: []string{"delivery terms", "delivery schedule"}},
	{name: "escalation path", signals: []string{"escalation"}},
	{name: "termination clause", signals: []string{"termination"}, critical: true},
	{name: "renewal terms", signals: []string{"renewal"}},
	{name: "compliance requirements", signals: []string{"compliance"}},
}

// HistoricalPerformance is the vendor track-record block. The live vendor
// performance database integration does not exist, so DataAvailable is always
// false and every metric is zero; Message states why. Fabricating performance
// numbers here would be worse than admitting the gap.
type HistoricalPerformance struct {
	DataAvailable      bool    `json:"data_available"`
	ContractsCompleted int     `json:"contracts_completed"`
	OnTimeDeliveryPct  float64 `json:"on_time_delivery_pct"`
	QualityScore       float64 `json:"quality_score"`
	Message            string  `json:"message"`
}

// SimilarContract would reference a comparable past engagement; the backing
// integration is absent, so lists of these are always empty.
type SimilarContract struct {
	ContractID string `json:"contract_id"`
	VendorID   string `json:"vendor_id"`
	Outcome    string `json:"outcome"`
}

// VendorResult is the vendor lens output.
type VendorResult struct {
	RiskLevel             risk.Level            `json:"risk_level"`
	DocumentScore         int                   `json:"document_score"`
	ClausesPresent        []string              `json:"clauses_present"`
	ClausesMissing        []string              `json:"clauses_missing"`
	RelationshipStatus    RelationshipStatus    `json:"relationship_status"`
	HistoricalPerformance HistoricalPerformance `json:"historical_performance"`
	SimilarContracts      []SimilarContract     `json:"similar_contracts"`
	Recommendations       []string              `json:"recommendations"`
}

// AnalyzeVendor assesses vendor-protection-clause completeness from the
// document text alone. Historical performance is returned as an explicitly
// flagged stub: without a vendor database integration there is no real data
// to report, and the result says so rather than simulating one.
func AnalyzeVendor(text string, docType risk.DocumentType, vendorID string) VendorResult {
	doc := newDocument(text)

	present := make([]string, 0, len(vendorClauses))
	missing := make([]string, 0, len(vendorClauses))
	criticalMissing := 0
	for _, c := range vendorClauses {
		if doc.containsAny(c.signals...) {
			present = append(present, c.name)
			continue
		}
		missing = append(missing, c.name)
		if c.critical {
			criticalMissing++
		}
	}

	docScore := int(math.Round(100 * float64(len(present)) / float64(len(vendorClauses))))

	status := RelationshipPoor
	switch {
	case docScore >= relationshipStrongMin:
		status = RelationshipStrong
	case docScore >= relationshipGoodMin:
		status = RelationshipGood
	case docScore >= relationshipConcerningMin:
		status = RelationshipConcerning
	}

	message := "vendor performance database integration is not available; assessment is document-based only"
	if vendorID == "" {
		message = "no vendor identifier supplied; historical performance lookup skipped"
	}

	var recs []string
	if criticalMissing > 0 {
		recs = append(recs, "Add measurable performance metrics, service levels, and termination rights before signature")
	}
	if len(missing) > criticalMissing {
		recs = append(recs, "Complete the remaining vendor protection clauses (delivery, escalation, renewal, compliance)")
	}
	// Historical data is unavailable in every branch today, so due diligence
	// falls to the reviewer.
	recs = append(recs, "Request vendor references and recent performance reports as part of due diligence")

	score := baseScore + vendorCriticalMissingPenalty*criticalMissing + vendorMissingClausePenalty*len(missing)

	return VendorResult{
		RiskLevel:          risk.LevelFromScore(score),
		DocumentScore:      docScore,
		ClausesPresent:     present,
		ClausesMissing:     missing,
		RelationshipStatus: status,
		HistoricalPerformance: HistoricalPerformance{
			DataAvailable: false,
			Message:       message,
		},
		SimilarContracts: []SimilarContract{},
		Recommendations:  capRecommendations(recs),
	}
}
