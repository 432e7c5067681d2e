package lens

import "github.com/procurelens/ProcureLens/pkg/types/risk"

// Legal lens scoring constants.
const (
	legalMissingClausePenalty = 10
	legalCriticalGapPenalty   = 15
)

// Estimated dollar-exposure buckets by liability exposure level.
const (
	ExposureBucketCritical = 500000
	ExposureBucketHigh     = 250000
	ExposureBucketMedium   = 50000
)

// legalClause describes one of the eight critical contract clauses the legal
// lens checks for, its detection signals, the severity of its absence, and the
// remediation line emitted when it is missing.
type legalClause struct {
	name           string
	signals        []string
	severity       risk.Severity
	recommendation string
}

// legalClauses is the fixed clause table, in emission order. Absence severity:
// critical for insurance / intellectual property / indemnification, high for
// termination / liability cap, medium for the rest.
var legalClauses = []legalClause{
	{
		name:           "insurance",
		signals:        []string{"insurance", "liability coverage"},
		severity:       risk.SeverityCritical,
		recommendation: "Add insurance requirements with minimum coverage amounts",
	},
	{
		name:           "termination",
		signals:        []string{"termination", "terminate"},
		severity:       risk.SeverityHigh,
		recommendation: "Define termination rights and notice periods for both parties",
	},
	{
		name:           "intellectual property",
		signals:        []string{"intellectual property", "ip assignment", "work product"},
		severity:       risk.SeverityCritical,
		recommendation: "Add an intellectual property assignment clause covering all deliverables",
	},
	{
		name:           "indemnification",
		signals:        []string{"indemnif"},
		severity:       risk.SeverityCritical,
		recommendation: "Add mutual indemnification obligations",
	},
	{
		name:           "liability cap",
		signals:        []string{"limitation of liability", "liability cap", "aggregate liability"},
		severity:       risk.SeverityHigh,
		recommendation: "Cap aggregate liability at a defined multiple of contract value",
	},
	{
		name:           "confidentiality",
		signals:        []string{"confidential", "non-disclosure"},
		severity:       risk.SeverityMedium,
		recommendation: "Add confidentiality obligations that survive termination",
	},
	{
		name:           "dispute resolution",
		signals:        []string{"dispute", "arbitration", "governing law"},
		severity:       risk.SeverityMedium,
		recommendation: "Specify the dispute resolution forum and governing law",
	},
	{
		name:           "force majeure",
		signals:        []string{"force majeure"},
		severity:       risk.SeverityMedium,
		recommendation: "Add a force majeure clause covering excusable delays",
	},
}

// escalateRecommendation is appended when any clause gap is critical.
const escalateRecommendation = "Escalate to legal review before signature"

// LiabilityExposure estimates the unprotected downside of the missing
// critical clauses.
type LiabilityExposure struct {
	Level        risk.Severity `json:"level"`
	EstimatedUSD int           `json:"estimated_usd"`
}

// LegalResult is the legal lens output.
type LegalResult struct {
	RiskLevel         risk.Level        `json:"risk_level"`
	ClausesPresent    []string          `json:"clauses_present"`
	ClausesMissing    []string          `json:"clauses_missing"`
	ComplianceGaps    []ClauseGap       `json:"compliance_gaps"`
	LiabilityExposure LiabilityExposure `json:"liability_exposure"`
	Recommendations   []string          `json:"recommendations"`
}

// AnalyzeLegal assesses presence of the eight critical contract clauses and
// scores the document's legal risk. It never fails: a document matching no
// clause signals yields eight gaps and a maximal score.
func AnalyzeLegal(text string, docType risk.DocumentType) LegalResult {
	doc := newDocument(text)

	present := make([]string, 0, len(legalClauses))
	missing := make([]string, 0, len(legalClauses))
	gaps := make([]ClauseGap, 0, len(legalClauses))
	recs := make([]string, 0, len(legalClauses)+1)

	criticalGaps := 0
	for _, c := range legalClauses {
		if doc.containsAny(c.signals...) {
			present = append(present, c.name)
			continue
		}
		missing = append(missing, c.name)
		gaps = append(gaps, ClauseGap{
			Clause:      c.name,
			Severity:    c.severity,
			Description: "no " + c.name + " clause detected",
		})
		recs = append(recs, c.recommendation)
		if c.severity == risk.SeverityCritical {
			criticalGaps++
		}
	}

	exposure := LiabilityExposure{Level: risk.SeverityMedium, EstimatedUSD: ExposureBucketMedium}
	switch {
	case criticalGaps >= 2:
		exposure = LiabilityExposure{Level: risk.SeverityCritical, EstimatedUSD: ExposureBucketCritical}
	case criticalGaps == 1:
		exposure = LiabilityExposure{Level: risk.SeverityHigh, EstimatedUSD: ExposureBucketHigh}
	}

	if criticalGaps > 0 {
		recs = append(recs, escalateRecommendation)
	}

	score := baseScore + legalMissingClausePenalty*len(missing) + legalCriticalGapPenalty*criticalGaps

	return LegalResult{
		RiskLevel:         risk.LevelFromScore(score),
		ClausesPresent:    present,
		ClausesMissing:    missing,
		ComplianceGaps:    gaps,
		LiabilityExposure: exposure,
		Recommendations:   capRecommendations(recs),
	}
}
