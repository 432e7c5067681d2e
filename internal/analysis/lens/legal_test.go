package lens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

func TestAnalyzeLegal_NoClausesAtAll(t *testing.T) {
	res := AnalyzeLegal("lorem ipsum dolor sit amet", risk.DocTypeSOW)

	assert.Len(t, res.ClausesMissing, 8)
	assert.Empty(t, res.ClausesPresent)
	assert.Len(t, res.ComplianceGaps, 8)

	// 20 + 10*8 + 15*3 = 145, clamped.
	assert.Equal(t, 100, res.RiskLevel.Score)
	assert.Equal(t, risk.BandCritical, res.RiskLevel.Band)

	assert.Equal(t, risk.SeverityCritical, res.LiabilityExposure.Level)
	assert.Equal(t, ExposureBucketCritical, res.LiabilityExposure.EstimatedUSD)
}

func TestAnalyzeLegal_CompleteContract(t *testing.T) {
	text := `The vendor shall maintain insurance coverage. Either party may
	terminate upon notice. All intellectual property vests in the client.
	Vendor shall indemnify client. Limitation of liability applies.
	All confidential information is protected. Disputes go to arbitration.
	Force majeure events excuse performance.`

	res := AnalyzeLegal(text, risk.DocTypeAgreement)

	assert.Len(t, res.ClausesPresent, 8)
	assert.Empty(t, res.ClausesMissing)
	assert.Empty(t, res.ComplianceGaps)
	assert.Equal(t, baseScore, res.RiskLevel.Score)
	assert.Equal(t, risk.BandLow, res.RiskLevel.Band)
	assert.Equal(t, risk.SeverityMedium, res.LiabilityExposure.Level)
	assert.Equal(t, ExposureBucketMedium, res.LiabilityExposure.EstimatedUSD)
	assert.Empty(t, res.Recommendations)
}

func TestAnalyzeLegal_SingleCriticalMissing(t *testing.T) {
	// Everything present except indemnification.
	text := `insurance termination intellectual property limitation of liability
	confidential dispute force majeure`

	res := AnalyzeLegal(text, risk.DocTypeSOW)

	require.Equal(t, []string{"indemnification"}, res.ClausesMissing)
	assert.Equal(t, risk.SeverityHigh, res.LiabilityExposure.Level)
	assert.Equal(t, ExposureBucketHigh, res.LiabilityExposure.EstimatedUSD)

	// 20 + 10*1 + 15*1 = 45.
	assert.Equal(t, 45, res.RiskLevel.Score)
	assert.Equal(t, risk.BandMedium, res.RiskLevel.Band)

	// Escalation line is present because the gap is critical.
	assert.Contains(t, res.Recommendations, escalateRecommendation)
}

func TestAnalyzeLegal_RecommendationsCappedAtFive(t *testing.T) {
	res := AnalyzeLegal("", risk.DocTypeSOW)
	assert.LessOrEqual(t, len(res.Recommendations), 5)
}

func TestAnalyzeLegal_CaseInsensitive(t *testing.T) {
	res := AnalyzeLegal("INSURANCE and TERMINATION and FORCE MAJEURE", risk.DocTypePO)
	assert.Contains(t, res.ClausesPresent, "insurance")
	assert.Contains(t, res.ClausesPresent, "termination")
	assert.Contains(t, res.ClausesPresent, "force majeure")
}

func TestAnalyzeLegal_Deterministic(t *testing.T) {
	text := "insurance only"
	a := AnalyzeLegal(text, risk.DocTypeSOW)
	b := AnalyzeLegal(text, risk.DocTypeSOW)
	assert.Equal(t, a, b)
}
