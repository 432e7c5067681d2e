package lens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

func TestAnalyzeVendor_AllClausesPresent(t *testing.T) {
	text := `Performance metrics and KPIs defined. SLA with service level targets.
	Quality assurance procedures. Delivery schedule attached. Escalation path
	documented. Termination for convenience. Renewal terms annual.
	Compliance requirements apply.`

	res := AnalyzeVendor(text, risk.DocTypeAgreement, "v-100")

	assert.Len(t, res.ClausesPresent, 8)
	assert.Empty(t, res.ClausesMissing)
	assert.Equal(t, 100, res.DocumentScore)
	assert.Equal(t, RelationshipStrong, res.RelationshipStatus)
	assert.Equal(t, baseScore, res.RiskLevel.Score)
}

func TestAnalyzeVendor_EmptyDocument(t *testing.T) {
	res := AnalyzeVendor("", risk.DocTypeSOW, "")

	assert.Len(t, res.ClausesMissing, 8)
	assert.Zero(t, res.DocumentScore)
	assert.Equal(t, RelationshipPoor, res.RelationshipStatus)

	// 20 + 20*3 (critical missing) + 5*8 (all missing) = 120, clamped.
	assert.Equal(t, 100, res.RiskLevel.Score)
	assert.Equal(t, risk.BandCritical, res.RiskLevel.Band)
}

func TestAnalyzeVendor_HistoricalDataAlwaysStubbed(t *testing.T) {
	withID := AnalyzeVendor("sla termination performance metric", risk.DocTypeSOW, "v-1")
	withoutID := AnalyzeVendor("sla termination performance metric", risk.DocTypeSOW, "")

	for _, res := range []VendorResult{withID, withoutID} {
		assert.False(t, res.HistoricalPerformance.DataAvailable)
		assert.Zero(t, res.HistoricalPerformance.ContractsCompleted)
		assert.Zero(t, res.HistoricalPerformance.OnTimeDeliveryPct)
		assert.Zero(t, res.HistoricalPerformance.QualityScore)
		assert.NotEmpty(t, res.HistoricalPerformance.Message)
		assert.Empty(t, res.SimilarContracts)
	}

	// The message explains which precondition failed.
	assert.Contains(t, withoutID.HistoricalPerformance.Message, "no vendor identifier")
	assert.Contains(t, withID.HistoricalPerformance.Message, "not available")
}

func TestAnalyzeVendor_DocumentScoreRounding(t *testing.T) {
	// Three of eight present: round(100*3/8) = round(37.5) = 38.
	res := AnalyzeVendor("sla, termination, renewal", risk.DocTypeSOW, "")
	require.Len(t, res.ClausesPresent, 3)
	assert.Equal(t, 38, res.DocumentScore)
}

func TestAnalyzeVendor_CriticalMissingScoring(t *testing.T) {
	// Present: quality, delivery, escalation, renewal, compliance (5).
	// Missing: performance metrics, SLA, termination (all critical).
	text := "quality assurance delivery schedule escalation renewal compliance"
	res := AnalyzeVendor(text, risk.DocTypeSOW, "v-2")

	require.Len(t, res.ClausesMissing, 3)
	// 20 + 20*3 + 5*3 = 95.
	assert.Equal(t, 95, res.RiskLevel.Score)
	assert.Equal(t, risk.BandCritical, res.RiskLevel.Band)
}

func TestAnalyzeVendor_RecommendationsFocusOnDocument(t *testing.T) {
	res := AnalyzeVendor("", risk.DocTypeSOW, "")

	assert.NotEmpty(t, res.Recommendations)
	assert.LessOrEqual(t, len(res.Recommendations), 5)
	// Due diligence is always requested while the integration is absent.
	assert.Contains(t, res.Recommendations,
		"Request vendor references and recent performance reports as part of due diligence")
}

func TestAnalyzeVendor_RelationshipThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  RelationshipStatus
	}{
		{85, RelationshipStrong},
		{75, RelationshipGood},
		{50, RelationshipConcerning},
		{38, RelationshipPoor},
	}
	// Drive the status through crafted texts with known present counts:
	// 7/8=88 strong, 6/8=75 good, 4/8=50 concerning, 3/8=38 poor.
	texts := map[int]string{
		85: "performance metric sla quality assurance delivery schedule escalation termination renewal",
		75: "performance metric sla quality assurance delivery schedule escalation termination",
		50: "performance metric sla quality assurance delivery schedule",
		38: "performance metric sla quality assurance",
	}
	for _, tc := range cases {
		res := AnalyzeVendor(texts[tc.score], risk.DocTypeSOW, "")
		assert.Equal(t, tc.want, res.RelationshipStatus, "score bucket %d", tc.score)
	}
}
