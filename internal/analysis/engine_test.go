package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// aiClientFunc adapts a function to the AIClient interface.
type aiClientFunc func(ctx context.Context, req Request) (*Result, error)

func (f aiClientFunc) Analyze(ctx context.Context, req Request) (*Result, error) {
	return f(ctx, req)
}

var testClock = func() time.Time {
	return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(ai AIClient, opts ...Option) *Engine {
	opts = append([]Option{WithClock(testClock)}, opts...)
	return NewEngine(ai, logging.NewNopLogger(), opts...)
}

func testRequest() Request {
	return Request{
		Content:      "insurance and termination clauses present",
		DocumentType: risk.DocTypeSOW,
		ContractID:   "c-1",
		ContractName: "Widget SOW",
	}
}

func TestAnalyzeContract_AISuccess(t *testing.T) {
	ai := aiClientFunc(func(ctx context.Context, req Request) (*Result, error) {
		return &Result{
			ContractID:   req.ContractID,
			ContractName: req.ContractName,
			DocumentType: req.DocumentType,
			OverallRisk:  risk.LevelFromScore(42),
		}, nil
	})

	res := newTestEngine(ai).AnalyzeContract(context.Background(), testRequest())

	assert.Equal(t, risk.MethodAI, res.AnalysisMethod)
	assert.Equal(t, 42, res.OverallRisk.Score)
	assert.Equal(t, testClock(), res.AnalyzedAt)
}

func TestAnalyzeContract_AIErrorFallsBack(t *testing.T) {
	ai := aiClientFunc(func(ctx context.Context, req Request) (*Result, error) {
		return nil, errors.New("connection refused")
	})

	res := newTestEngine(ai).AnalyzeContract(context.Background(), testRequest())

	assert.Equal(t, risk.MethodHeuristic, res.AnalysisMethod)
	assertCompleteShape(t, res)
}

func TestAnalyzeContract_AINilResultFallsBack(t *testing.T) {
	ai := aiClientFunc(func(ctx context.Context, req Request) (*Result, error) {
		return nil, nil
	})

	res := newTestEngine(ai).AnalyzeContract(context.Background(), testRequest())
	assert.Equal(t, risk.MethodHeuristic, res.AnalysisMethod)
}

func TestAnalyzeContract_AITimeoutFallsBack(t *testing.T) {
	ai := aiClientFunc(func(ctx context.Context, req Request) (*Result, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	engine := newTestEngine(ai, WithAITimeout(5*time.Millisecond))
	res := engine.AnalyzeContract(context.Background(), testRequest())

	assert.Equal(t, risk.MethodHeuristic, res.AnalysisMethod)
}

func TestAnalyzeContract_NoClientRunsHeuristic(t *testing.T) {
	res := newTestEngine(nil).AnalyzeContract(context.Background(), testRequest())

	assert.Equal(t, risk.MethodHeuristic, res.AnalysisMethod)
	assert.Equal(t, "c-1", res.ContractID)
	assert.Equal(t, "Widget SOW", res.ContractName)
	assert.Equal(t, risk.DocTypeSOW, res.DocumentType)
	assertCompleteShape(t, res)
}

func TestAnalyzeContract_HeuristicIdempotent(t *testing.T) {
	engine := newTestEngine(nil)
	req := testRequest()

	a := engine.AnalyzeContract(context.Background(), req)
	b := engine.AnalyzeContract(context.Background(), req)

	// The clock is pinned, so the results must match in every field.
	assert.Equal(t, a, b)
}

func TestAnalyzeContract_HealthyDocumentScenario(t *testing.T) {
	req := Request{
		Content: `Insurance coverage required. Either party may initiate
		termination. Fees are due net 30. Work runs 2024-01-01
		to 2024-06-01 with delivery milestones and acceptance testing.`,
		DocumentType: risk.DocTypeSOW,
		ContractID:   "c-2",
		ContractName: "Healthy SOW",
	}

	res := newTestEngine(nil).AnalyzeContract(context.Background(), req)

	assert.Equal(t, "feasible", string(res.Operational.Timeline.Feasibility))
	assert.Equal(t, 152, res.Operational.Timeline.DurationDays)
	assert.Equal(t, "clear", string(res.Financial.PaymentTerms.Clarity))
	assert.Equal(t, "standard", string(res.Financial.PaymentTerms.Favorability))
}

func TestAnalyzeContract_EmptyDocumentDegradesNotErrors(t *testing.T) {
	req := Request{DocumentType: risk.DocTypePO, ContractID: "c-3"}
	res := newTestEngine(nil).AnalyzeContract(context.Background(), req)

	// Empty input yields maximal findings, never a failure.
	assert.Equal(t, risk.BandCritical, res.Legal.RiskLevel.Band)
	assert.Equal(t, risk.BandCritical, res.OverallRisk.Band)

	// 0.25*100 + 0.20*40 + 0.20*70 + 0.15*100 + 0.20*100 = 82.
	assert.Equal(t, 82, res.OverallRisk.Score)

	require.Len(t, res.TopRecommendations, 5)
	for _, rec := range res.TopRecommendations {
		assert.Equal(t, risk.PriorityCritical, rec.Priority)
	}

	tags := actionTags(res.QuickActions)
	assert.Equal(t, []ActionTag{
		ActionAddMissingClauses,
		ActionEscalateLegalReview,
		ActionClarifyPaymentTerms,
	}, tags)
}

// assertCompleteShape checks the invariants every result must satisfy
// regardless of which path produced it.
func assertCompleteShape(t *testing.T, res *Result) {
	t.Helper()

	levels := []risk.Level{
		res.Legal.RiskLevel,
		res.Financial.RiskLevel,
		res.Operational.RiskLevel,
		res.Vendor.RiskLevel,
		res.Compliance.RiskLevel,
		res.OverallRisk,
	}
	for _, lvl := range levels {
		assert.GreaterOrEqual(t, lvl.Score, 0)
		assert.LessOrEqual(t, lvl.Score, 100)
		assert.Equal(t, risk.BandFromScore(lvl.Score), lvl.Band)
	}

	assert.LessOrEqual(t, len(res.TopRecommendations), 5)
	for i := 1; i < len(res.TopRecommendations); i++ {
		assert.LessOrEqual(t,
			res.TopRecommendations[i-1].Priority.Ordinal(),
			res.TopRecommendations[i].Priority.Ordinal())
	}
	assert.LessOrEqual(t, len(res.QuickActions), 4)

	assert.False(t, res.Vendor.HistoricalPerformance.DataAvailable)
	assert.False(t, res.AnalyzedAt.IsZero())
}
