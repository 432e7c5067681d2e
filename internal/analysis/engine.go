package analysis

import (
	"context"
	"time"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// DefaultAITimeout bounds the single network call the engine can make.
const DefaultAITimeout = 30 * time.Second

// AIClient is the external analysis service boundary. Implementations must
// decode the remote response into a fully typed Result; a response that does
// not decode is an error, exactly like a transport failure.
type AIClient interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// Engine orchestrates the AI-backed path and the heuristic fallback.
type Engine struct {
	ai      AIClient
	logger  logging.Logger
	timeout time.Duration
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithAITimeout overrides the AI call timeout.
func WithAITimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithClock overrides the timestamp source. Tests use it to pin AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine builds an engine. A nil ai client disables the AI path entirely;
// every analysis then runs the heuristic pipeline.
func NewEngine(ai AIClient, logger logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		ai:      ai,
		logger:  logger,
		timeout: DefaultAITimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AIEnabled reports whether an AI client is configured. Callers use it to
// distinguish a fallback from a heuristic-only deployment.
func (e *Engine) AIEnabled() bool {
	return e.ai != nil
}

// AnalyzeContract runs one analysis. It never returns an error: the AI path
// is attempted first when configured, and any failure there (transport error,
// non-success status, undecodable body, timeout, cancellation) is logged and
// recovered by the heuristic pipeline. AnalysisMethod records which path
// produced the result; a fallback result never claims "ai".
func (e *Engine) AnalyzeContract(ctx context.Context, req Request) *Result {
	if e.ai != nil {
		aiCtx, cancel := context.WithTimeout(ctx, e.timeout)
		res, err := e.ai.Analyze(aiCtx, req)
		cancel()
		if err == nil && res != nil {
			res.AnalysisMethod = risk.MethodAI
			if res.AnalyzedAt.IsZero() {
				res.AnalyzedAt = e.now()
			}
			return res
		}
		e.logger.Warn("ai analysis unavailable, falling back to heuristic pipeline",
			logging.String("contract_id", req.ContractID),
			logging.Err(err),
		)
	}

	res := runHeuristic(req)
	res.AnalyzedAt = e.now()
	res.AnalysisMethod = risk.MethodHeuristic
	return res
}
