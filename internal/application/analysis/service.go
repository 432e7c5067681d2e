// Package analysis is the application layer around the analysis engine: it
// resolves document content, consults the result cache, records metrics, and
// publishes a completion event. The engine itself stays pure; everything
// stateful lives here.
package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	engine "github.com/procurelens/ProcureLens/internal/analysis"
	"github.com/procurelens/ProcureLens/internal/application/documents"
	rediscache "github.com/procurelens/ProcureLens/internal/infrastructure/database/redis"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/prometheus"
	"github.com/procurelens/ProcureLens/pkg/errors"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// EventTypeAnalysisCompleted names the event emitted after every analysis.
const EventTypeAnalysisCompleted = "contract.analysis.completed"

// ResultCache is the cache the service consults before running the engine.
// Implementations are best effort; Get returns nil on any miss or failure.
type ResultCache interface {
	Get(ctx context.Context, key string) *engine.Result
	Set(ctx context.Context, key string, res *engine.Result)
}

// EventPublisher emits analysis completion events.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// DocumentSource resolves stored documents for analysis by reference.
type DocumentSource interface {
	Get(ctx context.Context, id string) (*documents.Document, error)
}

// AnalyzeInput describes one analysis request. Exactly one of DocumentID and
// Content supplies the text: a non-empty DocumentID wins and fills in the
// document's type, name, and vendor wherever the caller left them blank.
type AnalyzeInput struct {
	DocumentID   string
	Content      string
	DocumentType risk.DocumentType
	ContractID   string
	ContractName string
	VendorID     string
}

// Service runs contract analyses.
type Service struct {
	engine  *engine.Engine
	docs    DocumentSource
	cache   ResultCache
	events  EventPublisher
	metrics *prometheus.Metrics
	logger  logging.Logger
	newID   func() string
}

// NewService wires the analysis application service. docs, cache, and events
// may be nil; the corresponding step is skipped.
func NewService(eng *engine.Engine, docs DocumentSource, cache ResultCache,
	events EventPublisher, metrics *prometheus.Metrics, log logging.Logger) *Service {
	return &Service{
		engine:  eng,
		docs:    docs,
		cache:   cache,
		events:  events,
		metrics: metrics,
		logger:  log,
		newID:   uuid.NewString,
	}
}

// Analyze resolves the input to document text, returns a cached result when
// one exists for identical content, and otherwise runs the engine, caches the
// result, and publishes a completion event. Cache and event failures never
// fail the analysis.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (*engine.Result, error) {
	if in.DocumentID != "" {
		if s.docs == nil {
			return nil, errors.New(errors.ErrCodeNotImplemented, "document storage is not configured")
		}
		doc, err := s.docs.Get(ctx, in.DocumentID)
		if err != nil {
			return nil, err
		}
		in.Content = doc.Text
		if in.DocumentType == "" {
			in.DocumentType = doc.Type
		}
		if in.ContractID == "" {
			in.ContractID = doc.ID
		}
		if in.ContractName == "" {
			in.ContractName = doc.Name
		}
		if in.VendorID == "" {
			in.VendorID = doc.VendorID
		}
	}

	if strings.TrimSpace(in.Content) == "" {
		return nil, errors.New(errors.ErrCodeDocumentEmpty, "no document content to analyze")
	}
	if !in.DocumentType.Valid() {
		return nil, errors.Newf(errors.ErrCodeDocumentTypeInvalid,
			"unsupported document type %q", in.DocumentType)
	}
	if in.ContractID == "" {
		in.ContractID = s.newID()
	}

	key := rediscache.Key(in.Content, in.DocumentType, in.VendorID)
	if s.cache != nil {
		if cached := s.cache.Get(ctx, key); cached != nil {
			s.metrics.CacheHits.Inc()
			res := *cached
			res.ContractID = in.ContractID
			res.ContractName = in.ContractName
			return &res, nil
		}
		s.metrics.CacheMisses.Inc()
	}

	start := time.Now()
	res := s.engine.AnalyzeContract(ctx, engine.Request{
		Content:      in.Content,
		DocumentType: in.DocumentType,
		ContractID:   in.ContractID,
		ContractName: in.ContractName,
		VendorID:     in.VendorID,
	})
	s.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	s.metrics.AnalysesTotal.WithLabelValues(string(res.AnalysisMethod)).Inc()
	if s.engine.AIEnabled() && res.AnalysisMethod == risk.MethodHeuristic {
		s.metrics.AnalysisFallbacks.Inc()
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, res)
	}
	s.publishCompletion(ctx, res)
	return res, nil
}

type completionEvent struct {
	EventType      string              `json:"event_type"`
	OccurredAt     time.Time           `json:"occurred_at"`
	ContractID     string              `json:"contract_id"`
	ContractName   string              `json:"contract_name,omitempty"`
	DocumentType   risk.DocumentType   `json:"document_type"`
	OverallScore   int                 `json:"overall_score"`
	OverallBand    risk.Band           `json:"overall_band"`
	AnalysisMethod risk.AnalysisMethod `json:"analysis_method"`
}

func (s *Service) publishCompletion(ctx context.Context, res *engine.Result) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(completionEvent{
		EventType:      EventTypeAnalysisCompleted,
		OccurredAt:     res.AnalyzedAt,
		ContractID:     res.ContractID,
		ContractName:   res.ContractName,
		DocumentType:   res.DocumentType,
		OverallScore:   res.OverallRisk.Score,
		OverallBand:    res.OverallRisk.Band,
		AnalysisMethod: res.AnalysisMethod,
	})
	if err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("completion event marshal failed", logging.Err(err))
		return
	}
	if err := s.events.Publish(ctx, res.ContractID, payload); err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("completion event publish failed",
			logging.String("contract_id", res.ContractID),
			logging.Err(err),
		)
		return
	}
	s.metrics.EventsPublished.WithLabelValues("ok").Inc()
}
