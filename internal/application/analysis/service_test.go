package analysis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/procurelens/ProcureLens/internal/analysis"
	"github.com/procurelens/ProcureLens/internal/application/documents"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/prometheus"
	"github.com/procurelens/ProcureLens/pkg/errors"
	"github.com/procurelens/ProcureLens/pkg/types/risk"

	promclient "github.com/prometheus/client_golang/prometheus"
)

type fakeCache struct {
	entries map[string]*engine.Result
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*engine.Result{}}
}

func (f *fakeCache) Get(_ context.Context, key string) *engine.Result {
	return f.entries[key]
}

func (f *fakeCache) Set(_ context.Context, key string, res *engine.Result) {
	f.entries[key] = res
	f.sets++
}

type fakePublisher struct {
	keys   []string
	values [][]byte
	pubErr error
}

func (f *fakePublisher) Publish(_ context.Context, key string, value []byte) error {
	if f.pubErr != nil {
		return f.pubErr
	}
	f.keys = append(f.keys, key)
	f.values = append(f.values, value)
	return nil
}

type fakeDocs struct {
	byID map[string]*documents.Document
}

func (f *fakeDocs) Get(_ context.Context, id string) (*documents.Document, error) {
	doc, ok := f.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "document not found")
	}
	return doc, nil
}

type failingAI struct{}

func (failingAI) Analyze(context.Context, engine.Request) (*engine.Result, error) {
	return nil, errors.New(errors.ErrCodeAIServiceUnavailable, "down")
}

type serviceFixture struct {
	svc     *Service
	cache   *fakeCache
	events  *fakePublisher
	metrics *prometheus.Metrics
}

func newFixture(ai engine.AIClient, docs DocumentSource) *serviceFixture {
	log := logging.NewNopLogger()
	f := &serviceFixture{
		cache:   newFakeCache(),
		events:  &fakePublisher{},
		metrics: prometheus.NewMetrics(promclient.NewRegistry()),
	}
	f.svc = NewService(engine.NewEngine(ai, log), docs, f.cache, f.events, f.metrics, log)
	f.svc.newID = func() string { return "gen-1" }
	return f
}

const sampleContent = "Payment terms: net 30 from invoice. Liability cap applies. " +
	"Termination for convenience. Confidentiality and indemnification included. " +
	"Warranty and data protection per GDPR and SOX. Right to audit. " +
	"Insurance coverage required. ISO 9001, SOC 2."

func TestService_AnalyzeInline(t *testing.T) {
	f := newFixture(nil, nil)

	res, err := f.svc.Analyze(context.Background(), AnalyzeInput{
		Content:      sampleContent,
		DocumentType: risk.DocTypeSOW,
		ContractName: "Widget SOW",
	})
	require.NoError(t, err)

	assert.Equal(t, "gen-1", res.ContractID)
	assert.Equal(t, risk.MethodHeuristic, res.AnalysisMethod)
	assert.Equal(t, 1, f.cache.sets)

	require.Len(t, f.events.keys, 1)
	assert.Equal(t, "gen-1", f.events.keys[0])
	var ev completionEvent
	require.NoError(t, json.Unmarshal(f.events.values[0], &ev))
	assert.Equal(t, EventTypeAnalysisCompleted, ev.EventType)
	assert.Equal(t, "Widget SOW", ev.ContractName)
	assert.Equal(t, risk.DocTypeSOW, ev.DocumentType)
	assert.Equal(t, res.OverallRisk.Band, ev.OverallBand)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AnalysesTotal.WithLabelValues("heuristic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EventsPublished.WithLabelValues("ok")))
}

func TestService_AnalyzeCacheHit(t *testing.T) {
	f := newFixture(nil, nil)
	in := AnalyzeInput{Content: sampleContent, DocumentType: risk.DocTypeSOW, ContractID: "c-1"}

	first, err := f.svc.Analyze(context.Background(), in)
	require.NoError(t, err)

	in.ContractID = "c-2"
	second, err := f.svc.Analyze(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "c-2", second.ContractID)
	assert.Equal(t, first.OverallRisk, second.OverallRisk)
	assert.Equal(t, first.AnalyzedAt, second.AnalyzedAt)
	assert.Equal(t, 1, f.cache.sets)
	assert.Len(t, f.events.keys, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheMisses))
}

func TestService_VendorIDPartitionsCache(t *testing.T) {
	f := newFixture(nil, nil)
	in := AnalyzeInput{Content: sampleContent, DocumentType: risk.DocTypeSOW, ContractID: "c-1"}

	_, err := f.svc.Analyze(context.Background(), in)
	require.NoError(t, err)

	// Same text with a vendor id must not reuse the vendor-less result: the
	// vendor lens reports whether an id was supplied.
	in.VendorID = "v-9"
	_, err = f.svc.Analyze(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 2, f.cache.sets)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.CacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.CacheMisses))
}

func TestService_AnalyzeStoredDocument(t *testing.T) {
	docs := &fakeDocs{byID: map[string]*documents.Document{
		"doc-7": {
			ID:       "doc-7",
			Name:     "msa.txt",
			Type:     risk.DocTypeAgreement,
			VendorID: "v-3",
			Text:     sampleContent,
		},
	}}
	f := newFixture(nil, docs)

	res, err := f.svc.Analyze(context.Background(), AnalyzeInput{DocumentID: "doc-7"})
	require.NoError(t, err)

	assert.Equal(t, "doc-7", res.ContractID)
	assert.Equal(t, "msa.txt", res.ContractName)
	assert.Equal(t, risk.DocTypeAgreement, res.DocumentType)
}

func TestService_AnalyzeErrors(t *testing.T) {
	docs := &fakeDocs{byID: map[string]*documents.Document{}}
	f := newFixture(nil, docs)

	_, err := f.svc.Analyze(context.Background(), AnalyzeInput{DocumentID: "missing"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeDocumentNotFound))

	_, err = f.svc.Analyze(context.Background(), AnalyzeInput{
		Content: "   ", DocumentType: risk.DocTypeSOW,
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeDocumentEmpty))

	_, err = f.svc.Analyze(context.Background(), AnalyzeInput{
		Content: "text", DocumentType: "Invoice",
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeDocumentTypeInvalid))
}

func TestService_PublishFailureIsNonFatal(t *testing.T) {
	f := newFixture(nil, nil)
	f.events.pubErr = assert.AnError

	_, err := f.svc.Analyze(context.Background(), AnalyzeInput{
		Content: sampleContent, DocumentType: risk.DocTypeSOW,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EventsPublished.WithLabelValues("error")))
}

func TestService_CountsFallbacks(t *testing.T) {
	f := newFixture(failingAI{}, nil)

	res, err := f.svc.Analyze(context.Background(), AnalyzeInput{
		Content: sampleContent, DocumentType: risk.DocTypeSOW,
	})
	require.NoError(t, err)
	assert.Equal(t, risk.MethodHeuristic, res.AnalysisMethod)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AnalysisFallbacks))
}

func TestService_OptionalDependencies(t *testing.T) {
	log := logging.NewNopLogger()
	svc := NewService(engine.NewEngine(nil, log), nil, nil, nil,
		prometheus.NewMetrics(promclient.NewRegistry()), log)

	res, err := svc.Analyze(context.Background(), AnalyzeInput{
		Content: sampleContent, DocumentType: risk.DocTypeSOW, ContractID: "c-1",
	})
	require.NoError(t, err)
	assert.NotNil(t, res)

	_, err = svc.Analyze(context.Background(), AnalyzeInput{DocumentID: "doc-1"})
	require.Error(t, err)
}
