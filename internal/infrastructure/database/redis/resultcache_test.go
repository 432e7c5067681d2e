package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/ProcureLens/internal/analysis"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

type fakeCommands struct {
	store   map[string][]byte
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{store: map[string][]byte{}}
}

func (f *fakeCommands) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.getErr != nil {
		cmd.SetErr(f.getErr)
		return cmd
	}
	data, ok := f.store[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(data))
	return cmd
}

func (f *fakeCommands) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	if f.setErr != nil {
		cmd.SetErr(f.setErr)
		return cmd
	}
	f.store[key] = value.([]byte)
	f.lastTTL = ttl
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeCommands) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	cmd.SetVal("PONG")
	return cmd
}

func newTestCache(f *fakeCommands) *ResultCache {
	return newResultCache(f, logging.NewNopLogger(), "test", time.Hour)
}

func TestResultCache_RoundTrip(t *testing.T) {
	f := newFakeCommands()
	cache := newTestCache(f)

	want := &analysis.Result{
		ContractID:     "c-1",
		DocumentType:   risk.DocTypeSOW,
		AnalysisMethod: risk.MethodHeuristic,
		OverallRisk:    risk.LevelFromScore(55),
	}
	key := Key("some contract text", risk.DocTypeSOW, "v-1")

	cache.Set(context.Background(), key, want)
	got := cache.Get(context.Background(), key)

	require.NotNil(t, got)
	assert.Equal(t, want.ContractID, got.ContractID)
	assert.Equal(t, want.OverallRisk, got.OverallRisk)
	assert.Equal(t, time.Hour, f.lastTTL)
}

func TestResultCache_MissReturnsNil(t *testing.T) {
	cache := newTestCache(newFakeCommands())
	assert.Nil(t, cache.Get(context.Background(), "absent"))
}

func TestResultCache_ErrorsAreBestEffort(t *testing.T) {
	f := newFakeCommands()
	f.getErr = assert.AnError
	f.setErr = assert.AnError
	cache := newTestCache(f)

	assert.NotPanics(t, func() {
		cache.Set(context.Background(), "k", &analysis.Result{})
	})
	assert.Nil(t, cache.Get(context.Background(), "k"))
}

func TestResultCache_CorruptEntryReturnsNil(t *testing.T) {
	f := newFakeCommands()
	cache := newTestCache(f)
	f.store[cache.fullKey("bad")] = []byte("{not json")

	assert.Nil(t, cache.Get(context.Background(), "bad"))
}

func TestKey_Derivation(t *testing.T) {
	a := Key("text", risk.DocTypeSOW, "")
	b := Key("text", risk.DocTypeSOW, "")
	c := Key("text", risk.DocTypePO, "")
	d := Key("other text", risk.DocTypeSOW, "")
	e := Key("text", risk.DocTypeSOW, "v-9")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	// The vendor lens output depends on whether a vendor id was supplied, so
	// the id is part of the key.
	assert.NotEqual(t, a, e)
}
