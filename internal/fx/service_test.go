package fx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func providerStub(t *testing.T, hits *atomic.Int64, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEURToGBPFetchesAndCaches(t *testing.T) {
	var hits atomic.Int64
	srv := providerStub(t, &hits, `{"rates":{"GBP":0.86}}`, http.StatusOK)
	svc := NewService(srv.Client(), testCache(t), srv.URL, slog.Default())

	first := svc.EURToGBP(context.Background())
	assert.Equal(t, 0.86, first.Rate)
	assert.Equal(t, "exchangerate.host", first.Source)

	// Second call is served from the cache.
	second := svc.EURToGBP(context.Background())
	assert.Equal(t, 0.86, second.Rate)
	assert.Equal(t, int64(1), hits.Load())
}

func TestEURToGBPFallsBackWhenProviderDown(t *testing.T) {
	srv := providerStub(t, nil, `upstream broken`, http.StatusBadGateway)
	svc := NewService(srv.Client(), testCache(t), srv.URL, slog.Default())

	got := svc.EURToGBP(context.Background())
	assert.Equal(t, FallbackRate, got.Rate)
	assert.Equal(t, "Fallback", got.Source)
}

func TestEURToGBPRejectsInvalidRate(t *testing.T) {
	srv := providerStub(t, nil, `{"rates":{"GBP":0}}`, http.StatusOK)
	svc := NewService(srv.Client(), testCache(t), srv.URL, slog.Default())

	got := svc.EURToGBP(context.Background())
	assert.Equal(t, FallbackRate, got.Rate)
}

func TestEURToGBPPrefersCachedRateOverProvider(t *testing.T) {
	var hits atomic.Int64
	srv := providerStub(t, &hits, `{"rates":{"GBP":0.90}}`, http.StatusOK)
	cache := testCache(t)
	svc := NewService(srv.Client(), cache, srv.URL, slog.Default())

	require.NoError(t, cache.Set(context.Background(),
		"fx:eur-gbp", `{"rate":0.88,"fetchedAt":"2026-08-01T00:00:00Z","source":"exchangerate.host"}`, 0).Err())

	got := svc.EURToGBP(context.Background())
	assert.Equal(t, 0.88, got.Rate)
	assert.Equal(t, int64(0), hits.Load())
}

func TestRefreshBypassesCache(t *testing.T) {
	var hits atomic.Int64
	srv := providerStub(t, &hits, `{"rates":{"GBP":0.91}}`, http.StatusOK)
	cache := testCache(t)
	svc := NewService(srv.Client(), cache, srv.URL, slog.Default())

	require.NoError(t, cache.Set(context.Background(),
		"fx:eur-gbp", `{"rate":0.88,"fetchedAt":"2026-08-01T00:00:00Z","source":"exchangerate.host"}`, 0).Err())

	got, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.91, got.Rate)
	assert.Equal(t, int64(1), hits.Load())

	// The refreshed rate replaces the cached one.
	assert.Equal(t, 0.91, svc.EURToGBP(context.Background()).Rate)
}

func TestConvert(t *testing.T) {
	r := Rate{Rate: 0.85}
	assert.InDelta(t, 722.5, Convert(850, r), 0.001)
}
