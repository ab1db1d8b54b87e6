// Package fx provides the EUR to GBP presentation rate. The rate is display
// only; canonical totals are never converted through it.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	// FallbackRate is used when neither the provider nor the cache can
	// supply a rate.
	FallbackRate = 0.85

	defaultEndpoint = "https://api.exchangerate.host/latest?base=EUR&symbols=GBP"
	cacheKey        = "fx:eur-gbp"
	cacheTTL        = 12 * time.Hour
)

// Rate is a point-in-time exchange rate with its provenance.
type Rate struct {
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetchedAt"`
	Source    string    `json:"source"`
}

// Service resolves the presentation rate through a cache-then-provider
// chain that degrades to a hardcoded constant rather than failing.
type Service struct {
	client   *http.Client
	cache    *redis.Client
	endpoint string
	logger   *slog.Logger
	group    singleflight.Group
}

// NewService constructs a service. An empty endpoint selects the default
// provider.
func NewService(client *http.Client, cache *redis.Client, endpoint string, logger *slog.Logger) *Service {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Service{client: client, cache: cache, endpoint: endpoint, logger: logger}
}

// EURToGBP returns the current presentation rate. The chain is cache, then
// provider (deduplicated across concurrent callers), then the fallback
// constant. It never returns an error; presentation must not block on FX.
func (s *Service) EURToGBP(ctx context.Context) Rate {
	if cached, ok := s.readCache(ctx); ok {
		return cached
	}

	res, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		s.logger.Warn("fx fetch failed, using fallback", "error", err)
		return Rate{Rate: FallbackRate, FetchedAt: time.Now().UTC(), Source: "Fallback"}
	}
	return res.(Rate)
}

// Refresh fetches from the provider unconditionally and repopulates the
// cache. Run on a schedule so interactive requests mostly hit the cache.
func (s *Service) Refresh(ctx context.Context) (Rate, error) {
	return s.fetch(ctx)
}

// Convert applies the rate to an amount for dual-currency display.
func Convert(amount float64, r Rate) float64 {
	return amount * r.Rate
}

func (s *Service) readCache(ctx context.Context) (Rate, bool) {
	if s.cache == nil {
		return Rate{}, false
	}
	raw, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return Rate{}, false
	}
	var r Rate
	if err := json.Unmarshal(raw, &r); err != nil || r.Rate <= 0 {
		return Rate{}, false
	}
	return r, true
}

func (s *Service) writeCache(ctx context.Context, r Rate) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
		s.logger.Warn("fx cache write failed", "error", err)
	}
}

type providerResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (s *Service) fetch(ctx context.Context) (Rate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return Rate{}, fmt.Errorf("fx: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return Rate{}, fmt.Errorf("fx: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Rate{}, fmt.Errorf("fx: provider status %d", resp.StatusCode)
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Rate{}, fmt.Errorf("fx: decode: %w", err)
	}
	rate := body.Rates["GBP"]
	if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return Rate{}, fmt.Errorf("fx: invalid rate %v", rate)
	}

	r := Rate{Rate: rate, FetchedAt: time.Now().UTC(), Source: "exchangerate.host"}
	s.writeCache(ctx, r)
	return r, nil
}
