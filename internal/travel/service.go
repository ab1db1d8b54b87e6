// Package travel estimates round-trip distance, fuel cost and staff travel
// cost for an event location, using the Google Distance Matrix API.
package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
	"github.com/boozeclub/backoffice/internal/pricing"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"
	metersPerMile  = 1609.34
)

var (
	ErrNotConfigured = fmt.Errorf("travel: maps API key not configured: %w", httpx.ErrUpstream)
	ErrNoDestination = fmt.Errorf("travel: destination is required: %w", httpx.ErrValidation)
	ErrNoRoute       = fmt.Errorf("travel: no route between locations: %w", httpx.ErrNotFound)
	ErrProvider      = fmt.Errorf("travel: bad response from maps provider: %w", httpx.ErrUpstream)
)

// Leg is one direction of the journey.
type Leg struct {
	Miles           float64 `json:"miles"`
	Km              float64 `json:"km"`
	DurationMinutes float64 `json:"durationMinutes"`
}

// Distance covers both directions. Events are round trips by definition.
type Distance struct {
	OneWay    Leg `json:"oneWay"`
	RoundTrip Leg `json:"roundTrip"`
}

// Estimate is the full travel costing for a destination. Cost fields are nil
// when their inputs were not supplied.
type Estimate struct {
	Provider          string   `json:"provider"`
	FuelPricePerLitre float64  `json:"fuelPricePerLitre"`
	Distance          Distance `json:"distance"`
	PetrolCost        *float64 `json:"petrolCost"`
	StaffTravelCost   *float64 `json:"staffTravelCost"`
}

// Request captures the estimate inputs. Zero-valued optional fields fall
// back to configuration defaults.
type Request struct {
	Origin      string
	Destination string
	PetrolPrice float64
	MPG         float64
	StaffRate   float64
}

// Config carries the service configuration.
type Config struct {
	APIKey           string
	BaseURL          string
	DefaultOrigin    string
	DefaultFuelPrice float64
}

type Service struct {
	client *http.Client
	cfg    Config
}

// NewService constructs a service. An empty BaseURL selects the Google
// endpoint.
func NewService(client *http.Client, cfg Config) *Service {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.DefaultFuelPrice <= 0 {
		cfg.DefaultFuelPrice = 1.75
	}
	return &Service{client: client, cfg: cfg}
}

type matrixElement struct {
	Status   string `json:"status"`
	Distance *struct {
		Value float64 `json:"value"`
	} `json:"distance"`
	Duration *struct {
		Value float64 `json:"value"`
	} `json:"duration"`
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
	ErrorMessage string `json:"error_message"`
}

// Estimate resolves the route and derives the costs the quote builder needs.
func (s *Service) Estimate(ctx context.Context, req Request) (*Estimate, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if req.Destination == "" {
		return nil, ErrNoDestination
	}
	origin := req.Origin
	if origin == "" {
		origin = s.cfg.DefaultOrigin
	}

	params := url.Values{}
	params.Set("origins", origin)
	params.Set("destinations", req.Destination)
	params.Set("key", s.cfg.APIKey)
	params.Set("units", "metric")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("travel: build request: %w", err)
	}
	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var body matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrProvider, err)
	}
	if body.Status != "OK" || len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		if body.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s", ErrProvider, body.ErrorMessage)
		}
		return nil, ErrProvider
	}

	el := body.Rows[0].Elements[0]
	if el.Status != "OK" || el.Distance == nil || el.Duration == nil {
		return nil, ErrNoRoute
	}

	oneWay := Leg{
		Miles:           el.Distance.Value / metersPerMile,
		Km:              el.Distance.Value / 1000,
		DurationMinutes: el.Duration.Value / 60,
	}
	roundTrip := Leg{
		Miles:           oneWay.Miles * 2,
		Km:              oneWay.Km * 2,
		DurationMinutes: oneWay.DurationMinutes * 2,
	}

	fuelPrice := s.cfg.DefaultFuelPrice
	if req.PetrolPrice > 0 {
		fuelPrice = req.PetrolPrice
	}

	est := &Estimate{
		Provider:          "google",
		FuelPricePerLitre: fuelPrice,
		Distance:          Distance{OneWay: oneWay, RoundTrip: roundTrip},
	}
	if req.MPG > 0 {
		litres := roundTrip.Miles / req.MPG * pricing.LitresPerGallon
		cost := round2(litres * fuelPrice)
		est.PetrolCost = &cost
	}
	if req.StaffRate > 0 {
		cost := round2(roundTrip.DurationMinutes / 60 * req.StaffRate)
		est.StaffTravelCost = &cost
	}
	return est, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
