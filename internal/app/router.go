package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/boozeclub/backoffice/internal/auth"
	"github.com/boozeclub/backoffice/internal/bookings"
	"github.com/boozeclub/backoffice/internal/costing"
	"github.com/boozeclub/backoffice/internal/enquiries"
	"github.com/boozeclub/backoffice/internal/fx"
	"github.com/boozeclub/backoffice/internal/quotes"
	"github.com/boozeclub/backoffice/internal/settings"
	"github.com/boozeclub/backoffice/internal/travel"
	"github.com/boozeclub/backoffice/jobs"
	"github.com/boozeclub/backoffice/report"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthHandler      *auth.Handler
	EnquiriesHandler *enquiries.Handler
	QuotesHandler    *quotes.Handler
	CostingHandler   *costing.Handler
	BookingsHandler  *bookings.Handler
	SettingsHandler  *settings.Handler
	FXHandler        *fx.Handler
	TravelHandler    *travel.Handler
	ReportHandler    *report.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi router. Everything except login and health
// sits behind the auth middleware.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthHandler.RequireAuth)

			params.EnquiriesHandler.MountRoutes(r)
			params.QuotesHandler.MountRoutes(r)
			params.CostingHandler.MountRoutes(r)
			params.BookingsHandler.MountRoutes(r)
			params.SettingsHandler.MountRoutes(r)
			params.FXHandler.MountRoutes(r)
			params.TravelHandler.MountRoutes(r)
			params.ReportHandler.MountRoutes(r)
			if params.JobsHandler != nil {
				r.Route("/jobs", params.JobsHandler.MountRoutes)
			}
		})
	})

	return r
}
