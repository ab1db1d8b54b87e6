package report

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boozeclub/backoffice/internal/fx"
	"github.com/boozeclub/backoffice/internal/platform/httpx"
	"github.com/boozeclub/backoffice/internal/quotes"
	"github.com/boozeclub/backoffice/internal/settings"
)

// SettingsSource loads the business configuration for document headers.
type SettingsSource interface {
	Load(ctx context.Context) (settings.Settings, error)
}

// RateSource supplies the display-only GBP rate for the footer.
type RateSource interface {
	EURToGBP(ctx context.Context) fx.Rate
}

// Handler renders invoice PDFs.
type Handler struct {
	logger   *slog.Logger
	quotes   *quotes.Service
	settings SettingsSource
	rates    RateSource
}

// NewHandler constructs a handler.
func NewHandler(logger *slog.Logger, quoteService *quotes.Service, cfg SettingsSource, rates RateSource) *Handler {
	return &Handler{logger: logger, quotes: quoteService, settings: cfg, rates: rates}
}

// MountRoutes registers the document routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/quotes/{id}/invoice.pdf", h.InvoicePDF)
}

// InvoicePDF streams the rendered document. ?view=owner renders the
// internal profitability view.
func (h *Handler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ownerView := r.URL.Query().Get("view") == "owner"

	q, lines, totals, err := h.quotes.InvoiceLines(r.Context(), id, ownerView)
	if err != nil {
		h.logger.Error("build invoice document", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	cfg, err := h.settings.Load(r.Context())
	if err != nil {
		h.logger.Error("load settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	rate := h.rates.EURToGBP(r.Context())

	pdf, err := GenerateInvoicePDF(InvoiceDocument{
		Business:  cfg.Business,
		Quote:     *q,
		Lines:     lines,
		Totals:    totals,
		OwnerView: ownerView,
		GBPRate:   &rate,
	})
	if err != nil {
		h.logger.Error("render invoice pdf", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%s.pdf"`, id))
	_, _ = w.Write(pdf)
}
