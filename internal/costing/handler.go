package costing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

// Handler serves the costing workspace API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers costing routes under the quotes subtree.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/quotes/{id}/costing", h.Show)
	r.Put("/quotes/{id}/costing", h.Update)
	r.Post("/quotes/{id}/costing/apply-defaults", h.ApplyDefaults)
	r.Get("/costing/presets/cocktails", h.CocktailPresets)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	data, err := h.service.ForQuote(r.Context(), quoteID)
	if err != nil {
		h.respondError(w, "load costing", err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	var data Data
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "costing document could not be parsed")
		return
	}
	updated, err := h.service.Update(r.Context(), quoteID, data)
	if err != nil {
		h.respondError(w, "update costing", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) ApplyDefaults(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	updated, err := h.service.ApplyDefaults(r.Context(), quoteID)
	if err != nil {
		h.respondError(w, "apply costing defaults", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) CocktailPresets(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, CocktailPresets())
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
