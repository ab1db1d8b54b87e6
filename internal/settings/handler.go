package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

// Handler serves the settings document.
type Handler struct {
	logger *slog.Logger
	repo   *Repository
}

// NewHandler constructs a handler.
func NewHandler(logger *slog.Logger, repo *Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/settings", h.Show)
	r.Put("/settings", h.Update)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Load(r.Context())
	if err != nil {
		h.logger.Error("load settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var s Settings
	if err := httpx.DecodeJSON(r, &s); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "settings document could not be parsed")
		return
	}
	if err := h.repo.Save(r.Context(), s); err != nil {
		h.logger.Error("save settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}
