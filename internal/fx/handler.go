package fx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

// Handler exposes the presentation rate.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/fx/eur-gbp", h.rate)
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.EURToGBP(r.Context()))
}
