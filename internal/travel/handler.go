package travel

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

// Handler serves travel estimates.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the travel routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/travel-estimate", h.Estimate)
}

func queryFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return v
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	est, err := h.service.Estimate(r.Context(), Request{
		Origin:      r.URL.Query().Get("origin"),
		Destination: r.URL.Query().Get("destination"),
		PetrolPrice: queryFloat(r, "petrolPrice"),
		MPG:         queryFloat(r, "mpg"),
		StaffRate:   queryFloat(r, "staffRate"),
	})
	if err != nil {
		h.logger.Error("travel estimate", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, est)
}
