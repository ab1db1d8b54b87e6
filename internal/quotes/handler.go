package quotes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

// Handler serves the quotes API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a handler.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers the quote routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/quotes", h.List)
	r.Post("/quotes", h.Create)
	r.Get("/quotes/{id}", h.Show)
	r.Put("/quotes/{id}", h.Update)
	r.Delete("/quotes/{id}", h.Delete)
	r.Post("/quotes/{id}/status", h.UpdateStatus)
	r.Post("/quotes/{id}/accept", h.Accept)
	r.Get("/quotes/{id}/invoice", h.Invoice)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "list quotes", err)
		return
	}
	if list == nil {
		list = []Quote{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "get quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "quote could not be parsed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
		return
	}
	q, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, "create quote", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "quote could not be parsed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
		return
	}
	q, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, "update quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, "delete quote", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "status could not be parsed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
		return
	}
	q, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.respondError(w, "update quote status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	q, booking, err := h.service.Accept(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "accept quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, AcceptResponse{Quote: q, Booking: booking})
}

// Invoice returns the rendered document lines. ?view=owner includes internal
// lines and full pricing detail.
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	includeInternal := r.URL.Query().Get("view") == "owner"
	q, lines, totals, err := h.service.InvoiceLines(r.Context(), chi.URLParam(r, "id"), includeInternal)
	if err != nil {
		h.respondError(w, "build invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"quote":  q,
		"lines":  lines,
		"totals": totals,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
