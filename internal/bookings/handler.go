package bookings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

type depositRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type paymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"required,oneof=Pending DepositPaid PaidInFull"`
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

// Handler serves the bookings API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a handler.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers the booking routes. Bookings are only created via
// quote acceptance, so there is no POST /bookings.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/bookings", h.List)
	r.Get("/bookings/{id}", h.Show)
	r.Post("/bookings/{id}/deposit", h.RecordDeposit)
	r.Post("/bookings/{id}/payment-status", h.SetPaymentStatus)
	r.Post("/bookings/{id}/complete", h.Complete)
	r.Post("/bookings/{id}/cancel", h.Cancel)
	r.Post("/bookings/{id}/archive", h.Archive)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true"
	list, err := h.service.List(r.Context(), includeArchived)
	if err != nil {
		h.respondError(w, "list bookings", err)
		return
	}
	if list == nil {
		list = []Booking{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "get booking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) RecordDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "deposit could not be parsed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
		return
	}
	b, err := h.service.RecordDeposit(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		h.respondError(w, "record deposit", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req paymentStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "payment status could not be parsed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
		return
	}
	b, err := h.service.SetPaymentStatus(r.Context(), chi.URLParam(r, "id"), req.PaymentStatus)
	if err != nil {
		h.respondError(w, "set payment status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "complete booking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "cancel booking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "archive flag could not be parsed")
		return
	}
	b, err := h.service.SetArchived(r.Context(), chi.URLParam(r, "id"), req.Archived)
	if err != nil {
		h.respondError(w, "archive booking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
