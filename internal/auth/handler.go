package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type contextKey struct{}

// UserFromContext returns the authenticated session claims, if any.
func UserFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// Handler serves login, logout and session introspection.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	validate     *validator.Validate
	secureCookie bool
}

// NewHandler constructs a handler. secureCookie should be on behind TLS.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate, secureCookie bool) *Handler {
	return &Handler{logger: logger, service: service, validate: validate, secureCookie: secureCookie}
}

// MountRoutes registers the auth routes. These stay outside the
// authenticated subtree.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "credentials could not be parsed")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "username and password required")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("login failed", "username", req.Username)
		httpx.RespondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
		MaxAge:   int(TokenTTL.Seconds()),
	})
	httpx.JSON(w, http.StatusOK, map[string]any{
		"user": userResponse{Username: user.Username, DisplayName: user.DisplayName},
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
		MaxAge:   -1,
	})
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claimsFromRequest(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"user": userResponse{Username: claims.Subject, DisplayName: claims.DisplayName},
	})
}

// tokenFromRequest prefers the session cookie, falling back to a bearer
// header for non-browser clients.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (h *Handler) claimsFromRequest(r *http.Request) (*Claims, error) {
	token := tokenFromRequest(r)
	if token == "" {
		return nil, httpx.ErrUnauthorized
	}
	return h.service.Verify(token)
}

// RequireAuth guards a subtree, putting session claims on the context.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.claimsFromRequest(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, claims)))
	})
}
