package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nexus-admin/nexus/internal/platform/httpx"
	"github.com/nexus-admin/nexus/internal/shared"
)

// Handler serves the login and logout endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		sessions: sessions,
		validate: validator.New(),
	}
}

// MountRoutes registers auth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	u, err := h.service.Login(r.Context(), req.Email)
	if err != nil {
		h.logger.Warn("login rejected", slog.String("email", req.Email), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if _, err := h.sessions.Issue(r.Context(), w, u.ID); err != nil {
		h.logger.Error("issue session", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	h.logger.Info("login", slog.String("user", u.ID))
	httpx.JSON(w, http.StatusOK, u)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		if resolved, err := h.sessions.Resolve(r.Context(), r); err == nil {
			sess = resolved
		}
	}
	if err := h.sessions.Revoke(r.Context(), w, sess); err != nil {
		h.logger.Error("revoke session", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
