package users

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nexus-admin/nexus/internal/accesscontrol"
	"github.com/nexus-admin/nexus/internal/platform/httpx"
	"github.com/nexus-admin/nexus/internal/shared"
)

// Handler serves the user registry endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	guard    accesscontrol.Middleware
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard accesscontrol.Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		guard:    guard,
		validate: validator.New(),
	}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(shared.PermUserRead))
		r.Get("/users", h.list)
		r.Get("/users/stats", h.stats)
		r.Get("/users/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAll(shared.PermUserWrite))
		r.Post("/users", h.create)
		r.Put("/users/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAll(shared.PermUserDelete))
		r.Delete("/users/{id}", h.delete)
	})
}

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name" validate:"required"`
	RoleID    string `json:"roleId"`
	Status    Status `json:"status"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	RoleID    *string `json:"roleId"`
	Status    *Status `json:"status"`
	AvatarURL *string `json:"avatarUrl"`
	Bio       *string `json:"bio"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := listQueryFromRequest(r)
	out, total, err := h.service.List(r.Context(), q)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if out == nil {
		out = []User{}
	}
	httpx.JSON(w, http.StatusOK, shared.PageEnvelope{
		Data:  out,
		Total: total,
		Page:  q.Normalize().Page,
		Limit: q.Normalize().Limit,
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.ListAll(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	counts := map[Status]int{}
	for _, u := range all {
		counts[u.Status]++
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"total":    len(all),
		"active":   counts[StatusActive],
		"inactive": counts[StatusInactive],
		"pending":  counts[StatusPending],
		"banned":   counts[StatusBanned],
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	u, err := h.service.Create(r.Context(), CreateInput{
		Email:     req.Email,
		Name:      req.Name,
		RoleID:    req.RoleID,
		Status:    req.Status,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, u)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	u, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
		Email:     req.Email,
		Name:      req.Name,
		RoleID:    req.RoleID,
		Status:    req.Status,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("user deleted", slog.String("id", id))
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func listQueryFromRequest(r *http.Request) shared.ListQuery {
	q := shared.ListQuery{Search: r.URL.Query().Get("search")}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = v
	}
	return q
}
