package permissions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nexus-admin/nexus/internal/accesscontrol"
	"github.com/nexus-admin/nexus/internal/platform/httpx"
	"github.com/nexus-admin/nexus/internal/shared"
)

// Deleter removes a permission definition with its cascade.
type Deleter interface {
	DeletePermission(ctx context.Context, id string) error
}

// Handler serves the permission registry endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	deleter  Deleter
	guard    accesscontrol.Middleware
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, deleter Deleter, guard accesscontrol.Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		deleter:  deleter,
		guard:    guard,
		validate: validator.New(),
	}
}

// MountRoutes registers permission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(shared.PermRoleRead, shared.PermSystemSettings))
		r.Get("/permissions", h.list)
		r.Get("/permissions/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAll(shared.PermSystemSettings))
		r.Post("/permissions", h.create)
		r.Put("/permissions/{id}", h.update)
		r.Delete("/permissions/{id}", h.delete)
	})
}

type createPermissionRequest struct {
	Key         string `json:"key" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Group       string `json:"group"`
	IsSystem    bool   `json:"isSystem"`
}

type updatePermissionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Group       *string `json:"group"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, perms)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPermissionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Create(r.Context(), CreateInput{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		Group:       req.Group,
		IsSystem:    req.IsSystem,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updatePermissionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Group:       req.Group,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.deleter.DeletePermission(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("permission deleted", slog.String("id", id))
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
