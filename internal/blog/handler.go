package blog

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

// Handler serves the blog endpoints.
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

// MountRoutes registers blog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(shared.PermBlogRead))
		r.Get("/blogs", h.list)
		r.Get("/blogs/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAll(shared.PermBlogWrite))
		r.Post("/blogs", h.create)
		r.Put("/blogs/{id}", h.update)
		r.Delete("/blogs/{id}", h.delete)
	})
}

type createPostRequest struct {
	Title    string   `json:"title" validate:"required"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	AuthorID string   `json:"authorId"`
	Status   Status   `json:"status"`
	Tags     []string `json:"tags"`
}

type updatePostRequest struct {
	Title    *string   `json:"title"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	AuthorID *string   `json:"authorId"`
	Status   *Status   `json:"status"`
	Tags     *[]string `json:"tags"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := shared.ListQuery{Search: r.URL.Query().Get("search")}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = v
	}
	out, total, err := h.service.List(r.Context(), q)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if out == nil {
		out = []Post{}
	}
	httpx.JSON(w, http.StatusOK, shared.PageEnvelope{
		Data:  out,
		Total: total,
		Page:  q.Normalize().Page,
		Limit: q.Normalize().Limit,
	})
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
	var req createPostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Create(r.Context(), CreateInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		AuthorID: req.AuthorID,
		Status:   req.Status,
		Tags:     req.Tags,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		AuthorID: req.AuthorID,
		Status:   req.Status,
		Tags:     req.Tags,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("blog post deleted", slog.String("id", id))
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
