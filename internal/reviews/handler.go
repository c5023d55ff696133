package reviews

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/campdir/campdir/internal/auth"
	"github.com/campdir/campdir/internal/platform/httpx"
	"github.com/campdir/campdir/internal/shared"
)

// Handler wires HTTP endpoints for the review resource.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	middleware *auth.Middleware
	validator  *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw *auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, middleware: mw, validator: validator.New()}
}

// MountRoutes registers the top-level review routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{reviewID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(h.middleware.RequireAuth)
		r.Use(h.middleware.Authorize(shared.RoleUser, shared.RoleAdmin))
		r.Put("/{reviewID}", h.Update)
		r.Delete("/{reviewID}", h.Delete)
	})
}

// MountNested registers the routes living under /bootcamps/{bootcampID}/reviews.
func (h *Handler) MountNested(r chi.Router) {
	r.Get("/", h.ListByBootcamp)

	r.Group(func(r chi.Router) {
		r.Use(h.middleware.RequireAuth)
		r.Use(h.middleware.Authorize(shared.RoleUser, shared.RoleAdmin))
		r.Post("/", h.Create)
	})
}

// List serves GET /reviews with pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := shared.ParsePageParams(r.URL.Query())
	page, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list reviews", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.PageResult(w, "Reviews retrieved successfully", page)
}

// ListByBootcamp serves GET /bootcamps/{bootcampID}/reviews.
func (h *Handler) ListByBootcamp(w http.ResponseWriter, r *http.Request) {
	bootcampID, ok := parseID(w, r, "bootcampID", "Invalid bootcamp ID")
	if !ok {
		return
	}
	list, err := h.service.ListByBootcamp(r.Context(), bootcampID)
	if err != nil {
		h.logger.Error("list reviews by bootcamp", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.Collection(w, "Reviews retrieved successfully", list)
}

// Get serves GET /reviews/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "reviewID", "Invalid review ID")
	if !ok {
		return
	}
	review, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Review retrieved successfully", review)
}

// Create serves POST /bootcamps/{bootcampID}/reviews.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	bootcampID, ok := parseID(w, r, "bootcampID", "Invalid bootcamp ID")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	review, err := h.service.Create(r.Context(), shared.IdentityFromContext(r.Context()), bootcampID, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Review added successfully", review)
}

// Update serves PUT /reviews/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "reviewID", "Invalid review ID")
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	review, err := h.service.Update(r.Context(), shared.IdentityFromContext(r.Context()), id, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Review updated successfully", review)
}

// Delete serves DELETE /reviews/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "reviewID", "Invalid review ID")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), shared.IdentityFromContext(r.Context()), id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Review deleted successfully", nil)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		httpx.Fail(w, http.StatusBadRequest, shared.FirstValidationMessage(err))
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httpx.Fail(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}
