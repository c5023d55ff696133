package users

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

// Handler wires the admin-only account management endpoints.
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

// MountRoutes registers the /users routes. Every endpoint requires an
// authenticated admin.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.middleware.RequireAuth)
	r.Use(h.middleware.Authorize(shared.RoleAdmin))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{userID}", h.Get)
	r.Put("/{userID}", h.Update)
	r.Delete("/{userID}", h.Delete)
}

// List serves GET /users with pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := shared.ParsePageParams(r.URL.Query())
	page, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.PageResult(w, "Users retrieved successfully", page)
}

// Get serves GET /users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "User retrieved successfully", user)
}

// Create serves POST /users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "User created successfully", user)
}

// Update serves PUT /users/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "User updated successfully", user)
}

// Delete serves DELETE /users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "User deleted successfully", nil)
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

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Fail(w, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return id, true
}
