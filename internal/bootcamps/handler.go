package bootcamps

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/campdir/campdir/internal/auth"
	"github.com/campdir/campdir/internal/platform/httpx"
	"github.com/campdir/campdir/internal/shared"
)

// Handler wires HTTP endpoints for the bootcamp resource.
type Handler struct {
	logger        *slog.Logger
	service       *Service
	middleware    *auth.Middleware
	validator     *validator.Validate
	maxFileUpload int64
	uploadPath    string
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw *auth.Middleware, maxFileUpload int64, uploadPath string) *Handler {
	return &Handler{
		logger:        logger,
		service:       service,
		middleware:    mw,
		validator:     validator.New(),
		maxFileUpload: maxFileUpload,
		uploadPath:    uploadPath,
	}
}

// MountRoutes registers bootcamp routes. Nested resources mount their own
// routes under /{bootcampID} from the application router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{bootcampID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(h.middleware.RequireAuth)
		r.Use(h.middleware.Authorize(shared.RolePublisher, shared.RoleAdmin))
		r.Post("/", h.Create)
		r.Put("/{bootcampID}", h.Update)
		r.Delete("/{bootcampID}", h.Delete)
		r.Put("/{bootcampID}/photo", h.UploadPhoto)
	})
}

// List serves GET /bootcamps with pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := shared.ParsePageParams(r.URL.Query())
	page, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list bootcamps", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.PageResult(w, "Bootcamps retrieved successfully", page)
}

// Get serves GET /bootcamps/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bootcampID(w, r)
	if !ok {
		return
	}
	bootcamp, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Bootcamp retrieved successfully", bootcamp)
}

// Create serves POST /bootcamps.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBootcampRequest
	if !h.decode(w, r, &req) {
		return
	}
	bootcamp, err := h.service.Create(r.Context(), shared.IdentityFromContext(r.Context()), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Bootcamp created successfully", bootcamp)
}

// Update serves PUT /bootcamps/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bootcampID(w, r)
	if !ok {
		return
	}
	var req UpdateBootcampRequest
	if !h.decode(w, r, &req) {
		return
	}
	bootcamp, err := h.service.Update(r.Context(), shared.IdentityFromContext(r.Context()), id, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Bootcamp updated successfully", bootcamp)
}

// Delete serves DELETE /bootcamps/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bootcampID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), shared.IdentityFromContext(r.Context()), id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Bootcamp deleted successfully", nil)
}

// UploadPhoto serves PUT /bootcamps/{id}/photo. The ownership check runs
// before any byte is written to disk.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bootcampID(w, r)
	if !ok {
		return
	}
	if _, err := h.service.AuthorizePhotoUpload(r.Context(), shared.IdentityFromContext(r.Context()), id); err != nil {
		httpx.Error(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileUpload+4096)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image") {
		httpx.Fail(w, http.StatusBadRequest, "Please upload an image file")
		return
	}
	if header.Size > h.maxFileUpload {
		httpx.Fail(w, http.StatusBadRequest,
			fmt.Sprintf("Please upload an image less than %d bytes", h.maxFileUpload))
		return
	}

	filename := fmt.Sprintf("photo_%d_%s%s", id, uuid.NewString(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(h.uploadPath, filename))
	if err != nil {
		h.logger.Error("create upload file", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "Problem with file upload")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		h.logger.Error("write upload file", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "Problem with file upload")
		return
	}

	if err := h.service.SetPhoto(r.Context(), id, filename); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Photo uploaded successfully", filename)
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

func (h *Handler) bootcampID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "bootcampID"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Fail(w, http.StatusBadRequest, "Invalid bootcamp ID")
		return 0, false
	}
	return id, true
}
