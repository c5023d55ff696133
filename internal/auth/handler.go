package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/campdir/campdir/internal/platform/httpx"
	"github.com/campdir/campdir/internal/shared"
	"github.com/campdir/campdir/internal/token"
)

// Handler wires HTTP endpoints for registration, login and credential
// maintenance.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	tokens       *token.Service
	middleware   *Middleware
	validator    *validator.Validate
	cookieMaxAge time.Duration
	secureCookie bool
}

// NewHandler constructs a Handler instance. cookieMaxAge is the lifetime of
// the token cookie; secureCookie should be true in production.
func NewHandler(logger *slog.Logger, service *Service, tokens *token.Service, mw *Middleware, cookieMaxAge time.Duration, secureCookie bool) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		tokens:       tokens,
		middleware:   mw,
		validator:    validator.New(),
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Get("/logout", h.handleLogout)
	r.Post("/forgotpassword", h.handleForgotPassword)
	r.Put("/resetpassword/{resettoken}", h.handleResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.middleware.RequireAuth)
		r.Get("/me", h.handleMe)
		r.Put("/updatedetails", h.handleUpdateDetails)
		r.Put("/updatepassword", h.handleUpdatePassword)
	})
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=user publisher"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	h.sendTokenResponse(w, user, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	h.sendTokenResponse(w, user, "User logged in successfully")
}

// Logout only asks the client to forget the cookie; tokens stay valid until
// expiry because there is no server-side revocation list.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	httpx.OK(w, http.StatusOK, "User logged out successfully", nil)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	if ident == nil {
		httpx.Fail(w, http.StatusUnauthorized, notAuthorizedMsg)
		return
	}
	user, err := h.service.Me(r.Context(), ident.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "User retrieved successfully", user)
}

type updateDetailsRequest struct {
	Name  string `json:"name" validate:"omitempty"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	if ident == nil {
		httpx.Fail(w, http.StatusUnauthorized, notAuthorizedMsg)
		return
	}
	var req updateDetailsRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.UpdateDetails(r.Context(), ident.ID, req.Name, req.Email)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "User details updated successfully", user)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	if ident == nil {
		httpx.Fail(w, http.StatusUnauthorized, notAuthorizedMsg)
		return
	}
	var req updatePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.UpdatePassword(r.Context(), ident.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	h.sendTokenResponse(w, user, "Password updated successfully")
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}
	scheme := "http"
	if r.TLS != nil || h.secureCookie {
		scheme = "https"
	}
	if err := h.service.ForgotPassword(r.Context(), req.Email, scheme+"://"+r.Host); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Email sent", nil)
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.ResetPassword(r.Context(), chi.URLParam(r, "resettoken"), req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	h.sendTokenResponse(w, user, "Password reset successfully")
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

// sendTokenResponse issues a bearer token, mirrors it into the token cookie
// and returns it in the body.
func (h *Handler) sendTokenResponse(w http.ResponseWriter, user *User, message string) {
	signed, err := h.tokens.Issue(user.ID)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("issue token", slog.Any("error", err))
		}
		httpx.Fail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieMaxAge),
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	httpx.OK(w, http.StatusOK, message, map[string]string{"token": signed})
}
