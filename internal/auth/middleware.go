package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/campdir/campdir/internal/platform/httpx"
	"github.com/campdir/campdir/internal/shared"
	"github.com/campdir/campdir/internal/token"
)

// TokenCookie is the cookie carrying the bearer token when no Authorization
// header is sent.
const TokenCookie = "token"

const notAuthorizedMsg = "Not authorized to access this route"

// Middleware resolves bearer tokens into request identities and gates
// routes by role.
type Middleware struct {
	tokens *token.Service
	users  Repository
	logger *slog.Logger
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(tokens *token.Service, users Repository, logger *slog.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// RequireAuth authenticates the request and attaches the resolved identity
// to the context. Missing or unverifiable tokens short-circuit with 401 and
// a deliberately generic message. When the token is valid but the account
// has been deleted meanwhile, a nil identity is attached and downstream
// authorization fails closed.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractToken(r)
		if raw == "" {
			httpx.Fail(w, http.StatusUnauthorized, notAuthorizedMsg)
			return
		}

		userID, err := m.tokens.Verify(raw)
		if err != nil {
			httpx.Fail(w, http.StatusUnauthorized, notAuthorizedMsg)
			return
		}

		var ident *shared.Identity
		user, err := m.users.FindByID(r.Context(), userID)
		switch {
		case err == nil:
			ident = &shared.Identity{ID: user.ID, Role: user.Role}
		case errors.Is(err, shared.ErrNotFound):
			// Token outlived the account; leave the identity nil.
		default:
			if m.logger != nil {
				m.logger.Error("resolve identity", slog.Any("error", err))
			}
			httpx.Fail(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), ident)))
	})
}

// Authorize permits the request only when the attached identity's role is in
// the allowed set. Runs after RequireAuth; a missing identity fails closed.
func (m *Middleware) Authorize(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := shared.IdentityFromContext(r.Context())
			if ident == nil {
				httpx.Fail(w, http.StatusForbidden, notAuthorizedMsg)
				return
			}
			for _, role := range roles {
				if ident.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.Fail(w, http.StatusForbidden,
				"User role "+ident.Role+" is not authorized to access this route")
		})
	}
}

// extractToken prefers the Authorization header over the token cookie.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
