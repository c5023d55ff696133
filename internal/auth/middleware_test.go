package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campdir/campdir/internal/shared"
	"github.com/campdir/campdir/internal/token"
)

func testMiddleware(t *testing.T, repo Repository) (*Middleware, *token.Service) {
	t.Helper()
	tokens := token.NewService("middleware-test-secret", time.Hour)
	return NewMiddleware(tokens, repo, slog.New(slog.NewTextHandler(io.Discard, nil))), tokens
}

func seedUser(t *testing.T, repo *mockRepository, role string) *User {
	t.Helper()
	user, err := repo.Create(context.Background(), &User{
		Name:         "Mid Ware",
		Email:        role + "@example.com",
		Role:         role,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return user
}

func identityEcho(captured **shared.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = shared.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthMissingToken(t *testing.T) {
	mw, _ := testMiddleware(t, newMockRepository())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mw.RequireAuth(identityEcho(new(*shared.Identity))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized to access this route")
}

func TestRequireAuthGarbageToken(t *testing.T) {
	mw, _ := testMiddleware(t, newMockRepository())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	mw.RequireAuth(identityEcho(new(*shared.Identity))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthHeaderToken(t *testing.T) {
	repo := newMockRepository()
	mw, tokens := testMiddleware(t, repo)
	user := seedUser(t, repo, shared.RoleUser)

	signed, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	var ident *shared.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw.RequireAuth(identityEcho(&ident)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ident)
	assert.Equal(t, user.ID, ident.ID)
	assert.Equal(t, shared.RoleUser, ident.Role)
}

func TestRequireAuthCookieFallback(t *testing.T) {
	repo := newMockRepository()
	mw, tokens := testMiddleware(t, repo)
	user := seedUser(t, repo, shared.RolePublisher)

	signed, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	var ident *shared.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signed})
	mw.RequireAuth(identityEcho(&ident)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ident)
	assert.Equal(t, shared.RolePublisher, ident.Role)
}

func TestRequireAuthHeaderBeatsCookie(t *testing.T) {
	repo := newMockRepository()
	mw, tokens := testMiddleware(t, repo)
	headerUser := seedUser(t, repo, shared.RoleUser)
	cookieUser := seedUser(t, repo, shared.RoleAdmin)

	headerToken, err := tokens.Issue(headerUser.ID)
	require.NoError(t, err)
	cookieToken, err := tokens.Issue(cookieUser.ID)
	require.NoError(t, err)

	var ident *shared.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+headerToken)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: cookieToken})
	mw.RequireAuth(identityEcho(&ident)).ServeHTTP(rec, req)

	require.NotNil(t, ident)
	assert.Equal(t, headerUser.ID, ident.ID)
}

func TestRequireAuthDeletedAccountYieldsNilIdentity(t *testing.T) {
	repo := newMockRepository()
	mw, tokens := testMiddleware(t, repo)

	// Valid token for an account that no longer exists.
	signed, err := tokens.Issue(4242)
	require.NoError(t, err)

	ident := &shared.Identity{ID: -1}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw.RequireAuth(identityEcho(&ident)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, ident)
}

func TestRequireAuthRepositoryFailure(t *testing.T) {
	repo := newMockRepository()
	repo.findErr = errors.New("connection refused")
	mw, tokens := testMiddleware(t, repo)

	signed, err := tokens.Issue(1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw.RequireAuth(identityEcho(new(*shared.Identity))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthorizeAllowsListedRole(t *testing.T) {
	mw, _ := testMiddleware(t, newMockRepository())

	called := false
	handler := mw.Authorize(shared.RolePublisher, shared.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	ctx := shared.ContextWithIdentity(req.Context(), &shared.Identity{ID: 1, Role: shared.RoleAdmin})
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.True(t, called)
}

func TestAuthorizeRejectsUnlistedRole(t *testing.T) {
	mw, _ := testMiddleware(t, newMockRepository())

	handler := mw.Authorize(shared.RolePublisher, shared.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	ctx := shared.ContextWithIdentity(req.Context(), &shared.Identity{ID: 1, Role: shared.RoleUser})
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "User role user is not authorized to access this route")
}

func TestAuthorizeNilIdentityFailsClosed(t *testing.T) {
	mw, _ := testMiddleware(t, newMockRepository())

	handler := mw.Authorize(shared.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	ctx := shared.ContextWithIdentity(req.Context(), nil)
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized to access this route")
}
