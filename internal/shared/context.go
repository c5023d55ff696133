package shared

import "context"

// Role values form a closed enumeration; accounts hold exactly one.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// Identity is the authenticated principal resolved for a single request.
// It lives only in the request context and is never persisted.
type Identity struct {
	ID   int64
	Role string
}

type identityContextKey struct{}

// ContextWithIdentity stores the resolved identity in context.
func ContextWithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, ident)
}

// IdentityFromContext extracts the identity from context. A nil result means
// the request is unauthenticated or its account no longer exists.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityContextKey{}).(*Identity)
	return ident
}

// OwnerOrAdmin is the single ownership predicate used by every controller:
// a record may be mutated by its owning identity or by an admin.
func OwnerOrAdmin(ident *Identity, ownerID int64) bool {
	if ident == nil {
		return false
	}
	return ident.Role == RoleAdmin || ident.ID == ownerID
}
