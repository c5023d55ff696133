package httpx

import (
	"errors"
	"net/http"

	"github.com/campdir/campdir/internal/shared"
)

// Error converts a domain error into the failure envelope. Ownership and
// role failures both map to 403; unexpected errors never surface their
// message to the client.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Fail(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, shared.ErrUnauthenticated):
		Fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Fail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrUpstream):
		Fail(w, http.StatusInternalServerError, err.Error())
	default:
		Fail(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
