package httpx

import (
	"errors"
	"net/http"
)

// ErrUnauthorized marks a request whose session token is missing, expired
// or malformed.
var ErrUnauthorized = errors.New("unauthorized")

// RespondError maps a known error to its problem response. Anything without
// a mapping becomes an opaque 500; the caller is expected to have logged
// the cause.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "session is missing or expired")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
