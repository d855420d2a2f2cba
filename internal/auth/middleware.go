package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mnzmnz10/yeter-sub001/internal/platform/httpx"
)

// TokenFromRequest pulls the session token from the Authorization header,
// falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireSession rejects requests without a live session and stores the
// session in the request context for handlers downstream.
func (s *Service) RequireSession(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			ok, err := s.Validate(r.Context(), token)
			if err != nil {
				logger.Error("validate session", slog.Any("error", err))
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !ok {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			ctx := ContextWithSession(r.Context(), &Session{Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
