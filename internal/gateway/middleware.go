package gateway

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/session"
)

// SessionMiddleware binds the request's bearer token and user to the
// storefront session. The gateway fronts a single storefront session,
// so the session context is process-wide; the token is whatever the
// login screen obtained from the auth API.
func SessionMiddleware(sess *session.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				sess.Tokens().Set(strings.TrimPrefix(auth, "Bearer "))
			}
			if raw := r.Header.Get("X-User-ID"); raw != "" {
				if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
					if sess.User().ID != id {
						sess.SignIn(domain.User{ID: id}, sess.Tokens().Token())
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDMiddleware tags each request with a unique id, reusing the
// client's X-Request-ID when present.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}
