package middleware

import (
	"net/http"
	"strings"

	"learnnote/internal/domain/models"
	"learnnote/internal/httputil"
)

// TokenVerifier validates a bearer token and yields the embedded identity
type TokenVerifier interface {
	Verify(tokenString string) (models.Identity, error)
}

// Auth authenticates every request except the public routes (signup, login,
// health). Handlers behind it can rely on httputil.GetIdentity.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Authorization header is missing")
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || scheme != "Bearer" || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Token is missing")
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid JWT")
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, identity))
		})
	}
}

func isPublic(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/health":
		return true
	case r.Method == http.MethodPost && r.URL.Path == "/api/users":
		return true
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		return true
	}
	return false
}
