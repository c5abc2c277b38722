package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Zubair-hussain/xovato-tech/pkg/httputil"
)

type contextKeyType string

const adminEmailKey contextKeyType = "admin_email"

// Claims represents the session claims extracted by the auth middleware.
type Claims struct {
	Email string `json:"email"`
}

// TokenValidator is a function that validates a bearer token and returns
// claims. This lets the application inject its own session validation logic.
type TokenValidator func(token string) (*Claims, error)

// Auth middleware validates bearer session tokens and injects the moderator
// identity into context. Responses are deliberately uniform: callers learn
// only that the request was unauthorized, never why.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w)
				return
			}

			claims, err := validate(parts[1])
			if err != nil {
				writeAuthError(w)
				return
			}

			ctx := context.WithValue(r.Context(), adminEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminEmailFromContext extracts the authenticated moderator email from the
// request context.
func AdminEmailFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(adminEmailKey).(string); ok {
		return email
	}
	return ""
}

func writeAuthError(w http.ResponseWriter) {
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "unauthorized"},
	})
}
