package middleware

import (
	"context"
	"net/http"
	"strings"

	"hrboard/internal/domain/auth"
	"hrboard/internal/transport/http/api"
)

type ctxKey string

const ctxKeyAdmin ctxKey = "admin"

// Auth parses a bearer token when present and attaches the admin identity to
// the request context. Requests without a valid token pass through
// anonymously; RequireAuth is the enforcement point.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, auth.AdminContext{
				AdminID: claims.AdminID,
				Email:   claims.Email,
				Role:    claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetAdmin(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetAdmin(ctx context.Context) (auth.AdminContext, bool) {
	admin, ok := ctx.Value(ctxKeyAdmin).(auth.AdminContext)
	return admin, ok
}
