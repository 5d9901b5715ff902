package middleware

import (
	"context"
	"net/http"

	"github.com/avolkhin/bucketlist/internal/handlers/render"
	"github.com/avolkhin/bucketlist/internal/handlers/userctx"
	"github.com/avolkhin/bucketlist/internal/models"
)

type authService interface {
	// Get request and return user if it authenticated or error
	Auth(ctx context.Context, r *http.Request) (models.User, error)
}

// AuthMiddleware rejects the request before the handler runs unless a
// valid bearer access token resolves to a stored user. Every failure
// kind collapses into the same 401 at this boundary
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := as.Auth(r.Context(), r)
			if err != nil {
				render.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
