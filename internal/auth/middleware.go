package auth

import (
	"net/http"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

// RequireAuth resolves the bearer token and stores the identity in context.
// Requests without a valid token receive a 401 problem response.
func RequireAuth(tokens *shared.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := tokens.Resolve(r.Context(), shared.FromRequest(r))
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "đăng nhập hết hạn")
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), identity)))
		})
	}
}
