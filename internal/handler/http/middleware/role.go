package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/megamart/hr-backend-go/internal/domain/user"
	"github.com/megamart/hr-backend-go/internal/handler/http/response"
)

// RequireHR requires the HR or Admin role.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		if !user.Role(roleStr).IsHR() {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
