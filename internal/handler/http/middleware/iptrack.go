package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/megamart/hr-backend-go/internal/domain/attendance"
	"github.com/megamart/hr-backend-go/internal/domain/user"
)

// HourlyIPTracker records the caller's IP address against their open
// attendance session on every authenticated request, for field roles only.
// Tracking is an audit side effect: failures are logged and the request
// always proceeds.
func HourlyIPTracker(svc attendance.AttendanceService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err == nil {
				role, _ := claims["role"].(string)
				userID, _ := claims["user_id"].(string)
				if user.Role(role) == user.RoleMarketingExecutive && userID != "" {
					if err := svc.RecordHourlyIP(r.Context(), userID, ClientIP(r)); err != nil {
						slog.Error("Hourly IP tracking failed", "user_id", userID, "error", err)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the request's remote address without the port. RealIP
// middleware has already folded X-Forwarded-For into RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
