package middleware

import (
	"net/http"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/response"
	"github.com/toninews/logbook-back/services"
	"github.com/toninews/logbook-back/userctx"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "access_token"

// VerifyJWT ensures the request carries a valid session cookie resolving to
// an active user, and puts the user's identity in the request context.
func VerifyJWT(authService services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				response.Fail(w, apperrors.New(http.StatusUnauthorized, apperrors.CodeUnauthenticated,
					"Not authenticated."))
				return
			}

			session, err := authService.VerifySession(r.Context(), cookie.Value)
			if err != nil {
				response.Fail(w, err)
				return
			}

			ctx := userctx.SetUserID(r.Context(), session.UserID)
			ctx = userctx.SetUserRole(ctx, session.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
