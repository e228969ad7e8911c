package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/response"
)

const bearerPrefix = "Bearer "

// RequireWriteToken guards mutating endpoints with a shared-secret credential.
// An explicit X-Write-Token header takes precedence over a Bearer token in the
// Authorization header. The comparison is constant-time in the credential
// content; a length mismatch short-circuits to failure inside the primitive.
func RequireWriteToken(expectedToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received := r.Header.Get("X-Write-Token")

			if received == "" {
				if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
					received = strings.TrimSpace(auth[len(bearerPrefix):])
				}
			}

			if expectedToken == "" {
				response.Fail(w, apperrors.New(http.StatusInternalServerError, apperrors.CodeWriteTokenMissing,
					"WRITE_TOKEN is not configured on the server."))
				return
			}

			if received == "" {
				response.Fail(w, apperrors.New(http.StatusUnauthorized, apperrors.CodeTokenMissing,
					"Write token missing."))
				return
			}

			if subtle.ConstantTimeCompare([]byte(received), []byte(expectedToken)) != 1 {
				response.Fail(w, apperrors.New(http.StatusUnauthorized, apperrors.CodeTokenInvalid,
					"Write token invalid."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
