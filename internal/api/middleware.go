// Package api implements the AutoVitrine REST API using chi.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rlimports/autovitrine/internal/apperr"
)

// AdminAuth returns middleware guarding the admin surface with the shared
// secret. Requests must carry "Authorization: Bearer <secret>". There is no
// lockout or backoff: the gate is a plain binary admin toggle.
func AdminAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorBody(apperr.ErrUnauthorized.Error()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
