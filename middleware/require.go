package middleware

import (
	"net/http"

	authcore "github.com/cmestre/authcore"
)

// Require combines [Guard] with a role check: the request proceeds only when
// the verified caller's role permits op. Verification failures are 401,
// authorization failures 403.
func Require(engine *authcore.Engine, op authcore.Operation) func(http.Handler) http.Handler {
	guard := Guard(engine)
	return func(next http.Handler) http.Handler {
		return guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if err := engine.Authorize(claims, op); err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
