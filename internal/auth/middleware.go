package auth

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package. A
// package-private type means only this package can read or write the
// principal stored in a request context.
type contextKey string

const principalKey contextKey = "principal"

// CookieName is the session cookie holding the signed token.
const CookieName = "session"

// RequireAuth enforces authentication on protected routes.
//
// It reads the session JWT from the HttpOnly cookie, validates it, and
// stores the reconstructed Principal in the request context. Missing or
// invalid tokens end the chain with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := extractPrincipal(r, tokens)
			if err != nil {
				deny(w, http.StatusUnauthorized, `{"status":"error","error":"unauthenticated","message":"login required"}`)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin enforces the admin role on the reporting surface. It must be
// mounted inside a RequireAuth chain (it re-validates the cookie itself, so
// it is also safe standalone).
//
// The admin is an ordinary identity-store account with the admin role flag —
// there is no hardcoded credential pair anywhere.
func RequireAdmin(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := extractPrincipal(r, tokens)
			if err != nil {
				deny(w, http.StatusUnauthorized, `{"status":"error","error":"unauthenticated","message":"login required"}`)
				return
			}
			if !p.IsAdmin() {
				deny(w, http.StatusForbidden, `{"status":"error","error":"forbidden","message":"admin access required"}`)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext retrieves the authenticated principal from the
// request context. Returns (zero, false) for anonymous requests.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok && p.UserID != 0
}

// deny writes a pre-built JSON rejection, matching the envelope the
// handler layer uses for every other error.
func deny(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body + "\n"))
}

// extractPrincipal reads the session cookie and validates it. Shared by
// RequireAuth and RequireAdmin.
func extractPrincipal(r *http.Request, tokens *TokenService) (Principal, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Principal{}, err
	}

	return tokens.Validate(cookie.Value)
}
