package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"superfamily/internal/auth"
)

type ContextKey string

const IdentityKey ContextKey = "identity"

// Identity is the authenticated caller, extracted from a verified token.
type Identity struct {
	ID    string
	Email string
	Role  string
}

// IdentityFrom returns the caller identity the gate attached to the request.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(Identity)
	return id, ok
}

// GateConfig classifies request paths by prefix.
type GateConfig struct {
	ProtectedPages []string
	ProtectedAPIs  []string
	GuestOnlyPages []string
}

func DefaultGateConfig() GateConfig {
	return GateConfig{
		ProtectedPages: []string{"/dashboard", "/transactions", "/categories", "/profile", "/family", "/settings"},
		ProtectedAPIs:  []string{"/api/account", "/api/families", "/api/transactions", "/api/categories", "/api/dashboard"},
		GuestOnlyPages: []string{"/login", "/register"},
	}
}

// Gate is the edge authentication middleware. It runs once per request,
// before any handler: protected API routes get a 401 envelope without a
// valid token, protected pages redirect to the login page, and logged-in
// users are bounced off guest-only pages. Valid tokens are forwarded with
// identity headers and a context identity attached.
func Gate(jwt *auth.JWT, cfg GateConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			isAPI := strings.HasPrefix(path, "/api/")

			token := extractToken(r)
			claims, valid := verifyToken(jwt, token)

			if !isAPI && hasPrefix(path, cfg.GuestOnlyPages) {
				// An expired token counts as no token here, otherwise an
				// expired session would bounce between /login and /dashboard.
				if valid {
					http.Redirect(w, r, "/dashboard", http.StatusTemporaryRedirect)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			var protected bool
			if isAPI {
				protected = hasPrefix(path, cfg.ProtectedAPIs)
			} else {
				protected = hasPrefix(path, cfg.ProtectedPages)
			}

			if !protected {
				next.ServeHTTP(w, r)
				return
			}

			if token == "" {
				reject(w, r, isAPI, path, "Token tidak ditemukan")
				return
			}
			if !valid {
				reject(w, r, isAPI, path, "Token tidak valid")
				return
			}

			identity := Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}

			r.Header.Set("x-user-id", identity.ID)
			r.Header.Set("x-user-email", identity.Email)
			r.Header.Set("x-user-role", identity.Role)

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyToken(jwt *auth.JWT, token string) (*auth.Claims, bool) {
	if token == "" {
		return nil, false
	}
	claims, err := jwt.Verify(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func reject(w http.ResponseWriter, r *http.Request, isAPI bool, path, message string) {
	if isAPI {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": message,
			"error":   "Unauthorized",
		})
		return
	}

	loginURL := "/login?redirect=" + url.QueryEscape(path)
	http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
}

// extractToken prefers the Authorization header over the token cookie.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}

	return ""
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
