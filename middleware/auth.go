package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"polyglot-blog-be/config"
	"polyglot-blog-be/models"
	"polyglot-blog-be/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

// userExists reports whether the token subject still has an account
var userExists = func(ctx context.Context, id string) bool {
	db := config.GetDB()
	if db == nil {
		return false
	}
	var count int64
	db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count)
	return count > 0
}

// ClaimsFrom returns the authenticated user's claims, if any
func ClaimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.Claims)
	return claims, ok && claims != nil
}

// WithClaims returns a copy of ctx carrying claims
func WithClaims(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

// AuthMiddleware validates JWT token
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS preflight never carries credentials
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondUnauthorized(w, "Authorization header required")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			utils.RespondUnauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := utils.ValidateJWT(token, config.Get().JWTSecret)
		if err != nil {
			utils.RespondUnauthorized(w, "Invalid or expired token")
			return
		}

		// Verify user still exists in database (not deleted)
		if !userExists(r.Context(), claims.UserID) {
			utils.RespondUnauthorized(w, "User not found or has been deleted")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireRole lets through users holding one of roles. Admins always pass.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				utils.RespondUnauthorized(w, "Unauthorized")
				return
			}

			role := models.Role(claims.Role)
			if role != models.RoleAdmin && !slices.Contains(roles, role) {
				utils.RespondForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a helper for admin-only routes
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(models.RoleAdmin)(next)
}

// RequireEditor allows editors and admins
func RequireEditor(next http.Handler) http.Handler {
	return RequireRole(models.RoleEditor)(next)
}

// CORSMiddleware handles CORS for the configured origins
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && slices.Contains(origins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")
			w.Header().Set("Access-Control-Max-Age", "86400") // Cache preflight for 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
