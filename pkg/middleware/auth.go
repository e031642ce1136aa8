package middleware

import (
	"net/http"
	"strings"

	"pricelist-manager/pkg/utils"

	"go.uber.org/zap"
)

// CookieName is the auth cookie set on login and cleared on logout
const CookieName = "auth-token"

// ExtractToken reads the auth token from the auth-token cookie, falling
// back to the Authorization header
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// SetAuthCookie stores the signed token as an HTTP-only cookie
func SetAuthCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

// ClearAuthCookie expires the auth cookie on the client
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// Auth middleware validates the token and injects identity into the
// request context and the x-user-* headers for downstream handlers
func Auth(jwtConfig utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			claims, err := utils.ParseToken(token, jwtConfig)
			if err != nil {
				logger.Warn("Invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				// Stale cookie forces re-authentication client-side
				ClearAuthCookie(w)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := utils.ParseUUID(claims.UserID)
			if err != nil {
				logger.Warn("Token carries malformed user ID", zap.String("user_id", claims.UserID))
				ClearAuthCookie(w)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Downstream handlers read identity from headers or context
			r.Header.Set("x-user-id", claims.UserID)
			r.Header.Set("x-user-email", claims.Email)
			r.Header.Set("x-user-role", claims.Role)

			ctx := utils.SetUserContext(r.Context(), userID, claims.Email, claims.Role)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth injects identity when a valid token is present but lets
// anonymous requests through. Used on public catalog reads so logged-in
// users see their level prices.
func OptionalAuth(jwtConfig utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := utils.ParseToken(token, jwtConfig)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := utils.ParseUUID(claims.UserID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Allow is the single authorization policy: given the subject's role and
// the action/resource pair, decide access. Handlers never check role
// strings themselves.
func Allow(role, action, resource string) bool {
	if role == "ADMIN" {
		return true
	}

	// Regular users only reach their own-profile and order endpoints;
	// everything routed through RequireAdmin is denied here.
	switch resource {
	case "profile", "order":
		return true
	}

	_ = action
	return false
}

// RequireAdmin middleware guards admin route groups
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !Allow(role, r.Method, "admin") {
				userID, _ := utils.GetUserIDFromContext(r.Context())
				logger.Warn("Non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
