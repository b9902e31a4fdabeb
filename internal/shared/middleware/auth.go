package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"nexload-backend/internal/shared/response"
	"nexload-backend/pkg/jwt"
)

// SessionCookieName is the HTTP-only cookie holding the session token.
const SessionCookieName = "nexload_session"

// Context keys set by RequireAuth.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxUserName  = "user_name"
)

// RequireAuth verifies an active session exists and short-circuits
// with 401 otherwise. It only proves a user is logged in; resource
// ownership is enforced in the service layer.
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		claims, err := manager.ValidateSessionToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserName, claims.Name)

		c.Next()
	}
}

// OptionalAuth populates the session identity when present but never
// rejects the request. Used by /auth/current_user.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := manager.ValidateSessionToken(token); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxUserEmail, claims.Email)
				c.Set(CtxUserName, claims.Name)
			}
		}
		c.Next()
	}
}

// extractToken reads the session token from the cookie, with a bearer
// header fallback for non-browser clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
