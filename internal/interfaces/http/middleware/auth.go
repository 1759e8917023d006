// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/config"
	"github.com/jhuggee/marketplace-backend/internal/pkg/auth"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "user_id"
	ContextPhone  = "user_phone"
	ContextEmail  = "user_email"
	ContextRole   = "user_role"
	ContextClaims = "token_claims"
)

// AuthMiddleware validates the session token. The token is read from the
// session cookie first, falling back to the Authorization header for API
// clients.
func AuthMiddleware(cfg *config.Config, jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cfg.JWT.CookieName)
		if err != nil || tokenString == "" {
			tokenString = auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		}
		if tokenString == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextPhone, claims.Phone)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RequireRole ensures the authenticated user carries one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

// SellerMiddleware ensures the user is a seller or admin
func SellerMiddleware() gin.HandlerFunc {
	return RequireRole(auth.RoleSeller, auth.RoleAdmin)
}

// AdminMiddleware ensures the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RequireRole(auth.RoleAdmin)
}

// UserID returns the authenticated user's id from the request context
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// SessionClaims returns the full token claims from the request context
func SessionClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
