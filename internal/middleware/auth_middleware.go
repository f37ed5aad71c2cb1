package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/auth"
)

// TenantIDKey is the gin context key holding the resolved tenant id.
const TenantIDKey = "tenant_id"

// JWTAuthMiddleware resolves the acting tenant from the bearer token and
// stores it on the request context. Every core route sits behind it.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		tenantStr, err := auth.ParseToken(parts[1], []byte(jwtSecret))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		tenantID, err := uuid.Parse(tenantStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid tenant ID in token"})
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// RequireTenantID returns the tenant resolved for this request. The
// boolean is false only when the middleware did not run, which a handler
// reports as an authentication failure.
func RequireTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	tenantID, ok := value.(uuid.UUID)
	return tenantID, ok
}

// TenantID is the nullable variant of RequireTenantID for routes that
// merely record who acted, if anyone.
func TenantID(c *gin.Context) *uuid.UUID {
	if tenantID, ok := RequireTenantID(c); ok {
		return &tenantID
	}
	return nil
}
