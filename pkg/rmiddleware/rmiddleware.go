package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
)

// RoleMiddleware allows the request through only when the authenticated
// user's role matches one of requiredRoles. AuthMiddleware must run first.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := middleware.GetUserRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		for _, required := range requiredRoles {
			if strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// AdminMiddleware is a convenience middleware for admin-only access.
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("ADMIN")
}

// OwnerMiddleware is a convenience middleware for turf-owner-only access.
func OwnerMiddleware() gin.HandlerFunc {
	return RoleMiddleware("OWNER")
}

// OwnerOrAdminMiddleware allows turf owners and admins.
func OwnerOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("OWNER", "ADMIN")
}
