package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireStaff rejects callers that carry neither the admin nor the mechanic
// claim. Must run after AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c)
		if p == nil || (!p.Admin && !p.Mechanic) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c)
		if p == nil || !p.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
