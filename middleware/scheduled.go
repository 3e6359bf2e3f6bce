package middleware

import (
	"net/http"
	"strings"

	"wrenchly/utils"

	"github.com/gin-gonic/gin"
)

// ScheduledTriggerSubject is the JWT subject the in-process scheduler signs
// its seed-trigger tokens with.
const ScheduledTriggerSubject = "seed-scheduler"

// ScheduledAuthMiddleware admits internal trigger calls signed with the
// application's own JWT secret. The cron scheduler uses it to hit the seed
// endpoint without a Firebase identity.
func ScheduledAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sub, err := utils.ExtractSubject(tokenString)
		if err != nil || sub != ScheduledTriggerSubject {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid trigger token"})
			return
		}
		c.Next()
	}
}
