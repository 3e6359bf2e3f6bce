// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"wrenchly/models"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// principalKey is the gin context key the auth middleware stores the caller
// under.
const principalKey = "principal"

// AuthMiddleware verifies the Firebase ID token from the Authorization
// header and stores the resulting Principal in the request context. Custom
// claims "admin" and "mechanic" become role flags.
func AuthMiddleware(client *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := client.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		email, _ := token.Claims["email"].(string)
		admin, _ := token.Claims["admin"].(bool)
		mechanic, _ := token.Claims["mechanic"].(bool)

		c.Set(principalKey, &models.Principal{
			UID:      token.UID,
			Email:    email,
			Admin:    admin,
			Mechanic: mechanic,
		})
		c.Next()
	}
}

// Principal returns the authenticated caller, or nil when the route skipped
// auth.
func Principal(c *gin.Context) *models.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*models.Principal)
	return p
}
