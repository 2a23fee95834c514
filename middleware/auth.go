package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/charm-studio-api/auth"
)

// ValidateToken requires a valid HS256 token in Authorization and attaches
// its actor to the request. Guest tokens pass; handlers that need a
// signed-in user check auth.Actor.Authenticated.
func ValidateToken(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		actor, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		auth.SetActor(c, actor)
		c.Next()
	}
}
