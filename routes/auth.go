package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/charm-studio-api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, s *Server) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestUser(s.DB, s.JWTSecret, s.Logger))
	}
}
