package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/junaidrashid-git/charm-studio-api/controllers/cart"
	designControllers "github.com/junaidrashid-git/charm-studio-api/controllers/design"
	"github.com/junaidrashid-git/charm-studio-api/middleware"
)

// SetupDesignRoutes registers all "/design/*" endpoints. Requires JWT middleware.
func SetupDesignRoutes(r *gin.Engine, s *Server) {
	designGroup := r.Group("/design")
	designGroup.Use(middleware.ValidateToken(s.JWTSecret))
	{
		designGroup.GET("", designControllers.GetDesign(s.Workspace)) // ?width=&height=&zoom=&pan_x=&pan_y=
		designGroup.DELETE("", designControllers.ClearDesign(s.Workspace))
		designGroup.PUT("/bracelet", designControllers.SetBracelet(s.Workspace))
		designGroup.POST("/charms", designControllers.AddCharm(s.Workspace))
		designGroup.PUT("/charms/order", designControllers.ReorderCharms(s.Workspace))
		designGroup.DELETE("/charms/:instance_id", designControllers.RemoveCharm(s.Workspace))
	}
}

// SetupCartRoutes registers all "/cart/*" endpoints. Requires JWT middleware.
func SetupCartRoutes(r *gin.Engine, s *Server) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(s.JWTSecret))
	{
		cartGroup.GET("", cartControllers.GetCart(s.Workspace))
		cartGroup.POST("", cartControllers.AddToCart(s.Workspace))
		cartGroup.DELETE("/:line_id", cartControllers.RemoveFromCart(s.Workspace))
		cartGroup.POST("/:line_id/edit", cartControllers.EditCartItem(s.Workspace))
	}
}
