package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/junaidrashid-git/charm-studio-api/controllers/admin"
	orderControllers "github.com/junaidrashid-git/charm-studio-api/controllers/order"
	"github.com/junaidrashid-git/charm-studio-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, s *Server) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(s.AdminAPIKey))
	{
		// ─────────── Catalog Management ───────────
		adminGroup.POST("/bracelets", adminController.CreateBracelet(s.DB, s.Assets, s.Logger))
		adminGroup.POST("/charms", adminController.CreateCharm(s.DB, s.Assets, s.Logger))
		adminGroup.DELETE("/charms/:id", adminController.DeleteCharm(s.DB, s.Assets, s.Logger))

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(s.Orders)) // ?user_id=
			orderAdmin.PUT("/:ref/status", orderControllers.UpdateOrderStatusHandler(s.Orders, s.Hub))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(s.Orders))

			// websocket endpoint for real-time order updates
			orderAdmin.GET("/ws", s.Hub.OrderWebSocketHandler)
		}
	}
}
