package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/junaidrashid-git/charm-studio-api/controllers/order"
	"github.com/junaidrashid-git/charm-studio-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, s *Server) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(s.JWTSecret))
	{
		// Submit the cart (signed-in users only)
		orders.POST("/place", orderControllers.PlaceOrderHandler(s.DB, s.Workspace, s.Checkout, s.Logger))

		// Order history of the caller
		orders.GET("", orderControllers.GetUserOrdersHandler(s.Orders, s.Catalog))
		orders.GET("/:ref", orderControllers.GetOrderByRefHandler(s.Orders, s.Catalog))
	}
}
