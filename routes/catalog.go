package routes

import (
	"github.com/gin-gonic/gin"

	catalogControllers "github.com/junaidrashid-git/charm-studio-api/controllers/catalog"
)

// SetupCatalogRoutes registers the public reference data and layout endpoints.
func SetupCatalogRoutes(r *gin.Engine, s *Server) {
	catalogGroup := r.Group("/catalog")
	{
		catalogGroup.GET("/bracelets", catalogControllers.ListBracelets(s.Catalog))
		catalogGroup.GET("/bracelets/:id/snap-points", catalogControllers.GetSnapPoints(s.Catalog))
		catalogGroup.GET("/charms", catalogControllers.ListCharms(s.Catalog)) // ?category=
		catalogGroup.GET("/categories", catalogControllers.ListCategories(s.Catalog))
	}

	r.GET("/layout/positions", catalogControllers.GetPositions) // ?count=&width=&height=
}
