package catalogControllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/layout"
)

// GET /catalog/bracelets
func ListBracelets(p *catalog.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, p.ListBracelets(c.Request.Context()))
	}
}

// GET /catalog/charms?category=
func ListCharms(p *catalog.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, p.ListCharms(c.Request.Context(), c.Query("category")))
	}
}

// GET /catalog/categories
func ListCategories(p *catalog.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, p.ListCharmCategories(c.Request.Context()))
	}
}

// GET /catalog/bracelets/:id/snap-points
func GetSnapPoints(p *catalog.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bracelet id"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"bracelet_id": id,
			"custom":      p.HasCustomSnapPoints(uint(id)),
			"points":      p.SnapPoints(uint(id)),
			"width":       layout.DesignWidth,
			"height":      layout.DesignHeight,
		})
	}
}

// GET /layout/positions?count=&width=&height=
func GetPositions(c *gin.Context) {
	count, err := strconv.Atoi(c.Query("count"))
	if err != nil || count < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a non-negative integer"})
		return
	}
	width, height, ok := CanvasSize(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive numbers"})
		return
	}
	positions := layout.ComputePositions(count, width, height)
	if positions == nil {
		positions = []layout.Point{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     count,
		"width":     width,
		"height":    height,
		"positions": positions,
	})
}

// CanvasSize reads width and height from the query, defaulting to the
// design space.
func CanvasSize(c *gin.Context) (float64, float64, bool) {
	width, ok := positiveQuery(c, "width", layout.DesignWidth)
	if !ok {
		return 0, 0, false
	}
	height, ok := positiveQuery(c, "height", layout.DesignHeight)
	if !ok {
		return 0, 0, false
	}
	return width, height, true
}

func positiveQuery(c *gin.Context, key string, def float64) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
