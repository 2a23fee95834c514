package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/charm-studio-api/checkout"
	catalogControllers "github.com/junaidrashid-git/charm-studio-api/controllers/catalog"
	designControllers "github.com/junaidrashid-git/charm-studio-api/controllers/design"
	"github.com/junaidrashid-git/charm-studio-api/design"
	"github.com/junaidrashid-git/charm-studio-api/session"
)

type AddToCartInput struct {
	// PreviewImage is an optional rendered bitmap of the canvas (data URL or hosted URL).
	PreviewImage string `json:"preview_image" binding:"max=1048576"`
}

type CartLineView struct {
	design.CartLineItem
	Total  float64             `json:"total"`
	Render checkout.RenderPlan `json:"render"`
}

type CartView struct {
	Lines []CartLineView `json:"lines"`
	Total float64        `json:"total"`
}

func newCartView(o *session.Open, width, height float64) CartView {
	st := o.Store.State()
	view := CartView{Lines: make([]CartLineView, 0, len(st.Cart)), Total: design.CartTotal(st)}
	for _, l := range st.Cart {
		ol := checkout.SnapshotForOrder([]design.CartLineItem{l})[0]
		view.Lines = append(view.Lines, CartLineView{
			CartLineItem: l,
			Total:        l.Total(),
			Render:       checkout.PlanRender(ol, o.Lookup, width, height),
		})
	}
	return view
}

func respondCart(c *gin.Context, ws *session.Workspace, o *session.Open, status int) {
	width, height, ok := catalogControllers.CanvasSize(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive numbers"})
		return
	}
	if !ws.Commit(c, o) {
		return
	}
	c.JSON(status, newCartView(o, width, height))
}

// GET /cart
func GetCart(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		respondCart(c, ws, o, http.StatusOK)
	}
}

// POST /cart snapshots the current design into a new line and empties the
// charm list. The bracelet stays selected.
func AddToCart(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddToCartInput
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return
			}
		}
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		if o.Store.State().Bracelet == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Select a bracelet first"})
			return
		}
		o.Store.AddToCart(input.PreviewImage)
		respondCart(c, ws, o, http.StatusCreated)
	}
}

// DELETE /cart/:line_id
func RemoveFromCart(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		o.Store.RemoveFromCart(c.Param("line_id"))
		respondCart(c, ws, o, http.StatusOK)
	}
}

// POST /cart/:line_id/edit moves the line back into the editor, restoring
// its bracelet and charm order, and returns the design.
func EditCartItem(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		lineID := c.Param("line_id")
		found := false
		for _, l := range o.Store.State().Cart {
			if l.ID == lineID {
				found = true
				break
			}
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		vp, ok := designControllers.ViewportFromQuery(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid viewport parameters"})
			return
		}
		o.Store.EditCartItem(lineID)
		if !ws.Commit(c, o) {
			return
		}
		c.JSON(http.StatusOK, designControllers.NewDesignView(o.Store.State(), vp))
	}
}
