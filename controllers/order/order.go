package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/auth"
	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/checkout"
	catalogControllers "github.com/junaidrashid-git/charm-studio-api/controllers/catalog"
	"github.com/junaidrashid-git/charm-studio-api/design"
	"github.com/junaidrashid-git/charm-studio-api/models"
	"github.com/junaidrashid-git/charm-studio-api/session"
)

// -------- Request Structs --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Views --------

type OrderLineView struct {
	models.OrderLine
	Render checkout.RenderPlan `json:"render"`
}

type OrderView struct {
	models.Order
	Lines []OrderLineView `json:"lines"`
}

func newOrderView(o models.Order, lookup catalog.Lookup, width, height float64) OrderView {
	view := OrderView{Order: o, Lines: make([]OrderLineView, 0, len(o.Lines))}
	for _, l := range o.Lines {
		view.Lines = append(view.Lines, OrderLineView{
			OrderLine: l,
			Render:    checkout.PlanRender(l, lookup, width, height),
		})
	}
	return view
}

// -------- Handlers --------

// POST /orders/place submits the caller's cart. The cart is cleared once
// the order is stored.
func PlaceOrderHandler(db *gorm.DB, ws *session.Workspace, svc *checkout.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		st := o.Store.State()
		total := design.CartTotal(st)

		ref, err := svc.SubmitOrder(c.Request.Context(), auth.ActorFrom(c), st.Cart, total)
		switch {
		case errors.Is(err, checkout.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		case errors.Is(err, checkout.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": checkout.ErrPersistence.Error()})
			return
		}

		if err := models.ClearCartLines(db.WithContext(c.Request.Context()), o.OwnerID); err != nil {
			logger.Error("clear cart after order failed", zap.String("order_ref", ref), zap.Error(err))
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":      "Order placed successfully",
			"order_ref":    ref,
			"total_amount": total,
		})
	}
}

// GET /orders
func GetUserOrdersHandler(store *checkout.GormStore, cat session.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.ActorFrom(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		width, height, ok := catalogControllers.CanvasSize(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive numbers"})
			return
		}
		orders, err := store.ListOrders(c.Request.Context(), actor.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		lookup := cat.Snapshot(c.Request.Context())
		views := make([]OrderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, newOrderView(o, lookup, width, height))
		}
		c.JSON(http.StatusOK, views)
	}
}

// GET /orders/:ref
func GetOrderByRefHandler(store *checkout.GormStore, cat session.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.ActorFrom(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		width, height, ok := catalogControllers.CanvasSize(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive numbers"})
			return
		}
		order, err := store.GetOrder(c.Request.Context(), c.Param("ref"))
		if errors.Is(err, checkout.ErrOrderNotFound) || (err == nil && order.UserID != actor.ID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, newOrderView(order, cat.Snapshot(c.Request.Context()), width, height))
	}
}

// GET /admin/orders
func GetAllOrdersHandler(store *checkout.GormStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := store.ListOrders(c.Request.Context(), c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:ref/status
func UpdateOrderStatusHandler(store *checkout.GormStore, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := checkout.ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := store.UpdateStatus(c.Request.Context(), c.Param("ref"), newStatus)
		switch {
		case errors.Is(err, checkout.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		case errors.Is(err, checkout.ErrStatusTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if hub != nil {
			hub.PublishStatus(order)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "status": order.Status})
	}
}
