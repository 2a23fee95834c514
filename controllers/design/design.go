package designControllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogControllers "github.com/junaidrashid-git/charm-studio-api/controllers/catalog"
	"github.com/junaidrashid-git/charm-studio-api/design"
	"github.com/junaidrashid-git/charm-studio-api/layout"
	"github.com/junaidrashid-git/charm-studio-api/session"
	"github.com/junaidrashid-git/charm-studio-api/viewport"
)

type SetBraceletInput struct {
	BraceletID uint `json:"bracelet_id" binding:"required"`
}

type AddCharmInput struct {
	CharmID uint `json:"charm_id" binding:"required"`
}

type OrderedCharm struct {
	InstanceID string `json:"instance_id" binding:"required"`
	// CharmID may be omitted for instances already in the design.
	CharmID uint `json:"charm_id"`
}

type ReorderInput struct {
	Charms []OrderedCharm `json:"charms" binding:"max=7,dive"`
}

// ViewportFromQuery reads width, height, zoom, pan_x and pan_y. Values are
// clamped the way the viewport clamps user input.
func ViewportFromQuery(c *gin.Context) (*viewport.Viewport, bool) {
	width, height, ok := catalogControllers.CanvasSize(c)
	if !ok {
		return nil, false
	}
	vp := viewport.New(width, height)
	zoom, ok := floatQuery(c, "zoom", viewport.MinZoom)
	if !ok {
		return nil, false
	}
	panX, ok := floatQuery(c, "pan_x", 0)
	if !ok {
		return nil, false
	}
	panY, ok := floatQuery(c, "pan_y", 0)
	if !ok {
		return nil, false
	}
	vp.SetZoom(zoom)
	vp.SetPan(layout.Point{X: panX, Y: panY})
	return vp, true
}

func floatQuery(c *gin.Context, key string, def float64) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// respond saves the workspace and renders it on the requested viewport.
func respond(c *gin.Context, ws *session.Workspace, o *session.Open, status int) {
	vp, ok := ViewportFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid viewport parameters"})
		return
	}
	if !ws.Commit(c, o) {
		return
	}
	c.JSON(status, NewDesignView(o.Store.State(), vp))
}

// GET /design
func GetDesign(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		respond(c, ws, o, http.StatusOK)
	}
}

// PUT /design/bracelet
func SetBracelet(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SetBraceletInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		b, found := o.Lookup.Bracelet(input.BraceletID)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bracelet does not exist"})
			return
		}
		o.Store.SetBracelet(&b)
		respond(c, ws, o, http.StatusOK)
	}
}

// POST /design/charms
func AddCharm(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddCharmInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		charm, found := o.Lookup.Charm(input.CharmID)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Charm does not exist"})
			return
		}
		if !o.Store.State().CanAddCharm() {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Charm limit reached",
				"limit": design.MaxCharms,
			})
			return
		}
		o.Store.AddCharm(charm)
		respond(c, ws, o, http.StatusCreated)
	}
}

// DELETE /design/charms/:instance_id
func RemoveCharm(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		o.Store.RemoveCharm(c.Param("instance_id"))
		respond(c, ws, o, http.StatusOK)
	}
}

// PUT /design/charms/order replaces the ordered charm list wholesale.
// Entries with a charm_id that name no current instance get a fresh
// instance id.
func ReorderCharms(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ReorderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		current := make(map[string]design.CharmInstance, len(o.Store.State().Charms))
		for _, ci := range o.Store.State().Charms {
			current[ci.InstanceID] = ci
		}
		seen := make(map[string]struct{}, len(input.Charms))
		next := make([]design.CharmInstance, 0, len(input.Charms))
		for _, oc := range input.Charms {
			if _, dup := seen[oc.InstanceID]; dup {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate charm instance: " + oc.InstanceID})
				return
			}
			seen[oc.InstanceID] = struct{}{}

			ci, found := current[oc.InstanceID]
			switch {
			case found && (oc.CharmID == 0 || oc.CharmID == ci.Charm.ID):
				next = append(next, ci)
			case found:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Charm instance belongs to another charm: " + oc.InstanceID})
				return
			case oc.CharmID == 0:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown charm instance: " + oc.InstanceID})
				return
			default:
				charm, ok := o.Lookup.Charm(oc.CharmID)
				if !ok {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Charm does not exist"})
					return
				}
				next = append(next, design.CharmInstance{InstanceID: uuid.NewString(), Charm: charm})
			}
		}
		o.Store.ReorderCharms(next)
		respond(c, ws, o, http.StatusOK)
	}
}

// DELETE /design removes every charm. The bracelet and the cart stay.
func ClearDesign(ws *session.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := ws.Begin(c)
		if !ok {
			return
		}
		o.Store.Dispatch(design.ClearSelection{})
		respond(c, ws, o, http.StatusOK)
	}
}
