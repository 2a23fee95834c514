package designControllers

import (
	"github.com/junaidrashid-git/charm-studio-api/design"
	"github.com/junaidrashid-git/charm-studio-api/layout"
	"github.com/junaidrashid-git/charm-studio-api/models"
	"github.com/junaidrashid-git/charm-studio-api/viewport"
)

type PlacedCharm struct {
	InstanceID string       `json:"instance_id"`
	Charm      models.Charm `json:"charm"`
	// Placed is false when no slot exists for the instance; it is then not drawn.
	Placed bool    `json:"placed"`
	Slot   int     `json:"slot"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type ViewportView struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Zoom   float64      `json:"zoom"`
	Pan    layout.Point `json:"pan"`
	MaxPan layout.Point `json:"max_pan"`
}

type DesignView struct {
	Bracelet    *models.Bracelet `json:"bracelet"`
	Charms      []PlacedCharm    `json:"charms"`
	CharmCount  int              `json:"charm_count"`
	CharmLimit  int              `json:"charm_limit"`
	CanAddCharm bool             `json:"can_add_charm"`
	TotalPrice  float64          `json:"total_price"`
	CartCount   int              `json:"cart_count"`
	Viewport    ViewportView     `json:"viewport"`
}

// NewDesignView lays out the current charms on the viewport's canvas and
// maps each slot through the pan/zoom transform.
func NewDesignView(s design.State, vp *viewport.Viewport) DesignView {
	placements := s.Placements(vp.Width, vp.Height)
	view := DesignView{
		Bracelet:    s.Bracelet,
		Charms:      make([]PlacedCharm, 0, len(s.Charms)),
		CharmCount:  len(s.Charms),
		CharmLimit:  design.MaxCharms,
		CanAddCharm: s.CanAddCharm(),
		TotalPrice:  design.TotalPrice(s),
		CartCount:   len(s.Cart),
		Viewport: ViewportView{
			Width:  vp.Width,
			Height: vp.Height,
			Zoom:   vp.Zoom,
			Pan:    vp.Pan,
			MaxPan: vp.MaxPan(),
		},
	}
	for i, ci := range s.Charms {
		pc := PlacedCharm{InstanceID: ci.InstanceID, Charm: ci.Charm, Slot: -1}
		if i < len(placements) {
			p := vp.Transform(placements[i].Point)
			pc.Placed = true
			pc.Slot = placements[i].Slot
			pc.X, pc.Y = p.X, p.Y
		}
		view.Charms = append(view.Charms, pc)
	}
	return view
}
