package checkout

import (
	"encoding/json"

	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/layout"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

type RenderMode string

const (
	// RenderPreview draws the stored bitmap.
	RenderPreview RenderMode = "preview"
	// RenderReconstructed places charm overlays from the stored slot map.
	RenderReconstructed RenderMode = "reconstructed"
	// RenderPlaceholder shows a generic image; nothing reliable is stored.
	RenderPlaceholder RenderMode = "placeholder"
)

// Overlay is one charm drawn over the bracelet backdrop.
type Overlay struct {
	InstanceID string       `json:"instance_id"`
	Charm      models.Charm `json:"charm"`
	Slot       int          `json:"slot"`
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
}

// RenderPlan says how an order line is drawn in order history.
type RenderPlan struct {
	Mode         RenderMode       `json:"mode"`
	PreviewImage string           `json:"preview_image,omitempty"`
	Bracelet     *models.Bracelet `json:"bracelet,omitempty"`
	Backdrop     string           `json:"backdrop,omitempty"`
	Overlays     []Overlay        `json:"overlays,omitempty"`
	// Charms lists every charm of the line that still resolves, in order.
	Charms []models.Charm `json:"charms"`
}

// PlanRender prefers the stored preview, then rebuilds overlays from the
// stored slot map on a width×height canvas, and otherwise falls back to a
// placeholder. Charms missing from the catalog are left out.
func PlanRender(line models.OrderLine, resolver catalog.Lookup, width, height float64) RenderPlan {
	plan := RenderPlan{Mode: RenderPlaceholder, Charms: []models.Charm{}}
	if b, ok := resolver.Bracelet(line.BraceletID); ok {
		plan.Bracelet = &b
		plan.Backdrop = b.OpenImage
		if plan.Backdrop == "" {
			plan.Backdrop = b.Image
		}
	}
	charms := make(map[string]models.Charm, len(line.Items))
	for _, it := range line.Items {
		if c, ok := resolver.Charm(it.CharmID); ok {
			charms[it.InstanceID] = c
			plan.Charms = append(plan.Charms, c)
		}
	}

	if line.PreviewImage != "" {
		plan.Mode = RenderPreview
		plan.PreviewImage = line.PreviewImage
		return plan
	}

	slots, ok := decodeSlots(line)
	if !ok || plan.Bracelet == nil {
		return plan
	}
	for _, p := range layout.PlaceFromSlots(slots, len(line.Items), width, height) {
		c, ok := charms[p.InstanceID]
		if !ok {
			continue
		}
		plan.Overlays = append(plan.Overlays, Overlay{
			InstanceID: p.InstanceID,
			Charm:      c,
			Slot:       p.Slot,
			X:          p.X,
			Y:          p.Y,
		})
	}
	plan.Mode = RenderReconstructed
	return plan
}

func decodeSlots(line models.OrderLine) (map[string]int, bool) {
	if len(line.Positions) == 0 || string(line.Positions) == "null" {
		return nil, false
	}
	var slots map[string]int
	if err := json.Unmarshal(line.Positions, &slots); err != nil || len(slots) == 0 {
		return nil, false
	}
	return slots, true
}
