package checkout

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/junaidrashid-git/charm-studio-api/design"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

// SnapshotForOrder reduces cart lines to what an order keeps: bracelet and
// charm ids per instance, the slot map and the preview image. Full catalog
// objects are dropped and joined back on display.
func SnapshotForOrder(lines []design.CartLineItem) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(lines))
	for i, l := range lines {
		ol := models.OrderLine{
			Seq:          i,
			BraceletID:   l.Bracelet.ID,
			Items:        make([]models.OrderItem, 0, len(l.Charms)),
			PreviewImage: l.PreviewImage,
		}
		for _, c := range l.Charms {
			ol.Items = append(ol.Items, models.OrderItem{
				InstanceID: c.InstanceID,
				CharmID:    c.Charm.ID,
				BraceletID: l.Bracelet.ID,
			})
		}
		if len(l.CharmPositions) > 0 {
			if raw, err := json.Marshal(l.CharmPositions); err == nil {
				ol.Positions = datatypes.JSON(raw)
			}
		}
		out = append(out, ol)
	}
	return out
}

// orderPreview is the first line preview, used as the order thumbnail.
func orderPreview(lines []models.OrderLine) string {
	for _, l := range lines {
		if l.PreviewImage != "" {
			return l.PreviewImage
		}
	}
	return ""
}
