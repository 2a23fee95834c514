package session

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/design"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

// LoadCart reads the owner's cart lines and joins them with the catalog.
// Lines whose bracelet has left the catalog are skipped.
func LoadCart(db *gorm.DB, ownerID string, lookup catalog.Lookup) ([]design.CartLineItem, error) {
	rows, err := models.LoadCartLines(db, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	out := make([]design.CartLineItem, 0, len(rows))
	for _, row := range rows {
		line, ok, err := fromRow(row, lookup)
		if err != nil {
			return nil, fmt.Errorf("cart line %s: %w", row.ID, err)
		}
		if ok {
			out = append(out, line)
		}
	}
	return out, nil
}

// SaveCart stores cart as the owner's full cart.
func SaveCart(db *gorm.DB, ownerID string, cart []design.CartLineItem) error {
	rows := make([]models.CartLine, 0, len(cart))
	for i, line := range cart {
		row, err := toRow(line, i)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	if err := models.ReplaceCartLines(db, ownerID, rows); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func toRow(line design.CartLineItem, seq int) (models.CartLine, error) {
	charms := make([]models.CartCharm, len(line.Charms))
	for i, c := range line.Charms {
		charms[i] = models.CartCharm{InstanceID: c.InstanceID, CharmID: c.Charm.ID}
	}
	rawCharms, err := json.Marshal(charms)
	if err != nil {
		return models.CartLine{}, err
	}
	rawPositions, err := json.Marshal(line.CharmPositions)
	if err != nil {
		return models.CartLine{}, err
	}
	return models.CartLine{
		ID:           line.ID,
		Seq:          seq,
		BraceletID:   line.Bracelet.ID,
		Charms:       datatypes.JSON(rawCharms),
		Positions:    datatypes.JSON(rawPositions),
		PreviewImage: line.PreviewImage,
	}, nil
}

func fromRow(row models.CartLine, lookup catalog.Lookup) (design.CartLineItem, bool, error) {
	b, ok := lookup.Bracelet(row.BraceletID)
	if !ok {
		return design.CartLineItem{}, false, nil
	}
	var charms []models.CartCharm
	if err := json.Unmarshal(row.Charms, &charms); err != nil {
		return design.CartLineItem{}, false, err
	}
	positions := map[string]int{}
	if len(row.Positions) > 0 {
		if err := json.Unmarshal(row.Positions, &positions); err != nil {
			return design.CartLineItem{}, false, err
		}
	}
	line := design.CartLineItem{
		ID:             row.ID,
		Bracelet:       b,
		Charms:         make([]design.CharmInstance, 0, len(charms)),
		CharmPositions: positions,
		PreviewImage:   row.PreviewImage,
	}
	for _, c := range charms {
		charm, ok := lookup.Charm(c.CharmID)
		if !ok {
			delete(line.CharmPositions, c.InstanceID)
			continue
		}
		line.Charms = append(line.Charms, design.CharmInstance{InstanceID: c.InstanceID, Charm: charm})
	}
	return line, true, nil
}
