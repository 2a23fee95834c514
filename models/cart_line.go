package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CartLine is one composed bracelet waiting in a session owner's cart.
// Charms and Positions hold JSON ([]CartCharm and map[instanceID]slot).
type CartLine struct {
	ID           string         `gorm:"primaryKey;size:36"`
	OwnerID      string         `gorm:"index;not null"` // actor id from the token
	Seq          int            `gorm:"not null"`       // order within the cart
	BraceletID   uint           `gorm:"not null"`
	Charms       datatypes.JSON `gorm:"not null"`
	Positions    datatypes.JSON
	PreviewImage string `gorm:"type:text"`
	CreatedAt    time.Time
}

// CartCharm is the persisted reference to one charm instance.
type CartCharm struct {
	InstanceID string `json:"instance_id"`
	CharmID    uint   `json:"charm_id"`
}

func LoadCartLines(db *gorm.DB, ownerID string) ([]CartLine, error) {
	var lines []CartLine
	if err := db.Where("owner_id = ?", ownerID).Order("seq ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ReplaceCartLines makes the stored cart of ownerID equal to lines:
// unknown ids are inserted, ids no longer present are deleted.
// Stored lines are immutable; only the seq of existing ids is refreshed.
func ReplaceCartLines(db *gorm.DB, ownerID string, lines []CartLine) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&CartLine{}).Where("owner_id = ?", ownerID).Pluck("id", &existing).Error; err != nil {
			return err
		}
		keep := make(map[string]bool, len(lines))
		for _, l := range lines {
			keep[l.ID] = true
		}
		var stale []string
		for _, id := range existing {
			if !keep[id] {
				stale = append(stale, id)
			}
		}
		if len(stale) > 0 {
			if err := tx.Where("owner_id = ? AND id IN ?", ownerID, stale).Delete(&CartLine{}).Error; err != nil {
				return err
			}
		}
		have := make(map[string]bool, len(existing))
		for _, id := range existing {
			have[id] = true
		}
		for i := range lines {
			if have[lines[i].ID] {
				if err := tx.Model(&CartLine{}).
					Where("owner_id = ? AND id = ?", ownerID, lines[i].ID).
					Update("seq", lines[i].Seq).Error; err != nil {
					return err
				}
				continue
			}
			lines[i].OwnerID = ownerID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func ClearCartLines(db *gorm.DB, ownerID string) error {
	return db.Where("owner_id = ?", ownerID).Delete(&CartLine{}).Error
}
