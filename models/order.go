package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Submitted at checkout
	OrderStatusCompleted OrderStatus = "completed" // Fulfilled downstream
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the minimal persisted snapshot of a checkout. Charms and
// bracelets are stored by id only and joined back to the catalog on display.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	OrderRef     string      `gorm:"uniqueIndex;size:64;not null" json:"order_ref"`
	UserID       string      `gorm:"index;not null" json:"user_id"`
	Lines        []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	TotalAmount  float64     `gorm:"type:decimal(10,2)" json:"total_amount"`
	Status       OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PreviewImage string      `gorm:"type:text" json:"preview_image,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

type OrderLine struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	OrderID      uint        `gorm:"index" json:"-"`
	Seq          int         `json:"seq"`
	BraceletID   uint        `json:"bracelet_id"`
	Items        []OrderItem `gorm:"foreignKey:OrderLineID;constraint:OnDelete:CASCADE" json:"items"`
	PreviewImage string      `gorm:"type:text" json:"preview_image,omitempty"`
	// Positions is the instanceID -> slot map, NULL for lines stored without one.
	Positions datatypes.JSON `json:"positions,omitempty"`
}

type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	OrderLineID uint   `gorm:"index" json:"-"`
	InstanceID  string `json:"instance_id"`
	CharmID     uint   `json:"charm_id"`
	BraceletID  uint   `json:"bracelet_id"`
}
