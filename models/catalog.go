package models

import (
	"time"

	"gorm.io/gorm"
)

type Bracelet struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	// Image is the closed/default product shot; OpenImage is the open chain
	// used as the composition backdrop.
	Image             string         `json:"image"`
	OpenImage         string         `json:"open_image"`
	ImagePublicID     string         `json:"-"`
	OpenImagePublicID string         `json:"-"`
	Material          string         `json:"material"`
	Color             string         `json:"color"`
	GrayscaleImage    bool           `json:"grayscale_image"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

type Charm struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string          `gorm:"not null" json:"name"`
	Description        string          `json:"description"`
	Price              float64         `gorm:"type:decimal(10,2);not null" json:"price"`
	Image              string          `json:"image"`
	ImagePublicID      string          `json:"-"`
	ModelURL           string          `json:"model_url,omitempty"` // optional 3D model
	Background         string          `json:"background,omitempty"`
	BackgroundPublicID string          `json:"-"`
	Categories         []CharmCategory `gorm:"many2many:charm_category_links;" json:"categories"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

type CharmCategory struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string  `gorm:"unique;not null" json:"name"`
	Charms []Charm `gorm:"many2many:charm_category_links" json:"-"`
}

// Clone returns a copy that shares no slices with c.
func (c Charm) Clone() Charm {
	out := c
	if c.Categories != nil {
		out.Categories = make([]CharmCategory, len(c.Categories))
		for i, cat := range c.Categories {
			cat.Charms = nil
			out.Categories[i] = cat
		}
	}
	return out
}

// HasCategory reports whether the charm is tagged with name.
func (c Charm) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return true
		}
	}
	return false
}
