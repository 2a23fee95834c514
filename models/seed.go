package models

import "gorm.io/gorm"

// Seed inserts a starter catalog when the bracelet table is empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Bracelet{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	love := CharmCategory{Name: "love"}
	sky := CharmCategory{Name: "sky"}
	letters := CharmCategory{Name: "letters"}

	bracelets := []Bracelet{
		{Name: "Classic Link", Price: 29.00, Material: "stainless steel", Color: "silver", Image: "/assets/bracelets/classic.png", OpenImage: "/assets/bracelets/classic-open.png"},
		{Name: "Snake Chain", Price: 34.50, Material: "stainless steel", Color: "gold", Image: "/assets/bracelets/snake.png", OpenImage: "/assets/bracelets/snake-open.png"},
		{Name: "Leather Cord", Price: 19.90, Material: "leather", Color: "black", Image: "/assets/bracelets/cord.png", OpenImage: "/assets/bracelets/cord-open.png", GrayscaleImage: true},
	}
	charms := []Charm{
		{Name: "Heart", Price: 6.00, Image: "/assets/charms/heart.png", Categories: []CharmCategory{love}},
		{Name: "Star", Price: 5.50, Image: "/assets/charms/star.png", Background: "/assets/charms/star-glow.png", Categories: []CharmCategory{sky}},
		{Name: "Moon", Price: 5.50, Image: "/assets/charms/moon.png", ModelURL: "/assets/models/moon.glb", Categories: []CharmCategory{sky}},
		{Name: "Letter A", Price: 4.00, Image: "/assets/charms/letter-a.png", Categories: []CharmCategory{letters}},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, cat := range []*CharmCategory{&love, &sky, &letters} {
			if err := tx.Create(cat).Error; err != nil {
				return err
			}
		}
		for i := range charms {
			for j, cat := range charms[i].Categories {
				switch cat.Name {
				case love.Name:
					charms[i].Categories[j] = love
				case sky.Name:
					charms[i].Categories[j] = sky
				case letters.Name:
					charms[i].Categories[j] = letters
				}
			}
		}
		if err := tx.Create(&bracelets).Error; err != nil {
			return err
		}
		return tx.Create(&charms).Error
	})
}
