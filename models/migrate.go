package models

import "gorm.io/gorm"

// Migrate auto-migrates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&GuestUser{},
		&Bracelet{},
		&Charm{},
		&CharmCategory{},
		&CartLine{},
		&Order{},
		&OrderLine{},
		&OrderItem{},
	)
}
