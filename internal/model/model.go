package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Document":
		return db.AutoMigrate(Document{})

	case "DownloadLink":
		return db.AutoMigrate(DownloadLink{})
	}
	return nil
}
