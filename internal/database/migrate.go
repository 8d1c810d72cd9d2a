package database

import (
	"gorm.io/gorm"

	"github.com/abfall50/freelance-dashboard/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Client{},
		&domain.Mission{},
	)
}
