package repository

import (
	"fmt"
	"os"

	"github.com/collabroomhq/collabroom-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.CollabRoom{},
		&models.RoomMember{},
		&models.Channel{},
		&models.ChannelMember{},
		&models.ChannelMessage{},
		&models.RefreshToken{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
