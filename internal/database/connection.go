package database

import (
	"errors"

	"github.com/thereayou/talkie/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (d *Database) Connect(dsn string) error {
	if dsn == "" {
		return errors.New("database dsn is empty")
	}

	// TranslateError нужен, чтобы ловить нарушения уникальных индексов
	// как gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.PublicChat{},
		&models.PrivateChat{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
