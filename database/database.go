package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/config"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

// Connect opens the database and migrates the schema. The handle is
// returned to the caller and injected where needed; there is no
// package-level pool.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Student{},
		&models.Teacher{},
		&models.Class{},
		&models.TimetableEntry{},
		&models.Attendance{},
		&models.Mark{},
		&models.Announcement{},
		&models.Achievement{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
