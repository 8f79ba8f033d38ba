package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/agrostack/farmkeep/internal/model"
)

// Open opens (or creates) the SQLite database file at path and migrates
// the schema. The glebarez driver is CGO-free, so the binary stays
// portable.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Task{},
		&model.Inventory{},
		&model.Expense{},
		&model.Journal{},
		&model.Product{},
		&model.SellerProfile{},
		&model.Payment{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}
