// Package storetest opens throwaway in-memory replica databases for tests.
package storetest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sofer_terminal/internal/models"
	"sofer_terminal/internal/store"
)

// Open returns a Store backed by a fresh in-memory sqlite database with the
// full schema migrated.
func Open(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Operator{},
		&models.Employee{},
		&models.Vehicle{},
		&models.Route{},
		&models.Station{},
		&models.RouteStation{},
		&models.PriceList{},
		&models.PriceListItem{},
		&models.Ticket{},
		&models.Reservation{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return store.New(db)
}
