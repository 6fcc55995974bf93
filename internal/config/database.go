package config

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"sofer_terminal/internal/models"
)

var (
	// DB is the globally accessible handle to the on-device replica store.
	DB *gorm.DB
)

// InitDB opens (or creates) the embedded replica database and migrates the
// schema. The driver is pure-Go sqlite so the terminal has no external
// database dependency.
func InitDB() {
	// Load .env if present; otherwise rely on real env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	path := getEnv("DB_PATH", "./sofer.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open replica database: %v", err)
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
		log.Fatalf("auto-migration failed: %v", err)
	}

	DB = db
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
