package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes the database connection. The driver is picked
// from DATABASE_URL: a postgres:// or postgresql:// URL connects to
// PostgreSQL, anything else is treated as a SQLite file path (the default
// single-file store the chatbot ships with).
func ConnectDatabase() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "data/bookstore.db"
		log.Println("DATABASE_URL not set, using default:", databaseURL)
	}

	var err error
	if IsPostgresURL(databaseURL) {
		DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	} else {
		if databaseURL != ":memory:" {
			if mkErr := os.MkdirAll(filepath.Dir(databaseURL), 0o755); mkErr != nil {
				return fmt.Errorf("failed to create database directory: %w", mkErr)
			}
		}
		DB, err = gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// IsPostgresURL reports whether url selects the PostgreSQL driver
func IsPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
