package testutil

import (
	"os"
	"testing"

	"github.com/ngocminh/bookstore-chatbot-api/models"
	"gorm.io/gorm"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against a real bookstore database.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}

	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// SeedCatalog inserts the catalog every HTTP-level test runs against and
// returns the rows in insertion order.
func SeedCatalog(t *testing.T, db *gorm.DB) []models.Book {
	t.Helper()

	books := []models.Book{
		{Title: "Dac Nhan Tam", Author: "Dale Carnegie", Price: 120000, Stock: 15, Category: "Ky nang"},
		{Title: "Nha Gia Kim", Author: "Paulo Coelho", Price: 90000, Stock: 10, Category: "Tieu thuyet"},
		{Title: "Sach Mat Biec", Author: "Nguyen Nhat Anh", Price: 85000, Stock: 20, Category: "Van hoc"},
	}
	if err := db.Create(&books).Error; err != nil {
		t.Fatalf("Failed to seed test catalog: %v", err)
	}
	return books
}
