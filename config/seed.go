package config

import (
	"fmt"
	"log"

	"github.com/ngocminh/bookstore-chatbot-api/models"
	"gorm.io/gorm"
)

// SampleBooks is the starter catalog inserted into an empty database
var SampleBooks = []models.Book{
	{Title: "Dac Nhan Tam", Author: "Dale Carnegie", Price: 120000, Stock: 15, Category: "Ky nang"},
	{Title: "Nha Gia Kim", Author: "Paulo Coelho", Price: 90000, Stock: 10, Category: "Tieu thuyet"},
	{Title: "Tu duy nhanh va cham", Author: "Daniel Kahneman", Price: 160000, Stock: 8, Category: "Khoa hoc"},
	{Title: "Sach Mat Biec", Author: "Nguyen Nhat Anh", Price: 85000, Stock: 20, Category: "Van hoc"},
	{Title: "Python Co Ban", Author: "Nguyen Van A", Price: 150000, Stock: 25, Category: "CNTT"},
}

// SeedBooks inserts the sample catalog when the books table is empty.
// A database that already has books is left untouched.
func SeedBooks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		return nil
	}

	books := make([]models.Book, len(SampleBooks))
	copy(books, SampleBooks)
	if err := db.Create(&books).Error; err != nil {
		return fmt.Errorf("failed to seed books: %w", err)
	}

	log.Printf("Seeded %d sample books", len(books))
	return nil
}
