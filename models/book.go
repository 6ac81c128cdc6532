package models

import (
	"time"

	"gorm.io/gorm"
)

// Book represents a title in the bookstore catalog
type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null;index" json:"title"`
	Author    string         `gorm:"size:255;not null;index" json:"author"`
	Price     float64        `gorm:"not null;check:price >= 0" json:"price"`
	Stock     int            `gorm:"not null;default:0;check:stock >= 0" json:"stock"` // decremented on commit, restored on cancel
	Category  string         `gorm:"size:100;index" json:"category"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Book model
func (Book) TableName() string {
	return "books"
}
