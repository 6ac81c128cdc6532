package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. web_pending marks quick orders placed through the web
// chat widget with placeholder customer details.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusShipped    = "shipped"
	StatusCanceled   = "canceled"
	StatusWebPending = "web_pending"
)

// Order represents a committed book order in the system
type Order struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	BookID       uint           `gorm:"not null;index" json:"book_id"` // foreign key to books table
	Book         Book           `gorm:"foreignKey:BookID" json:"book"`
	Quantity     int            `gorm:"not null;check:quantity > 0" json:"quantity"`
	CustomerName string         `gorm:"size:255;not null" json:"customer_name"`
	Phone        string         `gorm:"size:50;not null" json:"phone"`
	Address      string         `gorm:"size:255;not null" json:"address"`
	Status       string         `gorm:"size:50;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusCanceled, StatusWebPending:
		return true
	}
	return false
}

// HoldsStock reports whether an order in status s has stock deducted from
// its book. Every status except canceled holds stock.
func HoldsStock(s string) bool {
	return s != StatusCanceled
}
