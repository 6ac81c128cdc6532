package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ngocminh/bookstore-chatbot-api/models"
	"gorm.io/gorm"
)

// Domain errors returned by the catalog service
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidStatus     = errors.New("invalid order status")
)

// CatalogService is the store contract the chatbot runs against: substring
// lookups over the catalog plus the atomic order commit and status updates.
type CatalogService interface {
	// FindBookByTitle returns the first book whose title contains text
	// (case-insensitive), or (nil, nil) when nothing matches
	FindBookByTitle(text string) (*models.Book, error)

	// FindBooksByAuthor returns all books whose author contains text
	FindBooksByAuthor(text string) ([]models.Book, error)

	// FindBooksByCategory returns all books whose category contains text
	FindBooksByCategory(text string) ([]models.Book, error)

	// CommitOrder atomically decrements the book's stock and inserts the
	// order. Fails with ErrInsufficientStock when quantity exceeds the
	// stock at commit time.
	CommitOrder(bookID uint, quantity int, customerName, phone, address, status string) (*models.Order, error)

	// UpdateOrderStatus moves an order to newStatus. Entering canceled
	// restores the order quantity to the book's stock; leaving canceled
	// re-deducts it and fails with ErrInsufficientStock when the book no
	// longer has enough.
	UpdateOrderStatus(orderID uint, newStatus string) (*models.Order, error)
}

// GormCatalogService implements CatalogService on a gorm database
type GormCatalogService struct {
	db *gorm.DB
}

var catalogServiceInstance CatalogService

// InitCatalogService initializes the catalog service with a database handle
func InitCatalogService(db *gorm.DB) CatalogService {
	catalogServiceInstance = &GormCatalogService{db: db}
	return catalogServiceInstance
}

// GetCatalogService returns the initialized catalog service instance
func GetCatalogService() CatalogService {
	return catalogServiceInstance
}

// SetCatalogService sets the catalog service instance (primarily for testing)
func SetCatalogService(service CatalogService) {
	catalogServiceInstance = service
}

// NewGormCatalogService creates a catalog service bound to db
func NewGormCatalogService(db *gorm.DB) *GormCatalogService {
	return &GormCatalogService{db: db}
}

// likePattern builds a case-insensitive LIKE pattern. LOWER() on both sides
// keeps the query portable between SQLite and PostgreSQL.
func likePattern(text string) string {
	return "%" + strings.ToLower(strings.TrimSpace(text)) + "%"
}

// FindBookByTitle returns the first matching book or (nil, nil) on a miss
func (s *GormCatalogService) FindBookByTitle(text string) (*models.Book, error) {
	var book models.Book
	err := s.db.Where("LOWER(title) LIKE ?", likePattern(text)).Order("id").First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search books by title: %w", err)
	}
	return &book, nil
}

// FindBooksByAuthor returns all books matching the author substring
func (s *GormCatalogService) FindBooksByAuthor(text string) ([]models.Book, error) {
	var books []models.Book
	if err := s.db.Where("LOWER(author) LIKE ?", likePattern(text)).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to search books by author: %w", err)
	}
	return books, nil
}

// FindBooksByCategory returns all books matching the category substring
func (s *GormCatalogService) FindBooksByCategory(text string) ([]models.Book, error) {
	var books []models.Book
	if err := s.db.Where("LOWER(category) LIKE ?", likePattern(text)).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to search books by category: %w", err)
	}
	return books, nil
}

// CommitOrder decrements the book's stock and inserts the order in one
// transaction. The decrement is a guarded relative update: the stock
// comparison runs inside the UPDATE itself, so two concurrent commits can
// never both pass a stale check and oversell the book. This matters on
// PostgreSQL, where plain read-then-write transactions do not serialize.
func (s *GormCatalogService) CommitOrder(bookID uint, quantity int, customerName, phone, address, status string) (*models.Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		res := tx.Model(&models.Book{}).
			Where("id = ? AND stock >= ?", bookID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The guard saw less stock than quantity at update time
			return ErrInsufficientStock
		}

		order = models.Order{
			BookID:       book.ID,
			Quantity:     quantity,
			CustomerName: customerName,
			Phone:        phone,
			Address:      address,
			Status:       status,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	// Load the book relationship to return complete data
	if err := s.db.Preload("Book").First(&order, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load order details: %w", err)
	}
	return &order, nil
}

// UpdateOrderStatus applies a status transition and its stock side effect
// in one transaction.
func (s *GormCatalogService) UpdateOrderStatus(orderID uint, newStatus string) (*models.Order, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		wasHolding := models.HoldsStock(order.Status)
		willHold := models.HoldsStock(newStatus)

		if wasHolding != willHold {
			if willHold {
				// Re-activating a canceled order deducts again, with the
				// same guarded relative update CommitOrder uses
				res := tx.Model(&models.Book{}).
					Where("id = ? AND stock >= ?", order.BookID, order.Quantity).
					Update("stock", gorm.Expr("stock - ?", order.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return ErrInsufficientStock
				}
			} else {
				// Canceling restores the held quantity
				if err := tx.Model(&models.Book{}).
					Where("id = ?", order.BookID).
					Update("stock", gorm.Expr("stock + ?", order.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&order).Update("status", newStatus).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Book").First(&order, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load order details: %w", err)
	}
	return &order, nil
}
