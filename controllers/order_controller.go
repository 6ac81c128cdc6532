package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ngocminh/bookstore-chatbot-api/config"
	"github.com/ngocminh/bookstore-chatbot-api/models"
	"github.com/ngocminh/bookstore-chatbot-api/services"
)

// CreateOrderRequest represents the request body for creating an order.
// Either book_id or title selects the book. Orders without customer
// details are recorded as web_pending quick orders with placeholder
// contact fields, the same shortcut the web chat widget uses.
type CreateOrderRequest struct {
	BookID       uint   `json:"book_id"`
	Title        string `json:"title"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - one-shot order creation
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	catalog := services.GetCatalogService()

	bookID := req.BookID
	if bookID == 0 {
		if req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Either book_id or title is required",
				},
			})
			return
		}
		book, err := catalog.FindBookByTitle(req.Title)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to search books",
				},
			})
			return
		}
		if book == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "BOOK_NOT_FOUND",
					"message": "No book matches the given title",
				},
			})
			return
		}
		bookID = book.ID
	}

	// Quick orders without contact details get placeholders, like the
	// original web chat flow
	name, phone, address := req.CustomerName, req.Phone, req.Address
	status := models.StatusPending
	if name == "" || phone == "" || address == "" {
		name, phone, address = "Khach Web", "000", "Web"
		status = models.StatusWebPending
	}

	order, err := catalog.CommitOrder(bookID, req.Quantity, name, phone, address, status)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - returns all orders, newest first
func ListOrders(c *gin.Context) {
	db := config.GetDB()

	var orders []models.Order
	if err := db.Preload("Book").Order("id DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - moves an
// order through its lifecycle. Canceling restores the book's stock;
// re-activating a canceled order deducts it again.
func UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be a number",
			},
		})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := services.GetCatalogService().UpdateOrderStatus(uint(id), req.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// respondOrderError maps catalog service errors onto HTTP responses
func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BOOK_NOT_FOUND",
				"message": "Book not found",
			},
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
	case errors.Is(err, services.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INSUFFICIENT_STOCK",
				"message": "Not enough stock to fulfill this order",
			},
		})
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Quantity must be positive",
			},
		})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown order status",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
	}
}
