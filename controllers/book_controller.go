package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ngocminh/bookstore-chatbot-api/config"
	"github.com/ngocminh/bookstore-chatbot-api/models"
	"github.com/ngocminh/bookstore-chatbot-api/services"
)

// ListBooks handles GET /api/v1/books - returns the full catalog
func ListBooks(c *gin.Context) {
	db := config.GetDB()

	var books []models.Book
	if err := db.Order("id").Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load books",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    books,
	})
}

// GetBook handles GET /api/v1/books/:id - returns a single book
func GetBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Book ID must be a number",
			},
		})
		return
	}

	db := config.GetDB()
	var book models.Book
	if err := db.First(&book, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BOOK_NOT_FOUND",
				"message": "Book not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    book,
	})
}

// SearchBooks handles GET /api/v1/books/search - substring search by
// title, author or category query parameter (first one present wins)
func SearchBooks(c *gin.Context) {
	catalog := services.GetCatalogService()

	var (
		books []models.Book
		err   error
	)
	switch {
	case c.Query("title") != "":
		var book *models.Book
		book, err = catalog.FindBookByTitle(c.Query("title"))
		if book != nil {
			books = []models.Book{*book}
		}
	case c.Query("author") != "":
		books, err = catalog.FindBooksByAuthor(c.Query("author"))
	case c.Query("category") != "":
		books, err = catalog.FindBooksByCategory(c.Query("category"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "One of title, author or category is required",
			},
		})
		return
	}

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

	if books == nil {
		books = []models.Book{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    books,
	})
}
