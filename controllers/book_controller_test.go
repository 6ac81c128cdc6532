package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ngocminh/bookstore-chatbot-api/config"
	"github.com/ngocminh/bookstore-chatbot-api/models"
	"github.com/ngocminh/bookstore-chatbot-api/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBookTestRouter(t *testing.T) (*gin.Engine, []models.Book) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Book{}, &models.Order{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	books := []models.Book{
		{Title: "Dac Nhan Tam", Author: "Dale Carnegie", Price: 120000, Stock: 15, Category: "Ky nang"},
		{Title: "Nha Gia Kim", Author: "Paulo Coelho", Price: 90000, Stock: 10, Category: "Tieu thuyet"},
		{Title: "Sach Mat Biec", Author: "Nguyen Nhat Anh", Price: 85000, Stock: 20, Category: "Van hoc"},
	}
	if err := db.Create(&books).Error; err != nil {
		t.Fatalf("Failed to seed test books: %v", err)
	}

	config.SetDB(db)
	services.InitCatalogService(db)

	router := gin.New()
	router.GET("/api/v1/books", ListBooks)
	router.GET("/api/v1/books/search", SearchBooks)
	router.GET("/api/v1/books/:id", GetBook)
	return router, books
}

func getJSON(t *testing.T, router *gin.Engine, url string) (int, map[string]interface{}) {
	t.Helper()
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestListBooks(t *testing.T) {
	router, books := setupBookTestRouter(t)

	code, response := getJSON(t, router, "/api/v1/books")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, response["success"].(bool))

	data := response["data"].([]interface{})
	assert.Len(t, data, len(books))
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Dac Nhan Tam", first["title"])
}

func TestGetBook(t *testing.T) {
	router, books := setupBookTestRouter(t)

	code, response := getJSON(t, router, "/api/v1/books/1")
	assert.Equal(t, http.StatusOK, code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, books[0].Title, data["title"])
	assert.Equal(t, float64(books[0].Stock), data["stock"])

	code, response = getJSON(t, router, "/api/v1/books/9999")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "BOOK_NOT_FOUND", response["error"].(map[string]interface{})["code"])

	code, response = getJSON(t, router, "/api/v1/books/abc")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_REQUEST", response["error"].(map[string]interface{})["code"])
}

func TestSearchBooks(t *testing.T) {
	router, _ := setupBookTestRouter(t)

	tests := []struct {
		name          string
		url           string
		expectedCode  int
		expectedLen   int
		expectedTitle string
	}{
		{"by title substring", "/api/v1/books/search?title=mat+biec", http.StatusOK, 1, "Sach Mat Biec"},
		{"by author", "/api/v1/books/search?author=nguyen", http.StatusOK, 1, "Sach Mat Biec"},
		{"by category", "/api/v1/books/search?category=tieu+thuyet", http.StatusOK, 1, "Nha Gia Kim"},
		{"title miss is empty list", "/api/v1/books/search?title=khong+ton+tai", http.StatusOK, 0, ""},
		{"no query parameter", "/api/v1/books/search", http.StatusBadRequest, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, response := getJSON(t, router, tt.url)
			assert.Equal(t, tt.expectedCode, code)
			if tt.expectedCode != http.StatusOK {
				assert.False(t, response["success"].(bool))
				return
			}

			data := response["data"].([]interface{})
			assert.Len(t, data, tt.expectedLen)
			if tt.expectedLen > 0 {
				first := data[0].(map[string]interface{})
				assert.Equal(t, tt.expectedTitle, first["title"])
			}
		})
	}
}
