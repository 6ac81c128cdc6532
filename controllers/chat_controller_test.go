package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ngocminh/bookstore-chatbot-api/config"
	"github.com/ngocminh/bookstore-chatbot-api/middleware"
	"github.com/ngocminh/bookstore-chatbot-api/models"
	"github.com/ngocminh/bookstore-chatbot-api/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupChatTestRouter(t *testing.T) *gin.Engine {
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
	}
	if err := db.Create(&books).Error; err != nil {
		t.Fatalf("Failed to seed test books: %v", err)
	}

	config.SetDB(db)
	services.InitCatalogService(db)
	services.InitChatService(services.GetCatalogService())

	router := gin.New()
	router.POST("/api/v1/chat", middleware.ConversationID(), HandleChatMessage)
	return router
}

func postChat(router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/v1/chat", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleChatMessageSearch(t *testing.T) {
	router := setupChatTestRouter(t)

	w := postChat(router, map[string]interface{}{"message": "tim Dac Nhan Tam"})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Contains(t, data["reply"], "Dac Nhan Tam - Dale Carnegie")
	assert.NotEmpty(t, data["conversation_id"], "A conversation id should be assigned")
}

func TestHandleChatMessageKeepsConversationState(t *testing.T) {
	router := setupChatTestRouter(t)

	w := postChat(router, map[string]interface{}{
		"conversation_id": "conv-order-1",
		"message":         "dat sach Dac Nhan Tam 2 quyen",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "conv-order-1", data["conversation_id"])
	assert.Contains(t, data["reply"], "Ho ten day du", "Book and quantity bound; bot asks for the name")

	// The next request on the same conversation continues the order
	w = postChat(router, map[string]interface{}{
		"conversation_id": "conv-order-1",
		"message":         "Nguyen Van A",
	})
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data = response["data"].(map[string]interface{})
	assert.Contains(t, data["reply"], "So dien thoai")
}

func TestHandleChatMessageValidation(t *testing.T) {
	router := setupChatTestRouter(t)

	// Missing message
	w := postChat(router, map[string]interface{}{"conversation_id": "c1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response["success"].(bool))
	errData := response["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errData["code"])

	// Malformed JSON
	req, _ := http.NewRequest("POST", "/api/v1/chat", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
