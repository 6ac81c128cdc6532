package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ngocminh/bookstore-chatbot-api/middleware"
	"github.com/ngocminh/bookstore-chatbot-api/services"
)

// ChatRequest represents the request body for one chat turn
type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" binding:"required"`
}

// HandleChatMessage handles POST /api/v1/chat - one conversation turn.
// A missing conversation_id gets a fresh one, returned in the response so
// the client can keep the conversation going.
func HandleChatMessage(c *gin.Context) {
	var req ChatRequest
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

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = middleware.GetConversationID(c)
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	reply := services.GetChatService().HandleTurn(conversationID, req.Message)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"conversation_id": conversationID,
			"reply":           reply,
		},
	})
}
