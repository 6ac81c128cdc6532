package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConversationIDHeader carries the conversation id between client and API
const ConversationIDHeader = "X-Conversation-ID"

const conversationIDKey = "conversation_id"

// ConversationID propagates the client's conversation id, minting a fresh
// one when the request does not carry the header. The id is echoed back in
// the response so the client can reuse it on the next turn.
func ConversationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(ConversationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(conversationIDKey, id)
		c.Header(ConversationIDHeader, id)
		c.Next()
	}
}

// GetConversationID returns the conversation id assigned to this request,
// or "" when the middleware did not run.
func GetConversationID(c *gin.Context) string {
	return c.GetString(conversationIDKey)
}
