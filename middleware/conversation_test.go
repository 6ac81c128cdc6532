package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupConversationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/turn", ConversationID(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"conversation_id": GetConversationID(c)})
	})
	return router
}

func TestConversationIDMintedWhenMissing(t *testing.T) {
	router := setupConversationRouter()

	req, _ := http.NewRequest("GET", "/turn", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(ConversationIDHeader)
	assert.NotEmpty(t, id, "Response should carry a conversation id")

	_, err := uuid.Parse(id)
	assert.NoError(t, err, "Minted conversation id should be a UUID")
}

func TestConversationIDEchoedWhenPresent(t *testing.T) {
	router := setupConversationRouter()

	req, _ := http.NewRequest("GET", "/turn", nil)
	req.Header.Set(ConversationIDHeader, "conversation-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "conversation-42", w.Header().Get(ConversationIDHeader))
	assert.Contains(t, w.Body.String(), "conversation-42")
}

func TestGetConversationIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetConversationID(c))
}
