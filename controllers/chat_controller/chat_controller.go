package chat_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/badwords"
	"github.com/transport-senegal/api/clients"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/chat_models"
	"github.com/transport-senegal/api/models/shared_models"
	"github.com/transport-senegal/api/utils"
	"github.com/transport-senegal/api/utils/sanitize"
)

const (
	maxMessageRunes = 2000
	maxHistoryRunes = 4000
)

// ChatController proxies visitor questions to the travel advisor.
type ChatController struct {
	Selector *clients.Selector
	DB       shared_models.DBTX
}

// NewChatController creates a ChatController. db may be nil; exchanges are
// then not stored.
func NewChatController(selector *clients.Selector, db shared_models.DBTX) *ChatController {
	return &ChatController{Selector: selector, DB: db}
}

func buildPrompt(history []chat_models.Message, message string) clients.ChatRequest {
	req := clients.ChatRequest{System: clients.SystemPrompt}
	for _, m := range history {
		content := sanitize.Truncate(sanitize.Multiline(m.Content), maxHistoryRunes)
		if content == "" {
			continue
		}
		req.Messages = append(req.Messages, clients.Message{Role: m.Role, Content: content})
	}
	req.Messages = append(req.Messages, clients.Message{Role: clients.RoleUser, Content: message})
	return req
}

// Chat answers one visitor message. Vendor failures never surface: the
// selector falls back to the demo responder.
func (cc *ChatController) Chat(c *gin.Context) {
	var req chat_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": utils.ValidationDetails(err)})
		return
	}

	message := sanitize.Truncate(sanitize.Multiline(req.Message), maxMessageRunes)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": gin.H{"message": "is required"}})
		return
	}
	if badwords.ContainsBadWords(message) {
		logger.WarnLogger.Warnf("Chat message rejected for language, session %q", req.SessionID)
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrInappropriate.Error()})
		return
	}

	sessionID := sanitize.Text(req.SessionID)
	if sessionID == "" {
		sessionID = shared_models.GenerateUUIDv7().String()
	}

	reply := cc.Selector.Ask(c.Request.Context(), buildPrompt(req.History, message))

	resp := chat_models.ChatResponse{
		Reply:        reply.Text,
		Provider:     reply.Provider,
		Demo:         reply.Demo,
		FallbackUsed: reply.FallbackUsed,
		SessionID:    sessionID,
	}
	chat_models.LogExchangeAsync(cc.DB, chat_models.NewChatExchange(sessionID, message, resp))

	c.JSON(http.StatusOK, resp)
}
