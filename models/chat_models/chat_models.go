package chat_models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/shared_models"
)

// Message is one turn of prior conversation sent by the widget.
type Message struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,max=4000"`
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Message   string    `json:"message" binding:"required,max=2000"`
	SessionID string    `json:"sessionId" binding:"omitempty,max=64"`
	History   []Message `json:"history" binding:"max=20,dive"`
}

// ChatResponse is returned to the widget.
type ChatResponse struct {
	Reply        string `json:"reply"`
	Provider     string `json:"provider"`
	Demo         bool   `json:"demo"`
	FallbackUsed bool   `json:"fallbackUsed"`
	SessionID    string `json:"sessionId"`
}

// ChatExchange is one stored question/answer pair.
type ChatExchange struct {
	ID          uuid.UUID
	SessionID   string
	UserMessage string
	Reply       string
	Provider    string
	Demo        bool
	CreatedAt   time.Time
}

func NewChatExchange(sessionID, userMessage string, resp ChatResponse) *ChatExchange {
	return &ChatExchange{
		ID:          shared_models.GenerateUUIDv7(),
		SessionID:   sessionID,
		UserMessage: userMessage,
		Reply:       resp.Reply,
		Provider:    resp.Provider,
		Demo:        resp.Demo,
		CreatedAt:   time.Now().UTC(),
	}
}

// InsertChatExchange writes one exchange.
func InsertChatExchange(ctx context.Context, db shared_models.DBTX, ex *ChatExchange) error {
	query := `
		INSERT INTO chat_exchanges (id, session_id, user_message, reply, provider, demo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := db.Exec(ctx, query,
		ex.ID, ex.SessionID, ex.UserMessage, ex.Reply, ex.Provider, ex.Demo, ex.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert chat exchange: %w", err)
	}
	return nil
}

// LogExchangeAsync stores the exchange in the background. Failures are only
// logged.
func LogExchangeAsync(db shared_models.DBTX, ex *ChatExchange) {
	if db == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), shared_models.PersistTimeout)
		defer cancel()
		if err := InsertChatExchange(ctx, db, ex); err != nil {
			logger.WarnLogger.Warnf("Chat exchange %s not stored: %v", ex.ID, err)
		}
	}()
}
