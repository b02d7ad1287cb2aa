package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/transport-senegal/api/models/quote_models"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramChannel posts leads into a Telegram chat.
type TelegramChannel struct {
	bot    botSender
	chatID int64
}

// NewTelegramChannel authenticates the bot token against the Bot API.
func NewTelegramChannel(token string, chatID int64) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramChannel{bot: bot, chatID: chatID}, nil
}

func (t *TelegramChannel) Name() string { return "telegram" }

// NotifyLead sends one message. The Bot API client has no context support,
// so ctx is only checked before sending.
func (t *TelegramChannel) NotifyLead(ctx context.Context, lead Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, LeadText(lead))
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// LeadText is the plain-text summary of a lead.
func LeadText(lead Lead) string {
	q, req := lead.Quote, lead.Request

	var b strings.Builder
	fmt.Fprintf(&b, "Nouveau devis %s\n", q.ID)
	fmt.Fprintf(&b, "%s → %s\n", q.Departure, q.Destination)
	fmt.Fprintf(&b, "%s à %s, %d passager(s), %s\n", req.Date, req.Time, req.Passengers, q.Vehicle.Name)
	fmt.Fprintf(&b, "%s %s (%.0f km, %s)\n", quote_models.FormatAmount(q.TotalPrice), q.Currency, q.DistanceKm, q.Duration)
	fmt.Fprintf(&b, "Client : %s, %s, %s", req.CustomerName, req.CustomerPhone, req.CustomerEmail)
	if req.SpecialRequests != "" {
		fmt.Fprintf(&b, "\nDemandes : %s", req.SpecialRequests)
	}
	if !q.Persisted {
		b.WriteString("\n(non enregistré en base)")
	}
	return b.String()
}
