package email_controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/transport-senegal/api/badwords"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/models/trip_models"
	"github.com/transport-senegal/api/utils"
	"github.com/transport-senegal/api/utils/mail"
	"github.com/transport-senegal/api/utils/sanitize"
)

const sendTimeout = 15 * time.Second

// SendEmailRequest is the POST /api/send-email body.
type SendEmailRequest struct {
	Template string `json:"template" binding:"required,oneof=contact quote_confirmation"`
	QuoteID  string `json:"quoteId" binding:"required_if=Template quote_confirmation,max=64"`
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Phone    string `json:"phone" binding:"max=30"`
	Subject  string `json:"subject" binding:"max=200"`
	Message  string `json:"message" binding:"required_if=Template contact,max=4000"`
}

// EmailController sends transactional emails.
type EmailController struct {
	Sender      mail.Sender
	Engine      *quote_models.Engine
	DriverEmail string
}

// NewEmailController creates an EmailController. A nil sender disables the
// endpoint.
func NewEmailController(sender mail.Sender, engine *quote_models.Engine, driverEmail string) *EmailController {
	return &EmailController{Sender: sender, Engine: engine, DriverEmail: driverEmail}
}

// SendEmail renders the requested template and delivers it.
func (ec *EmailController) SendEmail(c *gin.Context) {
	if ec.Sender == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Email is not configured"})
		return
	}

	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": utils.ValidationDetails(err)})
		return
	}
	req.Name = sanitize.Text(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = sanitize.Text(req.Phone)
	req.Subject = sanitize.Text(req.Subject)
	req.Message = sanitize.Multiline(req.Message)
	if req.Template == mail.ContactTemplate && req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": gin.H{"message": "is required"}})
		return
	}

	var (
		msg mail.Message
		err error
	)
	switch req.Template {
	case mail.ContactTemplate:
		msg, err = ec.contactMessage(req)
	case mail.QuoteConfirmationTemplate:
		msg, err = ec.quoteMessage(c, req)
	}

	switch {
	case errors.Is(err, utils.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Email is not configured"})
		return
	case errors.Is(err, utils.ErrInappropriate):
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrInappropriate.Error()})
		return
	case errors.Is(err, quote_models.ErrQuoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	case err != nil:
		logger.ErrorLogger.Errorf("Failed to prepare %s email: %v", req.Template, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare email"})
		return
	}

	ctx, cancel := utils.RequestContext(c, sendTimeout)
	defer cancel()
	if err := ec.Sender.Send(ctx, msg); err != nil {
		logger.ErrorLogger.Errorf("Failed to send %s email: %v", req.Template, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent"})
}

func (ec *EmailController) contactMessage(req SendEmailRequest) (mail.Message, error) {
	if ec.DriverEmail == "" {
		return mail.Message{}, utils.ErrNotConfigured
	}
	if badwords.ContainsBadWords(req.Subject + " " + req.Message) {
		return mail.Message{}, utils.ErrInappropriate
	}
	return mail.Contact(ec.DriverEmail, req.Subject, mail.ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
}

func (ec *EmailController) quoteMessage(c *gin.Context, req SendEmailRequest) (mail.Message, error) {
	if ec.Engine == nil {
		return mail.Message{}, utils.ErrNotConfigured
	}
	quote, err := ec.Engine.Find(c.Request.Context(), strings.TrimSpace(req.QuoteID))
	if err != nil {
		return mail.Message{}, err
	}
	return mail.QuoteConfirmation(quote, trip_models.TripRequest{
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
	})
}
