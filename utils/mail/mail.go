package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"sync"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/models/trip_models"
	gomail "gopkg.in/gomail.v2"
)

// Template names.
const (
	QuoteConfirmationTemplate = "quote_confirmation"
	LeadNotificationTemplate  = "lead_notification"
	ContactTemplate           = "contact"
)

const brand = "Transport Sénégal"

// ErrNotConfigured is returned when SMTP settings are missing.
var ErrNotConfigured = errors.New("smtp not configured")

//go:embed templates/*.html
var templateFS embed.FS

var (
	templatesOnce sync.Once
	templates     *template.Template
	templatesErr  error
)

// Message is one outgoing HTML email.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ContactForm is the payload of a contact email.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type templateData struct {
	Brand        string
	Subject      string
	CustomerName string
	Quote        *quote_models.TripQuote
	Request      trip_models.TripRequest
	Contact      ContactForm
}

func loadTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		templates, templatesErr = template.New("mail").
			Funcs(template.FuncMap{"xof": quote_models.FormatAmount}).
			ParseFS(templateFS, "templates/*.html")
	})
	return templates, templatesErr
}

// Render executes the named template ("quote_confirmation", ...).
func Render(name string, data any) (string, error) {
	t, err := loadTemplates()
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}
	var body bytes.Buffer
	if err := t.ExecuteTemplate(&body, name+".html", data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", name, err)
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// QuoteConfirmation builds the email sent to the customer with their quote.
func QuoteConfirmation(q *quote_models.TripQuote, req trip_models.TripRequest) (Message, error) {
	subject := fmt.Sprintf("Votre devis %s : %s → %s", q.ID, q.Departure, q.Destination)
	html, err := Render(QuoteConfirmationTemplate, templateData{
		Brand:        brand,
		Subject:      subject,
		CustomerName: req.CustomerName,
		Quote:        q,
		Request:      req,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{req.CustomerEmail}, Subject: subject, HTML: html}, nil
}

// LeadNotification builds the email sent to the driver for a new quote.
func LeadNotification(to string, q *quote_models.TripQuote, req trip_models.TripRequest) (Message, error) {
	subject := fmt.Sprintf("Nouveau devis %s : %s → %s (%s)", q.ID, q.Departure, q.Destination, req.CustomerName)
	html, err := Render(LeadNotificationTemplate, templateData{
		Brand:   brand,
		Subject: subject,
		Quote:   q,
		Request: req,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, ReplyTo: req.CustomerEmail, Subject: subject, HTML: html}, nil
}

// Contact builds a contact-form email addressed to the driver.
func Contact(to, subject string, form ContactForm) (Message, error) {
	if subject == "" {
		subject = "Message de " + form.Name
	}
	html, err := Render(ContactTemplate, templateData{
		Brand:   brand,
		Subject: subject,
		Contact: form,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, ReplyTo: form.Email, Subject: subject, HTML: html}, nil
}

// GomailSender sends through an SMTP server.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailSender(cfg config.SMTPConfig) (*GomailSender, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	return &GomailSender{dialer: dialer, from: cfg.From}, nil
}

func (s *GomailSender) newMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, brand))
	m.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return m
}

// Send dials the server and delivers msg, giving up when ctx is done.
// The SMTP exchange itself is not interruptible and finishes in the
// background.
func (s *GomailSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("mail: no recipient")
	}
	m := s.newMessage(msg)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to send email to %v: %v", msg.To, err)
			return fmt.Errorf("failed to send email: %w", err)
		}
		logger.InfoLogger.Infof("Sent email %q to %v", msg.Subject, msg.To)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send email: %w", ctx.Err())
	}
}
