package notify

import (
	"context"
	"errors"

	"github.com/transport-senegal/api/utils/mail"
)

// EmailChannel mails the lead to the driver and, when enabled, a
// confirmation to the customer.
type EmailChannel struct {
	sender          mail.Sender
	driverEmail     string
	confirmCustomer bool
}

func NewEmailChannel(sender mail.Sender, driverEmail string, confirmCustomer bool) *EmailChannel {
	if sender == nil {
		return nil
	}
	return &EmailChannel{sender: sender, driverEmail: driverEmail, confirmCustomer: confirmCustomer}
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) NotifyLead(ctx context.Context, lead Lead) error {
	var errs []error

	if e.driverEmail != "" {
		msg, err := mail.LeadNotification(e.driverEmail, lead.Quote, lead.Request)
		if err == nil {
			err = e.sender.Send(ctx, msg)
		}
		errs = append(errs, err)
	}

	if e.confirmCustomer && lead.Request.CustomerEmail != "" {
		msg, err := mail.QuoteConfirmation(lead.Quote, lead.Request)
		if err == nil {
			err = e.sender.Send(ctx, msg)
		}
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
