package notify

import (
	"context"
	"sync"
	"time"

	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/quote_models"
	"github.com/transport-senegal/api/models/trip_models"
)

// DefaultTimeout bounds each channel delivery.
const DefaultTimeout = 10 * time.Second

// Lead is a freshly generated quote together with the form behind it.
type Lead struct {
	Quote   *quote_models.TripQuote
	Request trip_models.TripRequest
}

// Channel delivers a lead to one destination.
type Channel interface {
	Name() string
	NotifyLead(ctx context.Context, lead Lead) error
}

// LeadNotifier fans a lead out to every channel in the background.
// Delivery failures are logged and never reach the caller.
type LeadNotifier struct {
	channels []Channel
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewLeadNotifier(timeout time.Duration, channels ...Channel) *LeadNotifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	active := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if ch != nil {
			active = append(active, ch)
		}
	}
	return &LeadNotifier{channels: active, timeout: timeout}
}

// Notify returns immediately; each channel gets its own bounded context.
func (n *LeadNotifier) Notify(lead Lead) {
	if n == nil || lead.Quote == nil {
		return
	}
	for _, ch := range n.channels {
		n.wg.Add(1)
		go func(ch Channel) {
			defer n.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
			defer cancel()

			if err := ch.NotifyLead(ctx, lead); err != nil {
				logger.ErrorLogger.Errorf("Lead notification via %s failed for quote %s: %v", ch.Name(), lead.Quote.ID, err)
				return
			}
			logger.InfoLogger.Infof("Lead %s sent via %s", lead.Quote.ID, ch.Name())
		}(ch)
	}
}

// Wait blocks until in-flight notifications finish.
func (n *LeadNotifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}

// Channels lists the active channel names.
func (n *LeadNotifier) Channels() []string {
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.channels))
	for _, ch := range n.channels {
		names = append(names, ch.Name())
	}
	return names
}
