package clients

import (
	"context"
	"time"

	"github.com/transport-senegal/api/config"
	"github.com/transport-senegal/api/logger"
)

// Reply is what the travel advisor answered and who answered it.
type Reply struct {
	Text         string `json:"text"`
	Provider     string `json:"provider"`
	Demo         bool   `json:"demo"`
	FallbackUsed bool   `json:"fallbackUsed"`
}

// ProviderStatus is reported by the health endpoint.
type ProviderStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
	Primary    bool   `json:"primary"`
}

// Selector routes a prompt to the first configured vendor, tries one fallback
// on failure and ends at the demo responder. Ask never fails.
type Selector struct {
	providers []Provider
	fallbacks map[string]string
	timeout   time.Duration
	demo      DemoResponder
}

type SelectorOption func(*Selector)

// WithFallback designates to as the provider tried when from fails.
func WithFallback(from, to string) SelectorOption {
	return func(s *Selector) {
		s.fallbacks[from] = to
	}
}

// NewSelector keeps providers in priority order.
func NewSelector(providers []Provider, timeout time.Duration, opts ...SelectorOption) *Selector {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	s := &Selector{
		providers: providers,
		fallbacks: map[string]string{},
		timeout:   timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProvidersFromConfig builds the vendor list in priority order.
func ProvidersFromConfig(cfg config.AIConfig) []Provider {
	return []Provider{
		NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model),
		NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model),
		NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model),
		NewMistralClient(cfg.Mistral.APIKey, cfg.Mistral.Model),
	}
}

// NewSelectorFromConfig wires the vendors, timeout and fallback mapping
// from configuration.
func NewSelectorFromConfig(cfg config.AIConfig) *Selector {
	opts := make([]SelectorOption, 0, len(cfg.Fallbacks))
	for from, to := range cfg.Fallbacks {
		opts = append(opts, WithFallback(from, to))
	}
	return NewSelector(ProvidersFromConfig(cfg), cfg.Timeout, opts...)
}

// Primary returns the first configured provider, or nil.
func (s *Selector) Primary() Provider {
	for _, p := range s.providers {
		if p.Configured() {
			return p
		}
	}
	return nil
}

// ActiveProvider names the provider that answers first.
func (s *Selector) ActiveProvider() string {
	if p := s.Primary(); p != nil {
		return p.Name()
	}
	return DemoProviderName
}

func (s *Selector) fallbackFor(primary Provider) Provider {
	if name, ok := s.fallbacks[primary.Name()]; ok {
		for _, p := range s.providers {
			if p.Name() == name && p.Name() != primary.Name() && p.Configured() {
				return p
			}
		}
		return nil
	}

	seenPrimary := false
	for _, p := range s.providers {
		if p.Name() == primary.Name() {
			seenPrimary = true
			continue
		}
		if seenPrimary && p.Configured() {
			return p
		}
	}
	return nil
}

// Ask answers req. Errors from vendors are logged and replaced by the next
// option in the chain.
func (s *Selector) Ask(ctx context.Context, req ChatRequest) Reply {
	primary := s.Primary()
	if primary == nil {
		return s.demoReply(req, false)
	}

	text, err := s.call(ctx, primary, req)
	if err == nil {
		return Reply{Text: text, Provider: primary.Name()}
	}
	logger.WarnLogger.Warnf("AI provider %s failed (quota=%t): %v", primary.Name(), IsQuotaError(err), err)

	if fallback := s.fallbackFor(primary); fallback != nil {
		text, err := s.call(ctx, fallback, req)
		if err == nil {
			return Reply{Text: text, Provider: fallback.Name(), FallbackUsed: true}
		}
		logger.WarnLogger.Warnf("AI fallback provider %s failed (quota=%t): %v", fallback.Name(), IsQuotaError(err), err)
	}

	return s.demoReply(req, true)
}

func (s *Selector) call(ctx context.Context, p Provider, req ChatRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return p.Complete(callCtx, req)
}

func (s *Selector) demoReply(req ChatRequest, fallbackUsed bool) Reply {
	return Reply{
		Text:         s.demo.Reply(req.LastUserMessage()),
		Provider:     DemoProviderName,
		Demo:         true,
		FallbackUsed: fallbackUsed,
	}
}

// Status lists every provider and marks the primary.
func (s *Selector) Status() []ProviderStatus {
	primary := s.ActiveProvider()
	out := make([]ProviderStatus, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, ProviderStatus{
			Name:       p.Name(),
			Configured: p.Configured(),
			Primary:    p.Name() == primary,
		})
	}
	return out
}
