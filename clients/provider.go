package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Role values shared by every vendor wire format.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemPrompt frames every conversation with the travel advisor.
const SystemPrompt = `Tu es le conseiller voyage de Transport Sénégal, un chauffeur privé et guide basé à Dakar.
Réponds dans la langue du visiteur, en restant bref et chaleureux.
Propose des itinéraires réalistes au Sénégal (temps de route, étapes, meilleures saisons) et
invite le visiteur à demander un devis ou à écrire sur WhatsApp pour réserver.
Ne donne jamais de prix ferme : les tarifs dépendent du véhicule et de la distance.`

// Message is one conversational turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the vendor-neutral prompt.
type ChatRequest struct {
	System   string
	Messages []Message
}

// LastUserMessage returns the most recent user turn.
func (r ChatRequest) LastUserMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}
	return ""
}

// Provider is an LLM vendor.
type Provider interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

var (
	ErrNotConfigured = errors.New("provider not configured")
	ErrEmptyReply    = errors.New("provider returned an empty reply")
)

// APIError is a non-2xx answer from a vendor.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, body)
}

// IsQuotaError reports whether err means the account is out of credit or
// rate limited by the vendor.
func IsQuotaError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode == http.StatusPaymentRequired {
		return true
	}
	body := strings.ToLower(apiErr.Body)
	return strings.Contains(body, "insufficient_quota") ||
		strings.Contains(body, "resource_exhausted") ||
		strings.Contains(body, "quota")
}

// Option configures a vendor client.
type Option func(*httpProvider)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(p *httpProvider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *httpProvider) {
		p.client = c
	}
}

// httpProvider holds what every vendor client shares.
type httpProvider struct {
	name    string
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newHTTPProvider(name, apiKey, model, baseURL string, opts []Option) httpProvider {
	p := httpProvider{
		name:    name,
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p *httpProvider) Name() string { return p.name }

func (p *httpProvider) Configured() bool { return p.apiKey != "" }

// postJSON sends payload and decodes a 2xx body into out.
func (p *httpProvider) postJSON(ctx context.Context, url string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", p.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", p.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", p.name, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return &APIError{Provider: p.name, StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", p.name, err)
	}
	return nil
}
