package clients

import (
	"context"
	"strings"
)

const (
	openAIBaseURL  = "https://api.openai.com/v1"
	mistralBaseURL = "https://api.mistral.ai/v1"
)

// ChatCompletionsClient speaks the OpenAI chat completions protocol, which
// Mistral also implements.
type ChatCompletionsClient struct {
	httpProvider
}

func NewOpenAIClient(apiKey, model string, opts ...Option) *ChatCompletionsClient {
	return &ChatCompletionsClient{newHTTPProvider("openai", apiKey, model, openAIBaseURL, opts)}
}

func NewMistralClient(apiKey, model string, opts ...Option) *ChatCompletionsClient {
	return &ChatCompletionsClient{newHTTPProvider("mistral", apiKey, model, mistralBaseURL, opts)}
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionsResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ChatCompletionsClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	messages := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, Message{Role: "system", Content: req.System})
	}
	messages = append(messages, req.Messages...)

	var resp chatCompletionsResponse
	err := c.postJSON(ctx, c.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + c.apiKey},
		chatCompletionsRequest{Model: c.model, Messages: messages, MaxTokens: 800, Temperature: 0.7},
		&resp,
	)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
