// Package openai habla con cualquier API compatible con OpenAI chat completions
// (OpenAI, Azure con gateway, Ollama, vLLM...).
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vet-intelligent/internal/domain/diagnosis"
	"vet-intelligent/internal/platform/httpclient"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string

	// Timeout del http.Client. El Service además pone su propio deadline.
	Timeout     time.Duration
	Temperature float64
}

type Invoker struct {
	client      *httpclient.Client
	apiKey      string
	model       string
	temperature float64
}

func New(cfg Config) (*Invoker, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	c, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	return &Invoker{
		client:      c,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

func (i *Invoker) Invoke(ctx context.Context, prompt string) ([]diagnosis.SuggestionItem, error) {
	headers := map[string]string{}
	if i.apiKey != "" {
		headers["Authorization"] = "Bearer " + i.apiKey
	}

	var out chatResponse
	err := i.client.DoJSON(ctx, http.MethodPost, "/chat/completions", headers, chatRequest{
		Model:          i.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    i.temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}, &out)
	if err != nil {
		return nil, classify(err)
	}

	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai: no choices", diagnosis.ErrInferenceMalformed)
	}
	choice := out.Choices[0]
	if choice.FinishReason == "length" {
		return nil, fmt.Errorf("%w: openai: truncated output", diagnosis.ErrInferenceMalformed)
	}

	items, err := diagnosis.DecodeSuggestions([]byte(choice.Message.Content))
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return items, nil
}

// classify traduce errores de transporte a los sentinels del dominio.
func classify(err error) error {
	if httpclient.IsTimeout(err) {
		return fmt.Errorf("%w: openai: %v", diagnosis.ErrInferenceTimeout, err)
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		if he.Retryable() {
			return fmt.Errorf("%w: openai: status=%d", diagnosis.ErrInferenceTransient, he.StatusCode)
		}
		return fmt.Errorf("%w: openai: status=%d", diagnosis.ErrInferenceMalformed, he.StatusCode)
	}

	if errors.Is(err, httpclient.ErrDecode) {
		return fmt.Errorf("%w: openai: %v", diagnosis.ErrInferenceMalformed, err)
	}
	if errors.Is(err, httpclient.ErrTransport) {
		return fmt.Errorf("%w: openai: %v", diagnosis.ErrInferenceTransient, err)
	}
	return fmt.Errorf("openai: %w", err)
}
