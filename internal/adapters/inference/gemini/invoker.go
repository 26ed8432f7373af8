package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vet-intelligent/internal/domain/diagnosis"
	"vet-intelligent/internal/platform/httpclient"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type Config struct {
	APIKey string
	Model  string

	// BaseURL solo se usa en tests (httptest) o detrás de un proxy.
	BaseURL string
}

// Invoker usa la API de Gemini pidiendo salida application/json.
type Invoker struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Invoker, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("gemini: api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(base, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Invoker{client: client, model: model}, nil
}

func (i *Invoker) Invoke(ctx context.Context, prompt string) ([]diagnosis.SuggestionItem, error) {
	resp, err := i.client.Models.GenerateContent(ctx, i.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, classify(ctx, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: gemini: no candidates", diagnosis.ErrInferenceMalformed)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: gemini: empty text (finish=%s)", diagnosis.ErrInferenceMalformed, resp.Candidates[0].FinishReason)
	}

	items, err := diagnosis.DecodeSuggestions([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return items, nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || httpclient.IsTimeout(err) {
		return fmt.Errorf("%w: gemini: %v", diagnosis.ErrInferenceTimeout, err)
	}

	if code, ok := apiStatus(err); ok {
		if code == http.StatusTooManyRequests || code >= 500 {
			return fmt.Errorf("%w: gemini: status=%d", diagnosis.ErrInferenceTransient, code)
		}
		return fmt.Errorf("%w: gemini: status=%d", diagnosis.ErrInferenceMalformed, code)
	}

	if ctx.Err() != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	// sin status HTTP: falló el transporte
	return fmt.Errorf("%w: gemini: %v", diagnosis.ErrInferenceTransient, err)
}

func apiStatus(err error) (int, bool) {
	var ae genai.APIError
	if errors.As(err, &ae) {
		return ae.Code, true
	}
	var pae *genai.APIError
	if errors.As(err, &pae) && pae != nil {
		return pae.Code, true
	}
	return 0, false
}
