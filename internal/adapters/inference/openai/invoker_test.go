package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vet-intelligent/internal/domain/diagnosis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completion(content, finish string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{{
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
	}
}

func newServer(t *testing.T, status int, body any) (*httptest.Server, *chatRequest) {
	t.Helper()
	got := &chatRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(got)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func newInvoker(t *testing.T, url string, timeout time.Duration) *Invoker {
	t.Helper()
	inv, err := New(Config{BaseURL: url + "/v1", APIKey: "sk-test", Model: "m", Timeout: timeout})
	require.NoError(t, err)
	return inv
}

func TestInvoke_Success(t *testing.T) {
	content := `{"diagnosticos":[{"condicao":"Otite","probabilidade_estimada":"Alta","descricao":"d","tratamentos_sugeridos":["limpeza"],"nivel_urgencia":"Baixo"}]}`
	srv, got := newServer(t, http.StatusOK, completion(content, "stop"))

	items, err := newInvoker(t, srv.URL, time.Second).Invoke(context.Background(), "the prompt")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Otite", items[0].Condition)
	assert.Equal(t, diagnosis.LevelLow, items[0].Urgency)

	assert.Equal(t, "m", got.Model)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "the prompt", got.Messages[0].Content)
}

func TestInvoke_MalformedContentFailsClosed(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, completion(`{"diagnosticos": "nope"}`, "stop"))

	items, err := newInvoker(t, srv.URL, time.Second).Invoke(context.Background(), "p")
	assert.Nil(t, items)
	assert.ErrorIs(t, err, diagnosis.ErrInferenceMalformed)
}

func TestInvoke_Truncated(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, completion(`{"diagnosticos":[`, "length"))

	_, err := newInvoker(t, srv.URL, time.Second).Invoke(context.Background(), "p")
	assert.ErrorIs(t, err, diagnosis.ErrInferenceMalformed)
}

func TestInvoke_NoChoices(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, map[string]any{"choices": []any{}})

	_, err := newInvoker(t, srv.URL, time.Second).Invoke(context.Background(), "p")
	assert.ErrorIs(t, err, diagnosis.ErrInferenceMalformed)
}

func TestInvoke_UpstreamErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, diagnosis.ErrInferenceTransient},
		{http.StatusBadGateway, diagnosis.ErrInferenceTransient},
		{http.StatusBadRequest, diagnosis.ErrInferenceMalformed},
	}
	for _, tc := range cases {
		srv, _ := newServer(t, tc.status, map[string]string{"error": "x"})
		_, err := newInvoker(t, srv.URL, time.Second).Invoke(context.Background(), "p")
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestInvoke_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newInvoker(t, srv.URL, 50*time.Millisecond).Invoke(context.Background(), "p")
	assert.ErrorIs(t, err, diagnosis.ErrInferenceTimeout)
	assert.True(t, diagnosis.Retryable(err))
}

func TestInvoke_ConnectionRefusedIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newInvoker(t, url, time.Second).Invoke(context.Background(), "p")
	assert.ErrorIs(t, err, diagnosis.ErrInferenceTransient)
}
