package diagnosis

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vet-intelligent/internal/middleware"
	"vet-intelligent/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, svc)
	return r
}

func post(t *testing.T, h http.Handler, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/diagnostico/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(middleware.WithClaims(req.Context(), auth.Claims{UserID: userID}))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_WireFormat(t *testing.T) {
	svc := NewService(subjects(), returning(twoItems, nil), &fakeAudit{}, Options{})
	svc.assembler = &Assembler{
		newID: func() string { return "diag-1" },
		now:   func() time.Time { return time.Date(2026, 5, 4, 13, 30, 0, 120e6, time.UTC) },
	}

	rec := post(t, newTestRouter(svc), "vet-1", `{"animalId":"1","sintomas":["vômito"],"observacoesAdicionais":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "diag-1", body["diagnosticoId"])
	assert.Equal(t, "2026-05-04T13:30:00.120Z", body["dataHora"])
	assert.Equal(t, "x", body["observacoesFornecidas"])
	assert.Equal(t, Disclaimer, body["disclaimer"])
	assert.Equal(t, map[string]any{"especie": "Cão", "raca": "Labrador", "idade": "3 anos", "peso": "28 kg"}, body["animalInfo"])

	items, ok := body["sugestoesDiagnosticas"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "Gastroenterite", first["condicao"])
	assert.Equal(t, "Alta", first["probabilidade_estimada"])
	assert.Equal(t, "Médio", first["nivel_urgencia"])
	assert.Equal(t, []any{"hidratação"}, first["tratamentos_sugeridos"])
}

func TestHandler_ErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		user   string
		body   string
		inv    *countingInvoker
		status int
		kind   Kind
	}{
		{"unauthenticated", "", `{"animalId":"1","sintomas":["a"]}`, returning(twoItems, nil), http.StatusUnauthorized, KindUnauthenticated},
		{"bad json", "u", `{`, returning(twoItems, nil), http.StatusBadRequest, KindInvalidInput},
		{"not found", "u", `{"animalId":"999","sintomas":["a"]}`, returning(twoItems, nil), http.StatusNotFound, KindSubjectNotFound},
		{"inference down", "u", `{"animalId":"1","sintomas":["a"]}`, returning(nil, errors.New("boom")), http.StatusBadGateway, KindInferenceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(subjects(), tc.inv, &fakeAudit{}, Options{})
			rec := post(t, newTestRouter(svc), tc.user, tc.body)

			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			var e errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.Equal(t, tc.kind, e.Kind)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestWriteError_UnclassifiedIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("unexpected"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"internal_error"`)
	assert.NotContains(t, rec.Body.String(), "unexpected")
}
