package logline

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"vet-intelligent/internal/domain/diagnosis"
	"vet-intelligent/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// loggedRecord devuelve el documento JSON de la única línea de auditoría.
func loggedRecord(t *testing.T, logs *observer.ObservedLogs) (map[string]any, map[string]any) {
	t.Helper()
	entries := logs.FilterMessage("diagnosis audit").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()

	raw, ok := ctx["record"].(json.RawMessage)
	require.True(t, ok, "record field is %T", ctx["record"])
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	return ctx, doc
}

func TestSink_LogsFullRecord(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := New(logger.FromZap(zap.New(core)), false)

	generated := time.Date(2026, 5, 4, 13, 30, 0, 0, time.UTC)
	resp := diagnosis.Response{RequestID: "r-1", GeneratedAt: generated, Disclaimer: diagnosis.Disclaimer}
	err := sink.Record(context.Background(), diagnosis.AuditRecord{
		ID:           "r-1",
		RequesterID:  "vet-1",
		SubjectID:    "1",
		RequestedAt:  generated,
		Subject:      diagnosis.SubjectRecord{Species: "Cão", Breed: "Labrador", Age: "3 anos", Weight: "28 kg", History: "alergia"},
		Observations: []string{"vômito"},
		Prompt:       "secret prompt",
		Suggestions: []diagnosis.SuggestionItem{{
			Condition:   "Gastro",
			Probability: diagnosis.LevelHigh,
			Description: "inflamação",
			Treatments:  []string{"hidratação"},
			Urgency:     diagnosis.LevelMedium,
		}},
		Response:   &resp,
		Disclaimer: diagnosis.Disclaimer,
		Outcome:    diagnosis.OutcomeSuccess,
	})
	require.NoError(t, err)

	ctx, doc := loggedRecord(t, logs)
	assert.Equal(t, "audit", ctx["component"])
	assert.Equal(t, "r-1", ctx["audit_id"])
	assert.Equal(t, "success", ctx["outcome"])

	assert.Equal(t, diagnosis.Disclaimer, doc["disclaimer"])
	assert.Equal(t, "r-1", doc["response_id"])
	assert.Equal(t, "2026-05-04T13:30:00Z", doc["generated_at"])
	assert.Empty(t, doc["prompt"])

	snap := doc["input"].(map[string]any)["subject_snapshot"].(map[string]any)
	assert.Equal(t, "Labrador", snap["breed"])
	assert.Equal(t, "3 anos", snap["age"])
	assert.Equal(t, "28 kg", snap["weight"])
	assert.Equal(t, "alergia", snap["history"])

	items := doc["suggestions"].([]any)
	require.Len(t, items, 1)
	s := items[0].(map[string]any)
	assert.Equal(t, "high", s["probability"])
	assert.Equal(t, "medium", s["urgency"])
	assert.Equal(t, "inflamação", s["description"])
	assert.Equal(t, []any{"hidratação"}, s["treatments"])
}

func TestSink_FailureCarriesError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := New(logger.FromZap(zap.New(core)), false)

	require.NoError(t, sink.Record(context.Background(), diagnosis.AuditRecord{
		ID:           "a-2",
		Outcome:      diagnosis.OutcomeFailed,
		ErrorKind:    diagnosis.KindInferenceUnavailable,
		ErrorMessage: "inference timed out",
	}))

	ctx, doc := loggedRecord(t, logs)
	assert.Equal(t, "inference_unavailable", ctx["error_kind"])
	assert.Equal(t, map[string]any{"kind": "inference_unavailable", "message": "inference timed out"}, doc["error"])
}

func TestSink_IncludePrompt(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := New(logger.FromZap(zap.New(core)), true)

	require.NoError(t, sink.Record(context.Background(), diagnosis.AuditRecord{ID: "r-2", Prompt: "p"}))
	_, doc := loggedRecord(t, logs)
	assert.Equal(t, "p", doc["prompt"])
}
