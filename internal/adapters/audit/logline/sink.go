// Package logline implementa el AuditSink de referencia: una línea de log por registro,
// con el mismo documento JSON que guardan los stores SQL.
package logline

import (
	"context"
	"encoding/json"
	"fmt"

	"vet-intelligent/internal/adapters/storage/auditpayload"
	"vet-intelligent/internal/domain/diagnosis"
	"vet-intelligent/internal/platform/logger"
)

type Sink struct {
	log           logger.Logger
	includePrompt bool
}

// New: includePrompt deja el prompt completo en el documento (largo; útil en dev).
func New(log logger.Logger, includePrompt bool) *Sink {
	if log == nil {
		log = logger.Nop()
	}
	return &Sink{
		log:           log.With(map[string]any{"component": "audit"}),
		includePrompt: includePrompt,
	}
}

func (s *Sink) Record(_ context.Context, rec diagnosis.AuditRecord) error {
	if !s.includePrompt {
		rec.Prompt = ""
	}

	doc, err := auditpayload.Encode(rec)
	if err != nil {
		return fmt.Errorf("logline: encode audit payload: %w", err)
	}

	fields := map[string]any{
		"audit_id": rec.ID,
		"outcome":  string(rec.Outcome),
		"record":   json.RawMessage(doc),
	}
	if rec.ErrorKind != "" {
		fields["error_kind"] = string(rec.ErrorKind)
	}

	s.log.Info("diagnosis audit", fields)
	return nil
}
