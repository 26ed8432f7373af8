package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vet-intelligent/internal/domain/diagnosis"
)

// AuditRepo guarda los registros en un slice append-only.
type AuditRepo struct {
	mu      sync.RWMutex
	records []diagnosis.AuditRecord
	byID    map[string]struct{}
}

func NewAuditRepo() *AuditRepo {
	return &AuditRepo{byID: make(map[string]struct{})}
}

func (r *AuditRepo) Record(_ context.Context, rec diagnosis.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("audit id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("audit record already exists")
	}
	r.byID[rec.ID] = struct{}{}
	r.records = append(r.records, rec)
	return nil
}

// List devuelve una copia en orden de escritura.
func (r *AuditRepo) List() []diagnosis.AuditRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]diagnosis.AuditRecord, len(r.records))
	copy(out, r.records)
	return out
}
