// Package sqlite guarda la auditoría en un archivo local (modernc, sin cgo).
// Pensado para un solo nodo; con varias réplicas usar el store de postgres.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vet-intelligent/internal/adapters/storage/auditpayload"
	"vet-intelligent/internal/domain/diagnosis"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS diagnosis_audit (
	id TEXT PRIMARY KEY,
	requester_id TEXT NOT NULL,
	subject_id TEXT NOT NULL,
	requested_at TEXT NOT NULL,
	outcome TEXT NOT NULL,
	error_kind TEXT,
	payload TEXT NOT NULL
);`

type AuditRepo struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y asegura la tabla.
func Open(ctx context.Context, path string) (*AuditRepo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// un writer a la vez; evita SQLITE_BUSY entre goroutines
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return &AuditRepo{db: db}, nil
}

func (r *AuditRepo) Record(ctx context.Context, rec diagnosis.AuditRecord) error {
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("sqlite: audit id required")
	}

	payload, err := auditpayload.Encode(rec)
	if err != nil {
		return fmt.Errorf("sqlite: encode audit payload: %w", err)
	}

	var errKind any
	if rec.ErrorKind != "" {
		errKind = string(rec.ErrorKind)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO diagnosis_audit (id, requester_id, subject_id, requested_at, outcome, error_kind, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.RequesterID,
		rec.SubjectID,
		rec.RequestedAt.UTC().Format(time.RFC3339Nano),
		string(rec.Outcome),
		errKind,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert audit: %w", err)
	}
	return nil
}

// Count devuelve cuántos registros hay para un outcome ("" = todos).
func (r *AuditRepo) Count(ctx context.Context, outcome diagnosis.Outcome) (int, error) {
	q := `SELECT COUNT(*) FROM diagnosis_audit`
	args := []any{}
	if outcome != "" {
		q += ` WHERE outcome = ?`
		args = append(args, string(outcome))
	}

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count audit: %w", err)
	}
	return n, nil
}

func (r *AuditRepo) Close() error {
	return r.db.Close()
}
