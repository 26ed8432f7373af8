package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"vet-intelligent/internal/adapters/storage/auditpayload"
	"vet-intelligent/internal/domain/diagnosis"
)

// AuditRepo escribe en diagnosis_audit. Solo INSERT: la tabla es append-only.
type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Record(ctx context.Context, rec diagnosis.AuditRecord) error {
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("postgres: audit id required")
	}

	payload, err := auditpayload.Encode(rec)
	if err != nil {
		return fmt.Errorf("postgres: encode audit payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO diagnosis_audit (
			id, requester_id, subject_id,
			requested_at, outcome, error_kind,
			payload
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rec.ID,
		rec.RequesterID,
		rec.SubjectID,
		rec.RequestedAt.UTC(),
		string(rec.Outcome),
		toNullString(string(rec.ErrorKind)),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("postgres: insert audit: %w", err)
	}
	return nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
