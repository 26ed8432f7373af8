package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vet-intelligent/internal/domain/diagnosis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepo_RecordAndCount(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(ctx, filepath.Join(t.TempDir(), "audit", "audit.db"))
	require.NoError(t, err)
	defer repo.Close()

	now := time.Now()
	require.NoError(t, repo.Record(ctx, diagnosis.AuditRecord{
		ID: "r-1", RequesterID: "vet-1", SubjectID: "1", RequestedAt: now, Outcome: diagnosis.OutcomeSuccess,
	}))
	require.NoError(t, repo.Record(ctx, diagnosis.AuditRecord{
		ID: "a-2", RequesterID: "vet-1", SubjectID: "1", RequestedAt: now,
		Outcome: diagnosis.OutcomeFailed, ErrorKind: diagnosis.KindInferenceUnavailable,
	}))

	// append-only: mismo id falla
	assert.Error(t, repo.Record(ctx, diagnosis.AuditRecord{ID: "r-1", Outcome: diagnosis.OutcomeSuccess}))

	total, err := repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	failed, err := repo.Count(ctx, diagnosis.OutcomeFailed)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	assert.Error(t, err)
}
