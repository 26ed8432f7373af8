package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"vet-intelligent/internal/adapters/audit/logline"
	"vet-intelligent/internal/adapters/auth/oidc"
	"vet-intelligent/internal/adapters/inference/canned"
	"vet-intelligent/internal/adapters/inference/gemini"
	"vet-intelligent/internal/adapters/inference/openai"
	mem "vet-intelligent/internal/adapters/storage/memory"
	pg "vet-intelligent/internal/adapters/storage/postgres"
	"vet-intelligent/internal/adapters/storage/sqlite"
	"vet-intelligent/internal/config"
	"vet-intelligent/internal/domain/diagnosis"
	"vet-intelligent/internal/platform/logger"
	"vet-intelligent/internal/ports/auth"
)

// deps agrupa los adapters elegidos por config.
type deps struct {
	Verifier auth.AuthVerifier
	Subjects diagnosis.SubjectResolver
	Invoker  diagnosis.Invoker
	Audit    diagnosis.AuditSink

	closers []io.Closer
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i].Close()
	}
}

func build(ctx context.Context, cfg *config.Config, log logger.Logger) (*deps, error) {
	d := &deps{}

	var db *sql.DB
	openDB := func() (*sql.DB, error) {
		if db != nil {
			return db, nil
		}
		opened, err := pg.Open(ctx, cfg.Database.DSN, pg.PoolOptions{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetimeDuration(),
		})
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		db = opened
		d.closers = append(d.closers, db)
		return db, nil
	}

	fail := func(err error) (*deps, error) {
		d.Close()
		return nil, err
	}

	if cfg.Auth.Mode == config.AuthOIDC {
		v, err := oidc.NewVerifier(ctx, oidc.Config{Issuer: cfg.Auth.Issuer, ClientID: cfg.Auth.ClientID})
		if err != nil {
			return fail(err)
		}
		d.Verifier = v
	} else {
		log.Warn("auth in dev mode: X-Debug-User-ID accepted", nil)
	}

	switch cfg.Subjects.Backend {
	case config.BackendPostgres:
		db, err := openDB()
		if err != nil {
			return fail(err)
		}
		d.Subjects = pg.NewSubjectsRepo(db)
	default:
		d.Subjects = mem.NewSubjectRepo(mem.DefaultSubjects())
	}

	switch cfg.Inference.Provider {
	case config.ProviderOpenAI:
		inv, err := openai.New(openai.Config{
			BaseURL: cfg.Inference.OpenAI.BaseURL,
			APIKey:  cfg.Inference.OpenAI.APIKey,
			Model:   cfg.Inference.OpenAI.Model,
			Timeout: cfg.Inference.TimeoutDuration(),
		})
		if err != nil {
			return fail(err)
		}
		d.Invoker = inv
	case config.ProviderGemini:
		inv, err := gemini.New(ctx, gemini.Config{
			APIKey: cfg.Inference.Gemini.APIKey,
			Model:  cfg.Inference.Gemini.Model,
		})
		if err != nil {
			return fail(err)
		}
		d.Invoker = inv
	default:
		d.Invoker = canned.New()
	}

	switch cfg.Audit.Backend {
	case config.BackendPostgres:
		db, err := openDB()
		if err != nil {
			return fail(err)
		}
		d.Audit = pg.NewAuditRepo(db)
	case config.BackendSQLite:
		repo, err := sqlite.Open(ctx, cfg.Audit.SQLitePath)
		if err != nil {
			return fail(fmt.Errorf("sqlite audit: %w", err))
		}
		d.closers = append(d.closers, repo)
		d.Audit = repo
	case config.BackendMemory:
		d.Audit = mem.NewAuditRepo()
	default:
		d.Audit = logline.New(log, cfg.Audit.IncludePrompt)
	}

	return d, nil
}
