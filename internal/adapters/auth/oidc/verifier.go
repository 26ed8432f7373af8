package oidc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-intelligent/internal/ports/auth"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
)

var ErrNotConfigured = errors.New("oidc verifier not configured")

// Config del verificador. Issuer y ClientID vienen de config/env (OIDC_ISSUER, OIDC_CLIENT_ID).
type Config struct {
	Issuer   string
	ClientID string

	// Now solo para tests.
	Now func() time.Time
}

// Verifier implementa auth.AuthVerifier validando ID tokens (firma, issuer, audience, exp).
type Verifier struct {
	v *gooidc.IDTokenVerifier
}

// NewVerifier hace discovery contra el issuer (/.well-known/openid-configuration)
// y usa su JWKS remoto.
func NewVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" || strings.TrimSpace(cfg.ClientID) == "" {
		return nil, ErrNotConfigured
	}

	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &Verifier{v: provider.Verifier(verifierConfig(cfg))}, nil
}

// NewVerifierFromKeySet arma el verificador sin discovery (keys estáticas o tests).
func NewVerifierFromKeySet(cfg Config, keys gooidc.KeySet) (*Verifier, error) {
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" || strings.TrimSpace(cfg.ClientID) == "" || keys == nil {
		return nil, ErrNotConfigured
	}
	return &Verifier{v: gooidc.NewVerifier(issuer, keys, verifierConfig(cfg))}, nil
}

func verifierConfig(cfg Config) *gooidc.Config {
	c := &gooidc.Config{ClientID: strings.TrimSpace(cfg.ClientID)}
	if cfg.Now != nil {
		c.Now = cfg.Now
	}
	return c
}

type tokenClaims struct {
	Email    string `json:"email"`
	TenantID string `json:"tid"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.v == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrTokenEmpty
	}

	idt, err := v.v.Verify(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	var extra tokenClaims
	if err := idt.Claims(&extra); err != nil {
		return auth.Claims{}, fmt.Errorf("%w: claims: %v", auth.ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(idt.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", auth.ErrInvalidToken)
	}

	return auth.Claims{
		UserID:   sub,
		Email:    strings.TrimSpace(extra.Email),
		TenantID: strings.TrimSpace(extra.TenantID),
	}, nil
}
