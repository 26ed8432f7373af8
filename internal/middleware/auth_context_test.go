package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-intelligent/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
	got    string
}

func (v *stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	v.got = token
	return v.claims, v.err
}

func run(t *testing.T, v auth.AuthVerifier, header, value string) (auth.Claims, bool) {
	t.Helper()

	var (
		claims auth.Claims
		ok     bool
	)
	h := AuthContext(v, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok = GetClaims(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return claims, ok
}

func TestAuthContext_DevHeader(t *testing.T) {
	c, ok := run(t, nil, DebugUserHeader, " vet-1 ")
	assert.True(t, ok)
	assert.Equal(t, "vet-1", c.UserID)

	_, ok = run(t, nil, "", "")
	assert.False(t, ok)
}

func TestAuthContext_VerifierIgnoresDebugHeader(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{UserID: "u"}}
	_, ok := run(t, v, DebugUserHeader, "vet-1")
	assert.False(t, ok)
}

func TestAuthContext_BearerVerified(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{UserID: "u-1", Email: "a@b.c"}}
	c, ok := run(t, v, "Authorization", "bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "abc.def", v.got)
}

func TestAuthContext_BearerRejected(t *testing.T) {
	v := &stubVerifier{err: errors.New("expired")}
	_, ok := run(t, v, "Authorization", "Bearer abc")
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Basic xyz"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "tok", bearerToken("Bearer  tok "))
}
