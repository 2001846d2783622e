package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeVerifier implements domain.TokenVerifier for middleware tests.
type fakeVerifier struct {
	adminID string
	err     error
}

func (f *fakeVerifier) Verify(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.adminID, nil
}

func TestRequireAuth_valid_token(t *testing.T) {
	called := false
	var gotAdminID string
	next := func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotAdminID, _ = AdminIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	handler := RequireAuth(&fakeVerifier{adminID: "admin-1"}, testLogger)(next)
	req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rr := httptest.NewRecorder()
	handler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
	assert.Equal(t, "admin-1", gotAdminID)
}

func TestRequireAuth_rejects(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		verifier *fakeVerifier
	}{
		{name: "missing header", header: "", verifier: &fakeVerifier{adminID: "admin-1"}},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz", verifier: &fakeVerifier{adminID: "admin-1"}},
		{name: "empty token", header: "Bearer ", verifier: &fakeVerifier{adminID: "admin-1"}},
		{name: "invalid token", header: "Bearer sometoken", verifier: &fakeVerifier{err: errors.New("expired")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(w http.ResponseWriter, r *http.Request) { called = true }

			handler := RequireAuth(tt.verifier, testLogger)(next)
			req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			require.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.False(t, called)
			assert.Contains(t, rr.Body.String(), `"unauthorized"`)
		})
	}
}

func TestAdminIDFromContext_absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := AdminIDFromContext(req.Context())
	assert.False(t, ok)
}
