package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens, err := NewTokens("s3cret", time.Hour)
	require.NoError(t, err)

	raw, err := tokens.Issue("u1", "Ann")
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "Ann", claims.Name)
}

func TestTokens_Rejects(t *testing.T) {
	tokens, err := NewTokens("s3cret", time.Minute)
	require.NoError(t, err)
	other, err := NewTokens("different", time.Minute)
	require.NoError(t, err)

	raw, err := other.Issue("u1", "Ann")
	require.NoError(t, err)
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	raw, err = tokens.Issue("u1", "Ann")
	require.NoError(t, err)
	tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokens("", time.Minute)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	tokens, err := NewTokens("s3cret", time.Hour)
	require.NoError(t, err)
	valid, err := tokens.Issue("u1", "Ann")
	require.NoError(t, err)
	stranger, err := tokens.Issue("u9", "Gone")
	require.NoError(t, err)
	known := func(id string) (bool, error) { return id == "u1", nil }

	var seen *Claims
	h := Middleware(tokens, known)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		header  string
		want    int
		wantMsg string
	}{
		{name: "valid", header: "Bearer " + valid, want: http.StatusNoContent},
		{name: "missing", header: "", want: http.StatusUnauthorized, wantMsg: "Not authorized, no token"},
		{name: "wrong scheme", header: "Token " + valid, want: http.StatusUnauthorized, wantMsg: "Not authorized, no token"},
		{name: "bad token", header: "Bearer nope", want: http.StatusUnauthorized, wantMsg: "Not authorized"},
		{name: "unknown user", header: "Bearer " + stranger, want: http.StatusUnauthorized, wantMsg: "Not authorized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "u1", seen.Subject)
			} else {
				assert.Nil(t, seen)
				assert.JSONEq(t, `{"message":"`+tt.wantMsg+`"}`, rec.Body.String())
			}
		})
	}
}
