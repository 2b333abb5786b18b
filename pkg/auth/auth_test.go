package auth

import (
	"net/http"
	"strings"
	"testing"

	"github.com/saturnines/project-gateway/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "https://api.example.com/graphql", nil)
	require.NoError(t, err)
	return req
}

func TestAPIKeyAuth(t *testing.T) {
	t.Run("HeaderBased", func(t *testing.T) {
		req := newRequest(t)
		require.NoError(t, NewAPIKeyAuth("letmein").ApplyAuth(req))
		assert.Equal(t, "letmein", req.Header.Get("x-api-key"))
		assert.Empty(t, req.Header.Get("Authorization"))
	})

	t.Run("CustomHeader", func(t *testing.T) {
		req := newRequest(t)
		h := &APIKeyAuth{HeaderName: "X-Custom-Key", Value: "abc"}
		require.NoError(t, h.ApplyAuth(req))
		assert.Equal(t, "abc", req.Header.Get("X-Custom-Key"))
	})

	t.Run("DropsBearerHeader", func(t *testing.T) {
		req := newRequest(t)
		req.Header.Set("Authorization", "Bearer stale")
		require.NoError(t, NewAPIKeyAuth("letmein").ApplyAuth(req))
		assert.Empty(t, req.Header.Get("Authorization"))
	})

	t.Run("MissingValue", func(t *testing.T) {
		err := NewAPIKeyAuth("").ApplyAuth(newRequest(t))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
		assert.Contains(t, err.Error(), "API key value is required")
	})

	t.Run("StringMethod", func(t *testing.T) {
		str := NewAPIKeyAuth("letmein").String()
		assert.Contains(t, str, "x-api-key")
		assert.NotContains(t, str, "letmein")
	})
}

func TestBearerAuth(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		req := newRequest(t)
		require.NoError(t, NewBearerAuth("test-token").ApplyAuth(req))
		assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
	})

	t.Run("DropsAPIKeyHeader", func(t *testing.T) {
		req := newRequest(t)
		req.Header.Set("x-api-key", "letmein")
		require.NoError(t, NewBearerAuth("test-token").ApplyAuth(req))
		assert.Empty(t, req.Header.Get("x-api-key"))
	})

	t.Run("EmptyToken", func(t *testing.T) {
		err := NewBearerAuth("").ApplyAuth(newRequest(t))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
		assert.Contains(t, err.Error(), "token is required")
	})

	t.Run("StringMethod", func(t *testing.T) {
		str := NewBearerAuth("test-token").String()
		if strings.Contains(str, "test-token") {
			t.Errorf("String() should not contain the actual token, got: %s", str)
		}
	})
}
