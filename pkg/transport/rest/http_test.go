package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/project-gateway/pkg/errors"
)

func TestRequestHelper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp, err := RequestHelper(context.Background(), server.Client(), http.MethodPost,
		server.URL, "/api/upload", []byte(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDoJSON(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var in map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "data:image/png;base64,AAA=", in["path"])
			w.Write([]byte(`{"url":"https://x/y.png"}`))
		}))
		defer server.Close()

		var out map[string]string
		err := DoJSON(context.Background(), server.Client(), http.MethodPost, server.URL, "/api/upload",
			map[string]string{"path": "data:image/png;base64,AAA="}, &out)
		require.NoError(t, err)
		assert.Equal(t, "https://x/y.png", out["url"])
	})

	t.Run("GetWithoutBody", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Empty(t, r.Header.Get("Content-Type"))
			w.Write([]byte(`{"token":"abc"}`))
		}))
		defer server.Close()

		var out map[string]interface{}
		require.NoError(t, DoJSON(context.Background(), server.Client(), http.MethodGet, server.URL, "/api/auth/token", nil, &out))
		assert.Equal(t, "abc", out["token"])
	})

	t.Run("Non2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		err := DoJSON(context.Background(), server.Client(), http.MethodGet, server.URL, "/api/auth/token", nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrHTTPResponse))
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("RejectedCredential", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		err := DoJSON(context.Background(), server.Client(), http.MethodGet, server.URL, "/api/auth/token", nil, nil)
		assert.True(t, errors.Is(err, errors.ErrAuthentication))
		assert.False(t, errors.Is(err, errors.ErrHTTPResponse))
	})

	t.Run("BadJSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		var out map[string]interface{}
		err := DoJSON(context.Background(), server.Client(), http.MethodGet, server.URL, "/api/auth/token", nil, &out)
		assert.True(t, errors.Is(err, errors.ErrHTTPResponse))
	})
}
