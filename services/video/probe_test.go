package video

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_MissingKey(t *testing.T) {
	status, body := NewProber("", nil, nil).Probe(context.Background())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestProbe_FallsBackToSecondEndpoint(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Key abcdefghijklmnopqrstuvwxyz:secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":["veo3.1"]}`))
	}))
	defer up.Close()

	key := "abcdefghijklmnopqrstuvwxyz:secret"
	status, body := NewProber(key, []string{down.URL, up.URL}, nil).Probe(context.Background())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])

	format, ok := body["apiKeyFormat"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abcdefghijklmnopqrst...", format["provided"])
	assert.Equal(t, true, format["hasKeySecret"])
}

func TestProbe_RawResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	status, body := NewProber("key", []string{srv.URL}, nil).Probe(context.Background())
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<html>ok</html>", body["rawResponse"])
}

func TestProbe_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	status, body := NewProber("bad-key", []string{srv.URL}, nil).Probe(context.Background())
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "API key authentication failed", body["error"])
}

func TestProbe_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := srv.URL
	srv.Close()

	status, body := NewProber("key", []string{closedURL}, nil).Probe(context.Background())
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Network error", body["error"])
}

func TestProbe_AllEndpointsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	status, body := NewProber("key", []string{srv.URL, srv.URL}, nil).Probe(context.Background())
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "All API endpoints failed", body["error"])
}
