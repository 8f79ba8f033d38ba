package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Write([]byte(`{"choices": [{"message": {"content": "  [{\"crop\":\"Rice\"}]  "}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "test-key", "test-model")
	out, err := c.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, `[{"crop":"Rice"}]`, out)
}

func TestCompleteErrors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), "s", "u")
		assert.ErrorContains(t, err, "429")
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), "s", "u")
		assert.ErrorContains(t, err, "no choices")
	})

	t.Run("empty content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": [{"message": {"content": "   "}}]}`))
		}))
		defer srv.Close()

		_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), "s", "u")
		assert.ErrorContains(t, err, "empty content")
	})
}

func TestDisabledClient(t *testing.T) {
	_, err := NewDisabled().Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrDisabled)
}
