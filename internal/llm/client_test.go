package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSendsChatPayload(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello back"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
	}, zerolog.Nop())

	out, err := client.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello back", out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "hello", gotReq.Messages[0].Content)
	require.NotNil(t, gotReq.Temperature)
	assert.InDelta(t, 0.7, *gotReq.Temperature, 1e-9)
}

func TestCompleteErrorPaths(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL, APIKey: "k"}, zerolog.Nop())
		_, err := client.Complete(context.Background(), "p")
		assert.ErrorContains(t, err, "429")
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		client := NewClient(Config{BaseURL: srv.URL, APIKey: "k"}, zerolog.Nop())
		_, err := client.Complete(context.Background(), "p")
		assert.ErrorContains(t, err, "no choices")
	})

	t.Run("missing api key", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://unused"}, zerolog.Nop())
		_, err := client.Complete(context.Background(), "p")
		assert.Error(t, err)
	})
}
