package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Random_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quotes/random", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"en": "Talk is cheap. Show me the code.", "author": "Linus Torvalds"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	quote, err := client.Random(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Talk is cheap. Show me the code.", quote.Text)
	assert.Equal(t, "Linus Torvalds", quote.Author)
}

func TestClient_Random_EmptyQuoteRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"en": "", "author": "Nobody"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Random(context.Background())
	assert.Error(t, err)
}

func TestClient_Random_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Random(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestFallback_AlwaysServesAQuote(t *testing.T) {
	for i := 0; i < 10; i++ {
		quote := Fallback()
		assert.NotEmpty(t, quote.Text)
		assert.NotEmpty(t, quote.Author)
	}
}
