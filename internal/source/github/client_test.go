package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/techtrack/internal/source"
)

func TestClient_SearchRepositories_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, "react", r.URL.Query().Get("q"))
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{
			TotalCount: 2,
			Items: []Repo{
				{Name: "react", Stars: 200000, Language: "JavaScript"},
				{Name: "preact", Stars: 35000, Language: "JavaScript"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	resp, err := client.SearchRepositories(context.Background(), "react", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "react", resp.Items[0].Name)
}

func TestClient_Unauthorized_ReturnsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-token")
	_, err := client.SearchRepositories(context.Background(), "react", 1, 10)

	require.Error(t, err)
	assert.True(t, source.IsAuthError(err))
}

func TestClient_RateLimited_RetriesHonoringRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{TotalCount: 1, Items: []Repo{{Name: "gin"}}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	resp, err := client.SearchRepositories(context.Background(), "gin", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 1, resp.TotalCount)
}

func TestClient_ForbiddenWithZeroQuotaTreatedAsRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("X-Ratelimit-Remaining", "0")
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.SearchRepositories(context.Background(), "gin", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ErrorPayloadSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "Validation Failed"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.SearchRepositories(context.Background(), "", 1, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation Failed")
}
