package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/source"
)

func TestAdapter_Search_MapsReposToCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{
			TotalCount: 40,
			Items: []Repo{
				{
					Name:        "react",
					Description: "The library for web and native user interfaces",
					HTMLURL:     "https://github.com/facebook/react",
					Homepage:    "https://react.dev",
					Language:    "JavaScript",
					Stars:       220000,
				},
			},
		})
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.URL, "", 10)
	result, err := adapter.Search(context.Background(), "react", source.FetchOptions{Page: 1})

	require.NoError(t, err)
	assert.Equal(t, 40, result.Total)
	assert.True(t, result.HasMore)
	require.Len(t, result.Items, 1)

	candidate := result.Items[0]
	assert.Equal(t, "React", candidate.Title)
	assert.Equal(t, model.CategoryFrontend, candidate.Category)
	assert.Equal(t, model.StatusNotStarted, candidate.Status)
	assert.Equal(t, model.DifficultyAdvanced, candidate.Difficulty)
	assert.Equal(t, 60, candidate.EstimatedHours)
	assert.Equal(t, []string{
		"https://github.com/facebook/react",
		"https://react.dev",
	}, candidate.Resources)
}

func TestAdapter_Search_BlankQueryShortCircuits(t *testing.T) {
	adapter := NewAdapter("http://unused.invalid", "", 10)

	result, err := adapter.Search(context.Background(), "   ", source.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestFallbackCandidates(t *testing.T) {
	candidates := FallbackCandidates("svelte")
	require.Len(t, candidates, 1)
	assert.Equal(t, "Svelte", candidates[0].Title)
	assert.Equal(t, model.StatusNotStarted, candidates[0].Status)
	assert.NotEmpty(t, candidates[0].Resources)

	assert.Nil(t, FallbackCandidates("  "))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		repo Repo
		want string
	}{
		{"react by name", Repo{Name: "react-query", Language: "TypeScript"}, model.CategoryFrontend},
		{"js default backend", Repo{Name: "express", Language: "JavaScript"}, model.CategoryBackend},
		{"go backend", Repo{Name: "gin", Language: "Go"}, model.CategoryBackend},
		{"css frontend", Repo{Name: "tailwind", Language: "CSS"}, model.CategoryFrontend},
		{"docker keyword", Repo{Name: "compose", Description: "define and run Docker apps"}, model.CategoryDevops},
		{"database keyword", Repo{Name: "prisma", Description: "next-generation database toolkit"}, model.CategoryDatabase},
		{"unknown", Repo{Name: "mystery"}, model.CategoryTools},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorize(tt.repo))
		})
	}
}

func TestFormatTechName(t *testing.T) {
	assert.Equal(t, "React Native", formatTechName("react-native", "react"))
	assert.Equal(t, "Node Best Practices", formatTechName("awesome-node-best-practices", "node"))
	assert.Equal(t, "JavaScript Algorithms", formatTechName("js-algorithms", "algorithms"))
	// Generic names fall back to the query.
	assert.Equal(t, "Testing", formatTechName("api", "testing"))
}

func TestDifficultyAndHoursFromStars(t *testing.T) {
	assert.Equal(t, model.DifficultyBeginner, difficultyFromStars(500))
	assert.Equal(t, model.DifficultyIntermediate, difficultyFromStars(5000))
	assert.Equal(t, model.DifficultyAdvanced, difficultyFromStars(50000))

	assert.Equal(t, 15, hoursFromStars(500))
	assert.Equal(t, 25, hoursFromStars(5000))
	assert.Equal(t, 40, hoursFromStars(20000))
	assert.Equal(t, 60, hoursFromStars(80000))
}
