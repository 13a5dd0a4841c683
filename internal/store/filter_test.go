package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/store"
)

func sampleTechs() []model.Technology {
	node := tech(1, "Node.js", model.StatusInProgress)
	node.Category = model.CategoryBackend
	node.Notes = "event loop"

	react := tech(2, "React", model.StatusCompleted)
	react.Description = "component UI library"

	mongo := tech(3, "MongoDB", model.StatusNotStarted)
	mongo.Category = model.CategoryDatabase

	return []model.Technology{node, react, mongo}
}

func TestProjection_EmptyQueryAndAllFilterIsIdentity(t *testing.T) {
	techs := sampleTechs()

	got := store.Projection{Status: store.FilterAll}.Apply(techs)

	assert.Equal(t, techs, got)
}

func TestProjection_QueryMatchesAcrossFields(t *testing.T) {
	techs := sampleTechs()

	byTitle := store.Projection{Query: "node"}.Apply(techs)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Node.js", byTitle[0].Title)

	byDescription := store.Projection{Query: "component"}.Apply(techs)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "React", byDescription[0].Title)

	byNotes := store.Projection{Query: "EVENT LOOP"}.Apply(techs)
	require.Len(t, byNotes, 1)
	assert.Equal(t, "Node.js", byNotes[0].Title)

	byCategory := store.Projection{Query: "database"}.Apply(techs)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "MongoDB", byCategory[0].Title)
}

func TestProjection_StatusAndQueryCombine(t *testing.T) {
	techs := sampleTechs()

	got := store.Projection{Query: "o", Status: store.FilterInProgress}.Apply(techs)
	require.Len(t, got, 1)
	assert.Equal(t, "Node.js", got[0].Title)
}

func TestProjection_NoMatchYieldsEmpty(t *testing.T) {
	got := store.Projection{Query: "kubernetes"}.Apply(sampleTechs())
	assert.Empty(t, got)
}

func TestProjection_PreservesInputOrder(t *testing.T) {
	techs := []model.Technology{
		tech(1, "Go Basics", model.StatusNotStarted),
		tech(2, "Rust", model.StatusNotStarted),
		tech(3, "Django", model.StatusNotStarted),
	}

	got := store.Projection{Query: "go"}.Apply(techs)
	require.Len(t, got, 2)
	assert.Equal(t, "Go Basics", got[0].Title)
	assert.Equal(t, "Django", got[1].Title)
}

func TestStatusFilter_NextCyclesThroughAll(t *testing.T) {
	f := store.FilterAll
	seen := []store.StatusFilter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}

	assert.Equal(t, store.StatusFilters, seen)
	assert.Equal(t, store.FilterAll, f.Next())
}

func TestStatusFilter_NextOnUnknownFallsBackToAll(t *testing.T) {
	assert.Equal(t, store.FilterAll, store.StatusFilter("bogus").Next())
}
