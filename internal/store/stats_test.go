package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/tests/testutil"
)

func TestProgress_RoundsToNearestPercent(t *testing.T) {
	s, _ := testutil.NewTestStore(t,
		tech(1, "Go", model.StatusCompleted),
		tech(2, "Rust", model.StatusCompleted),
		tech(3, "Zig", model.StatusNotStarted),
	)

	// 2 of 3 completed rounds to 67, not 66.
	assert.Equal(t, 67, s.Progress())
}

func TestCountsByStatus_AlwaysCarriesAllStatuses(t *testing.T) {
	s, _ := testutil.NewTestStore(t,
		tech(1, "Go", model.StatusCompleted),
		tech(2, "Rust", model.StatusCompleted),
		tech(3, "Zig", model.StatusInProgress),
	)

	counts := s.CountsByStatus()
	require.Len(t, counts, 3)
	assert.Equal(t, 2, counts[model.StatusCompleted])
	assert.Equal(t, 1, counts[model.StatusInProgress])
	assert.Equal(t, 0, counts[model.StatusNotStarted])
}

func TestCategoryStats(t *testing.T) {
	front1 := tech(1, "React", model.StatusCompleted)
	front2 := tech(2, "Vue", model.StatusInProgress)
	back := tech(3, "Express", model.StatusNotStarted)
	back.Category = model.CategoryBackend

	s, _ := testutil.NewTestStore(t, front1, front2, back)

	stats := s.CategoryStats()
	require.Len(t, stats, 2)

	frontend := stats[model.CategoryFrontend]
	assert.Equal(t, 2, frontend.Total)
	assert.Equal(t, 1, frontend.Completed)
	assert.Equal(t, 1, frontend.InProgress)
	assert.Equal(t, 0, frontend.NotStarted)

	backend := stats[model.CategoryBackend]
	assert.Equal(t, 1, backend.Total)
	assert.Equal(t, 1, backend.NotStarted)
}
