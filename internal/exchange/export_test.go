package exchange_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/techtrack/internal/exchange"
	"github.com/nhle/techtrack/internal/model"
)

func TestNewExport_SummarizesStatuses(t *testing.T) {
	techs := []model.Technology{
		{ID: 1, Title: "Go", Status: model.StatusCompleted},
		{ID: 2, Title: "Rust", Status: model.StatusInProgress},
		{ID: 3, Title: "Zig", Status: model.StatusNotStarted},
		{ID: 4, Title: "C", Status: model.StatusCompleted},
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := exchange.NewExport(techs, now)

	assert.Equal(t, exchange.FormatVersion, doc.Version)
	assert.Equal(t, now, doc.ExportedAt)
	assert.Equal(t, 4, doc.Statistics.Total)
	assert.Equal(t, 2, doc.Statistics.Completed)
	assert.Equal(t, 1, doc.Statistics.InProgress)
	assert.Equal(t, 1, doc.Statistics.NotStarted)
}

func TestExport_RoundTripsThroughImport(t *testing.T) {
	techs := []model.Technology{
		{ID: 1, Title: "Go", Description: "systems language", Status: model.StatusCompleted},
		{ID: 2, Title: "Rust", Description: "borrow checker", Status: model.StatusNotStarted},
	}
	doc := exchange.NewExport(techs, time.Now())

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, doc.WriteFile(path))

	plan, err := exchange.ReadFile(path, []string{"Go"})
	require.NoError(t, err)
	assert.Len(t, plan.Technologies, 2)
	assert.Equal(t, 1, plan.Duplicates)
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := exchange.ReadFile(filepath.Join(t.TempDir(), "nope.json"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
