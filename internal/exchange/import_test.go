package exchange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/techtrack/internal/exchange"
	"github.com/nhle/techtrack/internal/model"
)

func TestParseImport_Valid(t *testing.T) {
	data := []byte(`{
		"version": "1.0",
		"technologies": [
			{"title": "Go", "description": "systems language", "status": "in-progress"},
			{"title": "Rust", "description": "borrow checker"}
		]
	}`)

	plan, err := exchange.ParseImport(data, nil)
	require.NoError(t, err)
	require.Len(t, plan.Technologies, 2)
	assert.Equal(t, 0, plan.Duplicates)
	assert.Equal(t, model.StatusInProgress, plan.Technologies[0].Status)
}

func TestParseImport_MissingTechnologiesArray(t *testing.T) {
	for _, data := range []string{
		`{"version": "1.0"}`,
		`{"version": "1.0", "technologies": null}`,
	} {
		_, err := exchange.ParseImport([]byte(data), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing "technologies" array`)
	}
}

func TestParseImport_TechnologiesMustBeArray(t *testing.T) {
	_, err := exchange.ParseImport([]byte(`{"technologies": {"title": "Go"}}`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an array")
}

func TestParseImport_EmptyArrayRejected(t *testing.T) {
	_, err := exchange.ParseImport([]byte(`{"technologies": []}`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no technologies")
}

func TestParseImport_MalformedJSON(t *testing.T) {
	_, err := exchange.ParseImport([]byte(`{"technologies": [`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid import file")
}

func TestParseImport_RecordWithoutTitleNamedByPosition(t *testing.T) {
	data := []byte(`{"technologies": [
		{"title": "Go", "description": "fine"},
		{"description": "no title"}
	]}`)

	_, err := exchange.ParseImport(data, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "technology #2")
	assert.Contains(t, err.Error(), "missing title")
}

func TestParseImport_RecordWithoutDescriptionNamedByTitle(t *testing.T) {
	data := []byte(`{"technologies": [{"title": "Go"}]}`)

	_, err := exchange.ParseImport(data, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Go"`)
	assert.Contains(t, err.Error(), "missing description")
}

func TestParseImport_TitleLengthLimit(t *testing.T) {
	long := make([]byte, exchange.MaxTitleLength+1)
	for i := range long {
		long[i] = 'x'
	}
	data := []byte(`{"technologies": [{"title": "` + string(long) + `", "description": "d"}]}`)

	_, err := exchange.ParseImport(data, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title too long")

	// Exactly at the limit passes.
	ok := []byte(`{"technologies": [{"title": "` + string(long[1:]) + `", "description": "d"}]}`)
	_, err = exchange.ParseImport(ok, nil)
	assert.NoError(t, err)
}

func TestParseImport_CountsDuplicatesCaseInsensitively(t *testing.T) {
	data := []byte(`{"technologies": [
		{"title": "REACT HOOKS", "description": "d"},
		{"title": "Svelte", "description": "d"}
	]}`)

	plan, err := exchange.ParseImport(data, []string{"React Hooks", "Vue"})
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Duplicates)
	assert.Len(t, plan.Technologies, 2)
}

func TestRecords_FinalizesForInsertion(t *testing.T) {
	data := []byte(`{"technologies": [
		{"id": 42, "title": "Go", "description": "d", "status": "bogus"}
	]}`)

	plan, err := exchange.ParseImport(data, nil)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := plan.Records(now)
	require.Len(t, records, 1)

	assert.Zero(t, records[0].ID)
	assert.Equal(t, model.StatusNotStarted, records[0].Status)
	require.NotNil(t, records[0].ImportedAt)
	assert.Equal(t, now, *records[0].ImportedAt)
}
