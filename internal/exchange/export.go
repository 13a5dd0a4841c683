// Package exchange implements the import/export file format: a JSON
// document carrying the technology collection plus summary statistics.
// Import validation is atomic: a file either passes every check or is
// rejected whole with a message naming the offending field or record.
package exchange

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nhle/techtrack/internal/model"
)

// FormatVersion is the file format version written into exports.
const FormatVersion = "1.0"

// Statistics summarizes the exported collection.
type Statistics struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}

// File is the on-disk import/export document.
type File struct {
	Version      string             `json:"version"`
	ExportedAt   time.Time          `json:"exportedAt"`
	Technologies []model.Technology `json:"technologies"`
	Statistics   Statistics         `json:"statistics"`
}

// NewExport builds an export document for the given collection.
func NewExport(techs []model.Technology, now time.Time) File {
	stats := Statistics{Total: len(techs)}
	for _, t := range techs {
		switch t.Status {
		case model.StatusCompleted:
			stats.Completed++
		case model.StatusInProgress:
			stats.InProgress++
		default:
			stats.NotStarted++
		}
	}

	return File{
		Version:      FormatVersion,
		ExportedAt:   now.UTC(),
		Technologies: techs,
		Statistics:   stats,
	}
}

// WriteFile writes the export document to path as indented JSON.
func (f File) WriteFile(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export to %s: %w", path, err)
	}
	return nil
}
