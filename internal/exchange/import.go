package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nhle/techtrack/internal/model"
)

// MaxTitleLength is the longest title accepted from an import file.
const MaxTitleLength = 50

// ImportPlan is a validated import: the records that passed every
// check, plus how many of them duplicate existing titles. The caller
// shows Duplicates to the user before proceeding; duplicates are then
// skipped by the store, never merged.
type ImportPlan struct {
	Technologies []model.Technology
	Duplicates   int
}

// ReadFile loads and validates an import file from path.
func ReadFile(path string, existingTitles []string) (*ImportPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file %s: %w", path, err)
	}
	return ParseImport(data, existingTitles)
}

// ParseImport validates an import document against the rules of the
// file format. The whole import is rejected on the first violation;
// nothing is partially accepted.
func ParseImport(data []byte, existingTitles []string) (*ImportPlan, error) {
	var doc struct {
		Version      string          `json:"version"`
		Technologies json.RawMessage `json:"technologies"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid import file: %w", err)
	}

	if len(doc.Technologies) == 0 || string(doc.Technologies) == "null" {
		return nil, errors.New(`invalid import file: missing "technologies" array`)
	}

	var rawRecords []json.RawMessage
	if err := json.Unmarshal(doc.Technologies, &rawRecords); err != nil {
		return nil, errors.New(`invalid import file: "technologies" must be an array`)
	}
	if len(rawRecords) == 0 {
		return nil, errors.New("import file contains no technologies")
	}

	existing := make(map[string]bool, len(existingTitles))
	for _, title := range existingTitles {
		existing[strings.ToLower(title)] = true
	}

	plan := &ImportPlan{}
	for i, raw := range rawRecords {
		var tech model.Technology
		if err := json.Unmarshal(raw, &tech); err != nil {
			return nil, fmt.Errorf("technology #%d: malformed record: %w", i+1, err)
		}

		if strings.TrimSpace(tech.Title) == "" {
			return nil, fmt.Errorf("technology #%d: missing title", i+1)
		}
		if strings.TrimSpace(tech.Description) == "" {
			return nil, fmt.Errorf("technology %q: missing description", tech.Title)
		}
		if len(tech.Title) > MaxTitleLength {
			return nil, fmt.Errorf(
				"technology %q: title too long (max %d characters)",
				tech.Title, MaxTitleLength,
			)
		}

		if existing[strings.ToLower(tech.Title)] {
			plan.Duplicates++
		}
		plan.Technologies = append(plan.Technologies, tech)
	}

	return plan, nil
}

// Records finalizes the plan's technologies for insertion: defaulted
// status and notes, import timestamp stamped. Fresh IDs are assigned
// by the store, which also skips the duplicates.
func (p *ImportPlan) Records(now time.Time) []model.Technology {
	now = now.UTC()
	records := make([]model.Technology, len(p.Technologies))
	for i, tech := range p.Technologies {
		tech.ID = 0
		if !tech.Status.Valid() {
			tech.Status = model.StatusNotStarted
		}
		tech.ImportedAt = &now
		records[i] = tech
	}
	return records
}
