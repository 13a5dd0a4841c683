package model

import "time"

// Status is the study status of a technology. The set is closed: no
// other value is ever persisted.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// AllStatuses lists the statuses in their fixed cycle order.
var AllStatuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Next returns the status that follows s in the fixed cycle
// not-started -> in-progress -> completed -> not-started.
// Unknown values restart the cycle.
func (s Status) Next() Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	case StatusCompleted:
		return StatusNotStarted
	default:
		return StatusNotStarted
	}
}

// Valid reports whether s is one of the three allowed statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Difficulty is a rough self-assessed learning difficulty label.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Canonical category labels offered by the UI. Category is an open
// string; anything else is accepted and grouped as-is.
const (
	CategoryFrontend = "frontend"
	CategoryBackend  = "backend"
	CategoryDatabase = "database"
	CategoryDevops   = "devops"
	CategoryTools    = "tools"
)

// Categories lists the canonical category labels for form selectors.
var Categories = []string{
	CategoryFrontend,
	CategoryBackend,
	CategoryDatabase,
	CategoryDevops,
	CategoryTools,
}

// Technology is the single tracked entity: a named subject of study
// with a status and free-text notes. JSON field names match the
// import/export file format, so exported files round-trip.
type Technology struct {
	// ID is unique within the collection and never reused.
	ID int64 `json:"id"`

	// Title is the non-empty display name.
	Title string `json:"title"`

	// Description is free text and may be empty.
	Description string `json:"description"`

	// Category is an open grouping label (see Categories).
	Category string `json:"category"`

	// Status is the study status (see Status constants).
	Status Status `json:"status"`

	// Notes is free text mutated independently of status.
	Notes string `json:"notes"`

	// Difficulty is an optional difficulty label.
	Difficulty Difficulty `json:"difficulty,omitempty"`

	// EstimatedHours is an optional positive learning-time estimate.
	EstimatedHours int `json:"estimatedHours,omitempty"`

	// Resources is an ordered list of reference URLs.
	Resources []string `json:"resources,omitempty"`

	// LastUpdated is set on every status or notes mutation.
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`

	// ImportedAt is set when the record arrived via file import.
	ImportedAt *time.Time `json:"importedAt,omitempty"`
}

// CategoryStat aggregates per-category status counts.
type CategoryStat struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}
