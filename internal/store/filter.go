package store

import (
	"strings"

	"github.com/nhle/techtrack/internal/model"
)

// StatusFilter selects which statuses a projection passes through.
type StatusFilter string

// FilterAll passes every record; the remaining filters require exact
// status equality.
const (
	FilterAll        StatusFilter = "all"
	FilterNotStarted StatusFilter = StatusFilter(model.StatusNotStarted)
	FilterInProgress StatusFilter = StatusFilter(model.StatusInProgress)
	FilterCompleted  StatusFilter = StatusFilter(model.StatusCompleted)
)

// StatusFilters lists the filters in the order the UI cycles them.
var StatusFilters = []StatusFilter{
	FilterAll, FilterNotStarted, FilterInProgress, FilterCompleted,
}

// Next returns the filter that follows f in the UI cycle.
func (f StatusFilter) Next() StatusFilter {
	for i, cur := range StatusFilters {
		if cur == f {
			return StatusFilters[(i+1)%len(StatusFilters)]
		}
	}
	return FilterAll
}

// Projection is a pure derived view over a technology collection: the
// subsequence matching a free-text query AND a status filter. It never
// mutates its input and preserves the input order. Collections are
// small, so every change recomputes with a full scan.
type Projection struct {
	// Query is matched case-insensitively as a substring of title,
	// description, notes, or category. Empty matches everything.
	Query string

	// Status is the status filter; FilterAll passes every record.
	Status StatusFilter
}

// Apply returns the records of techs matching the projection, in the
// order they appear in techs.
func (p Projection) Apply(techs []model.Technology) []model.Technology {
	query := strings.ToLower(strings.TrimSpace(p.Query))
	status := p.Status
	if status == "" {
		status = FilterAll
	}

	out := make([]model.Technology, 0, len(techs))
	for _, t := range techs {
		if status != FilterAll && model.Status(status) != t.Status {
			continue
		}
		if query != "" && !matchesQuery(t, query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesQuery reports whether any searched field of t contains the
// lowercase query as a substring.
func matchesQuery(t model.Technology, query string) bool {
	for _, field := range []string{t.Title, t.Description, t.Notes, t.Category} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
