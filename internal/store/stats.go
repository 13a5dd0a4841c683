package store

import (
	"math"

	"github.com/nhle/techtrack/internal/model"
)

// Progress returns the completed share of the collection as a rounded
// percentage in [0,100]. An empty collection is 0.
func (s *Store) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return progress(s.techs)
}

// CountsByStatus returns the number of technologies per status. All
// three statuses are always present as keys.
func (s *Store) CountsByStatus() map[model.Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[model.Status]int{
		model.StatusNotStarted: 0,
		model.StatusInProgress: 0,
		model.StatusCompleted:  0,
	}
	for _, t := range s.techs {
		counts[t.Status]++
	}
	return counts
}

// CategoryStats returns per-category status breakdowns, accumulated in
// one pass over the collection.
func (s *Store) CategoryStats() map[string]model.CategoryStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[string]model.CategoryStat)
	for _, t := range s.techs {
		cs := stats[t.Category]
		cs.Total++
		switch t.Status {
		case model.StatusCompleted:
			cs.Completed++
		case model.StatusInProgress:
			cs.InProgress++
		default:
			cs.NotStarted++
		}
		stats[t.Category] = cs
	}
	return stats
}

// progress computes the rounded completion percentage of techs.
func progress(techs []model.Technology) int {
	if len(techs) == 0 {
		return 0
	}
	completed := 0
	for _, t := range techs {
		if t.Status == model.StatusCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(techs))))
}
