// Package store owns the authoritative in-memory collection of
// technologies and mirrors every mutation to a persistent key-value
// binding under one fixed slot. All derived views (filter projections,
// statistics) read from this package; nothing else touches the slot.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/storage"
)

// SlotKey is the fixed storage slot holding the technology collection.
const SlotKey = "technologies"

// schemaVersion is written into the persisted envelope so the layout
// can evolve without guessing.
const schemaVersion = 1

// Sentinel errors returned by mutation operations.
var (
	ErrNotFound       = errors.New("technology not found")
	ErrDuplicateTitle = errors.New("a technology with this title already exists")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrEmptyTitle     = errors.New("technology title must not be empty")
)

// envelope is the persisted form of the collection.
type envelope struct {
	SchemaVersion int                `json:"schemaVersion"`
	Technologies  []model.Technology `json:"technologies"`
}

// Store is the single authoritative collection of technology records.
// Mutations update the in-memory collection and persist the whole
// collection before returning; enrichment commands complete on other
// goroutines, so access is mutex-guarded.
type Store struct {
	mu      sync.Mutex
	binding storage.Binding
	logger  *slog.Logger
	techs   []model.Technology
	lastID  int64
}

// Open loads the collection from the binding's technologies slot.
// An absent slot seeds the starter catalogue; a corrupt slot is logged
// and the starter catalogue is used without overwriting the slot (the
// next successful mutation rewrites it).
func Open(b storage.Binding, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{binding: b, logger: logger}

	var env envelope
	found, err := b.Read(context.Background(), SlotKey, &env)
	switch {
	case err != nil:
		// The slot may predate the envelope and hold a bare array.
		var legacy []model.Technology
		if lfound, lerr := b.Read(context.Background(), SlotKey, &legacy); lerr == nil && lfound {
			logger.Info("migrating legacy technologies slot", "count", len(legacy))
			s.techs = legacy
			break
		}
		logger.Warn("unreadable technologies slot, starting from defaults", "error", err)
		s.techs = DefaultCatalogue()
	case !found:
		s.techs = DefaultCatalogue()
	default:
		s.techs = env.Technologies
	}

	for _, t := range s.techs {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s
}

// Snapshot returns an order-preserving copy of the collection.
func (s *Store) Snapshot() []model.Technology {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Technology, len(s.techs))
	copy(out, s.techs)
	return out
}

// Get returns the technology with the given ID.
func (s *Store) Get(id int64) (model.Technology, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.techs {
		if t.ID == id {
			return t, true
		}
	}
	return model.Technology{}, false
}

// Len returns the number of technologies in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.techs)
}

// HasTitle reports whether a technology with the given title exists,
// compared case-insensitively.
func (s *Store) HasTitle(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.titleExists(title)
}

// Titles returns all current titles, for duplicate checks during import.
func (s *Store) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	titles := make([]string, len(s.techs))
	for i, t := range s.techs {
		titles[i] = t.Title
	}
	return titles
}

// UpdateStatus replaces the status of the technology with the given ID
// and stamps LastUpdated. The collection is unchanged when the ID is
// absent or the status is not one of the allowed values.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	now := time.Now().UTC()
	s.techs[i].Status = status
	s.techs[i].LastUpdated = &now
	s.persist(ctx)
	return nil
}

// UpdateNotes replaces the notes of the technology with the given ID
// and stamps LastUpdated.
func (s *Store) UpdateNotes(ctx context.Context, id int64, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	now := time.Now().UTC()
	s.techs[i].Notes = notes
	s.techs[i].LastUpdated = &now
	s.persist(ctx)
	return nil
}

// CycleStatus advances the technology's status one step along the fixed
// cycle not-started -> in-progress -> completed -> not-started and
// returns the new status.
func (s *Store) CycleStatus(ctx context.Context, id int64) (model.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return "", ErrNotFound
	}

	now := time.Now().UTC()
	next := s.techs[i].Status.Next()
	s.techs[i].Status = next
	s.techs[i].LastUpdated = &now
	s.persist(ctx)
	return next, nil
}

// MarkAllCompleted sets every technology's status to completed.
// Calling it twice yields the same collection as calling it once.
func (s *Store) MarkAllCompleted(ctx context.Context) {
	s.setAllStatuses(ctx, model.StatusCompleted)
}

// ResetAllStatuses sets every technology's status to not-started.
func (s *Store) ResetAllStatuses(ctx context.Context) {
	s.setAllStatuses(ctx, model.StatusNotStarted)
}

func (s *Store) setAllStatuses(ctx context.Context, status model.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for i := range s.techs {
		if s.techs[i].Status == status {
			continue
		}
		s.techs[i].Status = status
		s.techs[i].LastUpdated = &now
	}
	s.persist(ctx)
}

// Add finalizes and appends a new technology: fresh ID, defaulted
// status and notes, appended at the end. It fails with
// ErrDuplicateTitle when a technology with the same title exists
// (case-insensitive) and ErrEmptyTitle on a blank title.
func (s *Store) Add(ctx context.Context, draft model.Technology) (model.Technology, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return model.Technology{}, ErrEmptyTitle
	}
	if s.titleExists(draft.Title) {
		return model.Technology{}, fmt.Errorf("%w: %q", ErrDuplicateTitle, draft.Title)
	}

	tech := s.finalize(draft)
	s.techs = append(s.techs, tech)
	s.persist(ctx)
	return tech, nil
}

// AddMany appends a batch of technologies, skipping any whose title
// collides case-insensitively with an existing title or with an
// earlier record in the same batch. It returns the records actually
// added.
func (s *Store) AddMany(ctx context.Context, drafts []model.Technology) []model.Technology {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []model.Technology
	for _, draft := range drafts {
		draft.Title = strings.TrimSpace(draft.Title)
		if draft.Title == "" || s.titleExists(draft.Title) {
			continue
		}
		tech := s.finalize(draft)
		s.techs = append(s.techs, tech)
		added = append(added, tech)
	}

	if len(added) > 0 {
		s.persist(ctx)
	}
	return added
}

// Remove deletes the technology with the given ID. Removal is
// immediate and irreversible; there is no soft delete.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	s.techs = append(s.techs[:i], s.techs[i+1:]...)
	s.persist(ctx)
	return nil
}

// RemoveAll empties the collection.
func (s *Store) RemoveAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.techs = nil
	s.persist(ctx)
}

// finalize assigns a fresh ID and fills defaults on a draft record.
// Caller holds the lock.
func (s *Store) finalize(draft model.Technology) model.Technology {
	draft.ID = s.nextID()
	if !draft.Status.Valid() {
		draft.Status = model.StatusNotStarted
	}
	return draft
}

// nextID derives a fresh identifier from the wall clock, bumping past
// the last issued ID so identifiers stay unique and are never reused
// even within the same millisecond. Caller holds the lock.
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// indexOf returns the position of the technology with the given ID, or
// -1. Caller holds the lock.
func (s *Store) indexOf(id int64) int {
	for i, t := range s.techs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// titleExists reports a case-insensitive title collision. Caller holds
// the lock.
func (s *Store) titleExists(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, t := range s.techs {
		if strings.ToLower(t.Title) == lower {
			return true
		}
	}
	return false
}

// persist mirrors the collection to the storage slot. A write failure
// is logged and swallowed: the in-memory collection stays current and
// the UI stays alive; the previously persisted state is untouched.
// Caller holds the lock.
func (s *Store) persist(ctx context.Context) {
	env := envelope{SchemaVersion: schemaVersion, Technologies: s.techs}
	if err := s.binding.Write(ctx, SlotKey, env); err != nil {
		s.logger.Error("persisting technologies failed", "error", err, "count", len(s.techs))
	}
}
