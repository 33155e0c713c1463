// Package store owns the canonical mood entry collection.
//
// The collection is kept as one encoded value under a single key of a Storage
// port. Every write loads the whole collection, changes it and writes it back.
// Entries are identified by their day-key, so at most one entry exists per
// calendar day.
package store

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tgienger/moody/internal/models"
)

// DefaultKey is the storage key holding the encoded collection
const DefaultKey = "get-moody-data"

// Store provides day-granularity upsert and lookup of mood entries
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	loc     *time.Location
	log     *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLocation sets the timezone whose calendar days are used as day-keys
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger used to report unreadable data
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a store on top of storage
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		loc:     time.Local,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the timezone used for day-keys
func (s *Store) Location() *time.Location {
	return s.loc
}

// Save inserts or replaces the entry for date's day. An existing entry keeps
// its position in the collection.
func (s *Store) Save(date time.Time, mood models.Mood, note string) error {
	if !mood.Valid() {
		return fmt.Errorf("save %s: %w: %q", models.DayKey(date.In(s.loc)), models.ErrInvalidMood, mood)
	}

	entry := models.MoodEntry{Date: date.In(s.loc), Mood: mood, Note: note}
	key := entry.DayKey()

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	replaced := false
	for i := range entries {
		if entries[i].DayKey() == key {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err := s.persist(entries); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.log.Debug("mood saved",
		zap.String("day", key),
		zap.String("mood", string(mood)),
		zap.Bool("replaced", replaced))
	return nil
}

// GetAll returns the collection in storage order. Missing or unreadable data
// yields an empty collection.
func (s *Store) GetAll() []models.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// GetForDate returns the entry sharing date's day-key
func (s *Store) GetForDate(date time.Time) (models.MoodEntry, bool) {
	key := models.DayKey(date.In(s.loc))
	for _, e := range s.GetAll() {
		if e.DayKey() == key {
			return e, true
		}
	}
	return models.MoodEntry{}, false
}

// Delete removes the entry for date's day. Deleting a day without an entry is
// a no-op apart from rewriting the unchanged collection.
func (s *Store) Delete(date time.Time) error {
	key := models.DayKey(date.In(s.loc))

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	kept := entries[:0]
	for _, e := range entries {
		if e.DayKey() != key {
			kept = append(kept, e)
		}
	}

	if err := s.persist(kept); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.log.Debug("mood deleted", zap.String("day", key), zap.Bool("existed", len(kept) != len(entries)))
	return nil
}

// Replace swaps the whole collection. Entries sharing a day-key collapse into
// the first one's position with the last one's content.
func (s *Store) Replace(entries []models.MoodEntry) error {
	out := make([]models.MoodEntry, len(entries))
	for i, e := range entries {
		e.Date = e.Date.In(s.loc)
		out[i] = e
	}
	out = collapseDays(out)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(out); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}

// load reads and decodes the collection; callers hold s.mu
func (s *Store) load() []models.MoodEntry {
	data, ok, err := s.storage.Read(s.key)
	if err != nil {
		s.log.Warn("reading mood data failed, using empty collection",
			zap.String("key", s.key), zap.Error(err))
		return []models.MoodEntry{}
	}
	if !ok {
		return []models.MoodEntry{}
	}

	entries, err := Decode(data)
	if err != nil {
		s.log.Warn("parsing mood data failed, using empty collection",
			zap.String("key", s.key), zap.Error(err))
		return []models.MoodEntry{}
	}
	for i := range entries {
		entries[i].Date = entries[i].Date.In(s.loc)
	}

	// Records written under another zone can land on the same day here
	collapsed := collapseDays(entries)
	if len(collapsed) != len(entries) {
		s.log.Debug("collapsed entries sharing a day",
			zap.String("key", s.key), zap.Int("dropped", len(entries)-len(collapsed)))
	}
	return collapsed
}

// collapseDays keeps one entry per day-key: the first one's position with the
// last one's content. The result is never nil.
func collapseDays(entries []models.MoodEntry) []models.MoodEntry {
	out := make([]models.MoodEntry, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := index[e.DayKey()]; ok {
			out[i] = e
			continue
		}
		index[e.DayKey()] = len(out)
		out = append(out, e)
	}
	return out
}

func (s *Store) persist(entries []models.MoodEntry) error {
	data, err := Encode(entries)
	if err != nil {
		return err
	}
	return s.storage.Write(s.key, data)
}
