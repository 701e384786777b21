package bookmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// Delimiter separates the collection name from the item number.
	Delimiter = "_"

	// DefaultStorageKey is the slot key used when no other key is configured.
	DefaultStorageKey = "savedHadiths"
)

// Store holds the saved set. It is not safe for concurrent use, see Serialized.
type Store struct {
	slot      Slot
	key       string
	diag      Diagnostics
	saved     map[string]struct{}
	observers []func(ids []string)

	skipStartupCleanup bool
}

// Option configures a Store.
type Option func(*Store)

// WithStorageKey sets the slot key the set is persisted under.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDiagnostics sets the sink for recovered load and save failures.
func WithDiagnostics(d Diagnostics) Option {
	return func(s *Store) {
		if d != nil {
			s.diag = d
		}
	}
}

// WithObserver registers a change observer at construction time.
func WithObserver(fn func(ids []string)) Option {
	return func(s *Store) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// SkipStartupCleanup leaves legacy entries untouched when the store is built.
func SkipStartupCleanup() Option {
	return func(s *Store) {
		s.skipStartupCleanup = true
	}
}

// New loads the saved set from slot and, unless SkipStartupCleanup is given,
// collapses inconsistently formatted entries left by older versions.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		key:   DefaultStorageKey,
		diag:  discardDiagnostics{},
		saved: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	if !s.skipStartupCleanup {
		s.Cleanup()
	}
	return s
}

// Normalize returns the canonical form of raw. Input that does not split into
// exactly two parts on Delimiter is returned unchanged.
func Normalize(raw string) string {
	parts := strings.Split(raw, Delimiter)
	if len(parts) != 2 {
		return raw
	}
	return strings.TrimSpace(parts[0]) + Delimiter + strings.TrimSpace(parts[1])
}

// Join builds a canonical identifier from its components.
func Join(collection, number string) string {
	return Normalize(collection + Delimiter + number)
}

// Split breaks a canonical identifier into collection and number.
func Split(id string) (collection, number string, ok bool) {
	parts := strings.Split(Normalize(id), Delimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// IsSaved reports whether the normalized form of rawID is in the set.
func (s *Store) IsSaved(rawID string) bool {
	_, ok := s.saved[Normalize(rawID)]
	return ok
}

// Toggle removes rawID if it is saved and adds it otherwise.
// The full set is persisted and observers are notified either way.
func (s *Store) Toggle(rawID string) {
	id := Normalize(rawID)
	if _, ok := s.saved[id]; ok {
		delete(s.saved, id)
	} else {
		s.saved[id] = struct{}{}
	}
	s.commit()
}

// Cleanup re-normalizes every entry, collapsing duplicates, and persists the result.
func (s *Store) Cleanup() {
	cleaned := make(map[string]struct{}, len(s.saved))
	for id := range s.saved {
		cleaned[Normalize(id)] = struct{}{}
	}
	s.saved = cleaned
	s.commit()
}

// List returns the saved identifiers in sorted order.
func (s *Store) List() []string {
	ids := make([]string, 0, len(s.saved))
	for id := range s.saved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of saved identifiers.
func (s *Store) Len() int {
	return len(s.saved)
}

// OnChange registers fn to be called with a sorted snapshot after every mutation.
func (s *Store) OnChange(fn func(ids []string)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

func (s *Store) load() {
	data, err := s.slot.Read(s.key)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			s.diag.Report(OpLoad, fmt.Errorf("read %q: %w", s.key, err))
		}
		return
	}
	if len(data) == 0 {
		return
	}

	ids, err := Decode(data)
	if err != nil {
		s.diag.Report(OpLoad, fmt.Errorf("decode %q: %w", s.key, err))
		return
	}
	for _, id := range ids {
		s.saved[id] = struct{}{}
	}
}

func (s *Store) commit() {
	ids := s.List()
	s.persist(ids)
	for _, fn := range s.observers {
		fn(ids)
	}
}

func (s *Store) persist(ids []string) {
	data, err := Encode(ids)
	if err != nil {
		s.diag.Report(OpSave, fmt.Errorf("encode: %w", err))
		return
	}
	if err := s.slot.Write(s.key, data); err != nil {
		s.diag.Report(OpSave, fmt.Errorf("write %q: %w", s.key, err))
	}
}

// Encode serializes identifiers as a JSON array of strings.
func Encode(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

// Decode parses a JSON array of strings.
func Decode(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
