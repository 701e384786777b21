package bookmarks

import "sync"

// Serialized guards a Store with a mutex so that the read-modify-persist
// sequence of Toggle and Cleanup runs for one caller at a time.
type Serialized struct {
	mu    sync.Mutex
	store *Store
}

// NewSerialized wraps store. The store must not be used directly afterwards.
func NewSerialized(store *Store) *Serialized {
	return &Serialized{store: store}
}

func (s *Serialized) IsSaved(rawID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.IsSaved(rawID)
}

func (s *Serialized) Toggle(rawID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Toggle(rawID)
}

// ToggleAndCheck toggles rawID and returns the resulting state without
// letting another writer in between.
func (s *Serialized) ToggleAndCheck(rawID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Toggle(rawID)
	return s.store.IsSaved(rawID)
}

func (s *Serialized) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Cleanup()
}

func (s *Serialized) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

func (s *Serialized) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// OnChange registers an observer. Observers run while the lock is held and
// must not call back into s.
func (s *Serialized) OnChange(fn func(ids []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.OnChange(fn)
}
