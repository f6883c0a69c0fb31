package dataset

import "sync/atomic"

// Store holds the currently loaded dataset. The snapshot is replaced whole on
// upload, never partially mutated, so readers need no locking: they either
// see the previous snapshot or the new one.
type Store struct {
	current atomic.Pointer[Dataset]
}

func NewStore() *Store {
	return &Store{}
}

// Swap replaces the current snapshot and returns the previous one, if any.
func (s *Store) Swap(ds *Dataset) *Dataset {
	return s.current.Swap(ds)
}

// Current returns the loaded snapshot or nil when nothing has been uploaded.
func (s *Store) Current() *Dataset {
	return s.current.Load()
}
