package board

import "sync"

// Store is the single owned source of truth the renderers read from.
// Reads return deep copies, so a renderer never observes a half-applied mutation.
type Store struct {
	mu      sync.RWMutex
	board   *Board
	loaded  bool
	version uint64
	updates chan struct{}
}

// NewStore creates an empty, not yet loaded store
func NewStore() *Store {
	return &Store{
		board:   New(),
		updates: make(chan struct{}, 1),
	}
}

// Snapshot returns a copy of the current board and whether any state has
// been published yet
func (s *Store) Snapshot() (*Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Clone(), s.loaded
}

// Version increases by one on every publish
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Publish replaces the current state with a copy of b
func (s *Store) Publish(b *Board) {
	s.mu.Lock()
	s.board = b.Clone()
	s.loaded = true
	s.version++
	s.mu.Unlock()

	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// Updates signals after publishes. Signals coalesce: a reader that falls
// behind sees one pending signal, not one per publish.
func (s *Store) Updates() <-chan struct{} {
	return s.updates
}
