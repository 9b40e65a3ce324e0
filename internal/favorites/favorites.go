// Package favorites implements the client-side favorite state for a
// logged-in user: an in-memory membership set that updates
// optimistically and rolls back when the server rejects the change.
// The UI therefore never diverges from server state for longer than
// one in-flight request.
package favorites

import (
	"context"
	"sync"
)

// API is the server surface the set reconciles against.
type API interface {
	ListFavorites(ctx context.Context) ([]uint64, error)
	AddFavorite(ctx context.Context, trailID uint64) error
	RemoveFavorite(ctx context.Context, trailID uint64) error
}

// Set holds the favorited trail IDs for the current user. Safe for
// concurrent use.
type Set struct {
	api API

	mu  sync.Mutex
	ids map[uint64]struct{}
}

// NewSet returns an empty set backed by the given API.
func NewSet(api API) *Set {
	return &Set{api: api, ids: make(map[uint64]struct{})}
}

// Load replaces local state with the server's favorite list. Called
// once after authentication.
func (s *Set) Load(ctx context.Context) error {
	ids, err := s.api.ListFavorites(ctx)
	if err != nil {
		return err
	}
	next := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	s.mu.Lock()
	s.ids = next
	s.mu.Unlock()
	return nil
}

// IsFavorite reports membership in O(1).
func (s *Set) IsFavorite(trailID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[trailID]
	return ok
}

// Len returns the number of favorited trails.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Clear empties local state, e.g. on logout.
func (s *Set) Clear() {
	s.mu.Lock()
	s.ids = make(map[uint64]struct{})
	s.mu.Unlock()
}

// Add favorites a trail optimistically: local state changes first, and
// if the server call fails the change is reverted and the error
// returned to the caller.
func (s *Set) Add(ctx context.Context, trailID uint64) error {
	s.mu.Lock()
	s.ids[trailID] = struct{}{}
	s.mu.Unlock()

	if err := s.api.AddFavorite(ctx, trailID); err != nil {
		s.mu.Lock()
		delete(s.ids, trailID)
		s.mu.Unlock()
		return err
	}
	return nil
}

// Remove unfavorites a trail optimistically, restoring membership on
// failure.
func (s *Set) Remove(ctx context.Context, trailID uint64) error {
	s.mu.Lock()
	delete(s.ids, trailID)
	s.mu.Unlock()

	if err := s.api.RemoveFavorite(ctx, trailID); err != nil {
		s.mu.Lock()
		s.ids[trailID] = struct{}{}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Toggle adds or removes based on membership at call time.
func (s *Set) Toggle(ctx context.Context, trailID uint64) error {
	if s.IsFavorite(trailID) {
		return s.Remove(ctx, trailID)
	}
	return s.Add(ctx, trailID)
}
