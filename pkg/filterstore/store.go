// Package filterstore holds the active memo filter collection for a page
// session and notifies subscribers after every mutation.
package filterstore

import (
	"errors"
	"slices"
	"sync"

	"github.com/kittclouds/memofilter/pkg/filter"
)

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("filter store closed")

// Listener receives a private snapshot of the collection after a mutation.
type Listener func(filters []filter.Filter)

type subscription struct {
	id int
	fn Listener
}

// Store is the reactive filter collection.
// Thread-safe for concurrent WASM callbacks; listeners run outside the lock
// so they may mutate the store again. Notifications are delivered one at a
// time in commit order, so the last snapshot a listener sees is the current
// collection.
type Store struct {
	mu         sync.RWMutex
	filters    []filter.Filter
	subs       []subscription
	nextID     int
	closed     bool
	pending    [][]filter.Filter // committed snapshots not yet delivered
	delivering bool
}

// New creates a store seeded with initial filters.
func New(initial ...filter.Filter) *Store {
	return &Store{
		filters: slices.Clone(initial),
	}
}

// Filters returns a copy of the current collection.
func (s *Store) Filters() []filter.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]filter.Filter, len(s.filters))
	copy(out, s.filters)
	return out
}

// Len returns the number of filters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.filters)
}

// AddFilter appends f. Duplicates are kept.
func (s *Store) AddFilter(f filter.Filter) error {
	return s.Update(func(cur []filter.Filter) []filter.Filter {
		return append(cur, f)
	})
}

// RemoveFilter drops every filter matching pred and returns how many went.
// Subscribers are notified once, even when nothing matched.
func (s *Store) RemoveFilter(pred func(filter.Filter) bool) (int, error) {
	removed := 0
	err := s.Update(func(cur []filter.Filter) []filter.Filter {
		kept := cur[:0]
		for _, f := range cur {
			if pred(f) {
				removed++
				continue
			}
			kept = append(kept, f)
		}
		return kept
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// SetFilters replaces the whole collection.
func (s *Store) SetFilters(fs []filter.Filter) error {
	return s.Update(func([]filter.Filter) []filter.Filter {
		return slices.Clone(fs)
	})
}

// Clear empties the collection.
func (s *Store) Clear() error {
	return s.Update(func([]filter.Filter) []filter.Filter {
		return nil
	})
}

// Update applies fn to a private copy of the collection and stores the
// result, notifying subscribers once. Use it to group several edits.
//
// If a notification is already being delivered (a listener mutating the
// store, or another goroutine), the new snapshot is queued behind it and
// delivered by that caller, and Update returns without waiting.
func (s *Store) Update(fn func([]filter.Filter) []filter.Filter) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	next := fn(slices.Clone(s.filters))
	s.filters = slices.Clip(next)
	s.pending = append(s.pending, slices.Clone(s.filters))
	if s.delivering {
		s.mu.Unlock()
		return nil
	}
	s.delivering = true
	s.mu.Unlock()

	s.drain()
	return nil
}

// drain delivers queued snapshots in commit order until none are left.
func (s *Store) drain() {
	finished := false
	defer func() {
		if !finished {
			// A listener panicked; the next Update starts delivering again.
			s.mu.Lock()
			s.delivering = false
			s.mu.Unlock()
		}
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.pending = nil
			s.delivering = false
			s.mu.Unlock()
			finished = true
			return
		}
		snapshot := s.pending[0]
		s.pending = s.pending[1:]
		subs := slices.Clone(s.subs)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.fn(slices.Clone(snapshot))
		}
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	if !s.closed {
		s.subs = append(s.subs, subscription{id: id, fn: l})
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
				return sub.id == id
			})
		})
	}
}

// Close ends the store's lifecycle and drops all subscribers.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.subs = nil
	s.pending = nil
	return nil
}
