package filtersync

import (
	"fmt"
	"net/url"
	"sync"
)

// Navigator is the page's address bar.
type Navigator interface {
	// Location returns a copy of the current URL.
	Location() *url.URL
	// Replace swaps the current history entry for u without pushing a new one.
	Replace(u *url.URL) error
}

// MemoryNavigator is an in-process Navigator with a history stack.
type MemoryNavigator struct {
	mu       sync.Mutex
	history  []*url.URL
	replaced int
}

// NewMemoryNavigator starts a history at rawURL.
func NewMemoryNavigator(rawURL string) (*MemoryNavigator, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse start url: %w", err)
	}
	return &MemoryNavigator{history: []*url.URL{u}}, nil
}

// Location returns a copy of the current entry.
func (n *MemoryNavigator) Location() *url.URL {
	n.mu.Lock()
	defer n.mu.Unlock()

	u := *n.history[len(n.history)-1]
	return &u
}

// Push adds a history entry, as a link click would.
func (n *MemoryNavigator) Push(u *url.URL) {
	n.mu.Lock()
	defer n.mu.Unlock()

	cp := *u
	n.history = append(n.history, &cp)
}

// Replace overwrites the current entry.
func (n *MemoryNavigator) Replace(u *url.URL) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	cp := *u
	n.history[len(n.history)-1] = &cp
	n.replaced++
	return nil
}

// Len is the number of history entries.
func (n *MemoryNavigator) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.history)
}

// Replaced counts Replace calls.
func (n *MemoryNavigator) Replaced() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.replaced
}
