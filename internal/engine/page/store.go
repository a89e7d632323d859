package page

import (
	"fmt"
	"slices"
)

// Store is an append-only registry of pages keyed by ID.
type Store struct {
	pages map[ID]Page
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		pages: make(map[ID]Page),
	}
}

// Contains returns true if a page with the given ID is stored.
func (s *Store) Contains(id ID) bool {
	_, ok := s.pages[id]
	return ok
}

// Add stores a page under its ID.
// The store is left unchanged if the ID is already taken.
func (s *Store) Add(p Page) error {
	if s.Contains(p.ID) {
		return fmt.Errorf("add page %q: %w", p.ID, ErrDuplicateIdentifier)
	}
	s.pages[p.ID] = p
	return nil
}

// Get returns the page stored under id.
func (s *Store) Get(id ID) (Page, error) {
	p, ok := s.pages[id]
	if !ok {
		return Page{}, fmt.Errorf("get page %q: %w", id, ErrUnknownIdentifier)
	}
	return p, nil
}

// Count returns the number of distinct pages held.
func (s *Store) Count() int {
	return len(s.pages)
}

// IDs returns all stored IDs in sorted order.
func (s *Store) IDs() []ID {
	ids := make([]ID, 0, len(s.pages))
	for id := range s.pages {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
