// Package session keeps each dashboard visitor's filter selection in memory.
package session

import (
	"sync"
	"time"

	"gotips/domain/core"
	"gotips/domain/tips"
)

type entry struct {
	selection tips.Selection
	touched   time.Time
}

// Store maps session ids to selections. Entries idle for longer than the TTL
// are dropped on the next write.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[core.SessionID]*entry
}

// NewStore creates an empty store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[core.SessionID]*entry),
	}
}

// Selection returns the stored selection, or everything for unknown and
// expired sessions.
func (s *Store) Selection(id core.SessionID) tips.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e) {
		return tips.AllSelection()
	}
	e.touched = s.now()
	return copySelection(e.selection)
}

// Save records sel as the session's current selection.
func (s *Store) Save(id core.SessionID, sel tips.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.entries[id] = &entry{selection: copySelection(sel), touched: s.now()}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

func (s *Store) expired(e *entry) bool {
	return s.now().Sub(e.touched) > s.ttl
}

func (s *Store) sweep() {
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
		}
	}
}

func copySelection(sel tips.Selection) tips.Selection {
	return tips.Selection{
		Days:  append([]tips.Day{}, sel.Days...),
		Times: append([]tips.MealTime{}, sel.Times...),
	}
}
