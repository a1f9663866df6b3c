// Package profile holds the current user's profile for display and notifies
// subscribers on every change.
package profile

import (
	"sync"

	"tasky/internal/service"
)

// Listener receives the profile after each change.
type Listener func(service.UserProfile)

// Store is a single observable profile cell. The zero value is ready to use.
type Store struct {
	mu        sync.RWMutex
	profile   service.UserProfile
	listeners map[int]Listener
	nextID    int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() service.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// SetProfile replaces the whole record.
func (s *Store) SetProfile(p service.UserProfile) {
	s.update(func(cur *service.UserProfile) { *cur = p })
}

// UpdateName changes only the name.
func (s *Store) UpdateName(name string) {
	s.update(func(cur *service.UserProfile) { cur.Name = name })
}

// Clear resets the profile; used on logout.
func (s *Store) Clear() {
	s.update(func(cur *service.UserProfile) { *cur = service.UserProfile{} })
}

// Subscribe registers fn and returns a function that removes it.
// Listeners run synchronously after the change, outside the lock.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) update(mutate func(*service.UserProfile)) {
	s.mu.Lock()
	mutate(&s.profile)
	snapshot := s.profile
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
