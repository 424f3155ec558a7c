package application

import (
	"sync"

	"github.com/bnema/vton-cli/internal/domain"
)

// Store holds the workflow state. Each Dispatch is one atomic transition;
// readers always get a copy.
type Store struct {
	mu        sync.RWMutex
	state     domain.State
	listeners []func(domain.Event, domain.State)
}

func NewStore(initial domain.State) *Store {
	return &Store{state: initial.Clone()}
}

func (s *Store) Dispatch(event domain.Event) domain.State {
	s.mu.Lock()
	s.state = domain.Reduce(s.state, event)
	next := s.state.Clone()
	listeners := s.listeners
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(event, next.Clone())
	}

	return next
}

func (s *Store) State() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Subscribe registers fn to run after every dispatch, outside the store lock.
func (s *Store) Subscribe(fn func(domain.Event, domain.State)) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(append([]func(domain.Event, domain.State){}, s.listeners...), fn)
}
