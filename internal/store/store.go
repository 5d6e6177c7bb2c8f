package store

import (
	"adventcal/internal/metrics"
	"sync"
)

// Store serializes event application and publishes snapshots
type Store struct {
	mu     sync.Mutex
	state  AppState
	subs   map[int]chan AppState
	nextID int
}

// New creates a store holding initial
func New(initial AppState) *Store {
	return &Store{
		state: initial,
		subs:  make(map[int]chan AppState),
	}
}

// Snapshot returns the current state
func (s *Store) Snapshot() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies events in order and returns the resulting state
func (s *Store) Dispatch(events ...Event) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(events)
}

// DispatchFunc computes events from the current state and applies them
// without letting another dispatch in between. fn must not call the store.
func (s *Store) DispatchFunc(fn func(AppState) []Event) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(fn(s.state))
}

func (s *Store) applyLocked(events []Event) AppState {
	if len(events) == 0 {
		return s.state
	}
	for _, ev := range events {
		s.state = Reduce(s.state, ev)
		metrics.StateEvents.WithLabelValues(ev.Name()).Inc()
	}
	for _, ch := range s.subs {
		publish(ch, s.state)
	}
	return s.state
}

// publish never blocks. A lagging subscriber loses its oldest snapshot.
func publish(ch chan AppState, st AppState) {
	for {
		select {
		case ch <- st:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe returns a channel that receives every new snapshot.
// Call cancel to stop receiving; the channel is closed afterwards.
func (s *Store) Subscribe(buffer int) (<-chan AppState, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan AppState, buffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
