package design

import (
	"sync"

	"github.com/google/uuid"

	"github.com/junaidrashid-git/charm-studio-api/models"
)

// Listener is called with the new state after every dispatch.
type Listener func(State)

// Store owns one session's State. Actions are applied one at a time.
type Store struct {
	mu        sync.Mutex
	state     State
	newID     func() string
	listeners map[int]Listener
	nextSub   int
}

type Option func(*Store)

// WithIDGenerator replaces uuid-based instance and line ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func NewStore(initial State, opts ...Option) *Store {
	s := &Store{
		state:     initial,
		newID:     uuid.NewString,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state. Changing it does not affect
// the store.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch assigns fresh ids where the action needs one, reduces, and
// notifies listeners. It returns the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	switch act := a.(type) {
	case AddCharm:
		if act.InstanceID == "" {
			act.InstanceID = s.newID()
		}
		a = act
	case AddToCart:
		if act.LineID == "" {
			act.LineID = s.newID()
		}
		a = act
	}
	s.state = Reduce(s.state, a)
	next := s.state.clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

func (s *Store) SetBracelet(b *models.Bracelet) State { return s.Dispatch(SetBracelet{Bracelet: b}) }
func (s *Store) AddCharm(c models.Charm) State      { return s.Dispatch(AddCharm{Charm: c}) }
func (s *Store) RemoveCharm(instanceID string) State {
	return s.Dispatch(RemoveCharm{InstanceID: instanceID})
}
func (s *Store) ReorderCharms(charms []CharmInstance) State {
	return s.Dispatch(ReorderCharms{Charms: charms})
}
func (s *Store) AddToCart(previewImage string) State {
	return s.Dispatch(AddToCart{PreviewImage: previewImage})
}
func (s *Store) RemoveFromCart(lineID string) State {
	return s.Dispatch(RemoveFromCart{LineID: lineID})
}
func (s *Store) EditCartItem(lineID string) State { return s.Dispatch(EditCartItem{LineID: lineID}) }

func (s *Store) TotalPrice() float64 { return TotalPrice(s.State()) }
func (s *Store) CartTotal() float64  { return CartTotal(s.State()) }
