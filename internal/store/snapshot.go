package store

import (
	"sync"
	"time"
)

type Kind string

const (
	KindDeployment Kind = "deployment"
	KindBalances   Kind = "balances"
	KindStaking    Kind = "staking"
)

var Kinds = []Kind{KindDeployment, KindBalances, KindStaking}

func ParseKind(raw string) (Kind, bool) {
	kind := Kind(raw)
	switch kind {
	case KindDeployment, KindBalances, KindStaking:
		return kind, true
	default:
		return "", false
	}
}

type Listener func(Kind)

// Snapshot holds the latest successfully fetched value of one data source.
// Values are replaced wholesale and listeners run outside the lock.
type Snapshot[T any] struct {
	kind  Kind
	clone func(T) T

	mu         sync.RWMutex
	value      T
	loaded     bool
	observedAt time.Time
	err        error
	listeners  map[uint64]Listener
	nextID     uint64
}

func NewSnapshot[T any](kind Kind, clone func(T) T) *Snapshot[T] {
	return &Snapshot[T]{
		kind:      kind,
		clone:     clone,
		listeners: make(map[uint64]Listener),
	}
}

func (s *Snapshot[T]) Kind() Kind {
	return s.kind
}

func (s *Snapshot[T]) Replace(value T, observedAt time.Time) {
	if s.clone != nil {
		value = s.clone(value)
	}

	s.mu.Lock()
	s.value = value
	s.loaded = true
	s.observedAt = observedAt
	s.err = nil
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, s.kind)
}

// Get returns the current value. ok is false until the first successful
// replace and again after Clear.
func (s *Snapshot[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value := s.value
	if s.loaded && s.clone != nil {
		value = s.clone(value)
	}
	return value, s.loaded
}

func (s *Snapshot[T]) ObservedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.observedAt
}

// SetErr flags the last fetch as failed without touching the held value.
func (s *Snapshot[T]) SetErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *Snapshot[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Clear resets the snapshot to unknown.
func (s *Snapshot[T]) Clear() {
	var zero T

	s.mu.Lock()
	s.value = zero
	s.loaded = false
	s.observedAt = time.Time{}
	s.err = nil
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, s.kind)
}

// Subscribe registers fn for every replace or clear. The returned func
// removes it.
func (s *Snapshot[T]) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Snapshot[T]) listenersLocked() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := uint64(0); id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []Listener, kind Kind) {
	for _, fn := range listeners {
		fn(kind)
	}
}
