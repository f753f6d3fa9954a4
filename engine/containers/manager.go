package containers

import "iter"

// Manageable is anything that can report a stable key identifying it.
type Manageable[K comparable] interface {
	ID() K
}

// Manager owns a list of instances and looks them up by key.
// Adding never deduplicates: when two instances share a key, Get returns
// the one added first.
type Manager[K comparable, T Manageable[K]] struct {
	storage []T
}

func NewManager[K comparable, T Manageable[K]]() *Manager[K, T] {
	return &Manager[K, T]{}
}

// Add appends the instance, transferring ownership to the manager.
func (m *Manager[K, T]) Add(instance T) {
	m.storage = append(m.storage, instance)
}

// Get returns the first instance whose key equals id.
// The boolean is false when nothing matches.
func (m *Manager[K, T]) Get(id K) (T, bool) {
	for _, instance := range m.storage {
		if instance.ID() == id {
			return instance, true
		}
	}
	var zero T
	return zero, false
}

// All yields the instances in insertion order.
func (m *Manager[K, T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, instance := range m.storage {
			if !yield(instance) {
				return
			}
		}
	}
}

func (m *Manager[K, T]) Len() int {
	return len(m.storage)
}

// Clear drops every instance.
func (m *Manager[K, T]) Clear() {
	clear(m.storage)
	m.storage = m.storage[:0]
}
