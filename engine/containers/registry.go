package containers

import "iter"

// Registry maps keys to values it does not own, e.g. names to nodes that
// live inside a scene tree. Adding an existing key replaces the old value.
type Registry[K comparable, V any] struct {
	registry map[K]V
}

func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		registry: make(map[K]V),
	}
}

func (r *Registry[K, V]) Add(k K, v V) {
	if r.registry == nil {
		r.registry = make(map[K]V)
	}
	r.registry[k] = v
}

// Get returns the value stored under k. The boolean is false when absent.
func (r *Registry[K, V]) Get(k K) (V, bool) {
	v, ok := r.registry[k]
	return v, ok
}

func (r *Registry[K, V]) Remove(k K) {
	delete(r.registry, k)
}

func (r *Registry[K, V]) Len() int {
	return len(r.registry)
}

// All yields every entry in unspecified order.
func (r *Registry[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range r.registry {
			if !yield(k, v) {
				return
			}
		}
	}
}

func (r *Registry[K, V]) Clear() {
	clear(r.registry)
}
