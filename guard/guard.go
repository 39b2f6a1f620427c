// Package guard shares a lazymut.LazyMut between goroutines by holding a
// mutex across every access.
package guard

import (
	"sync"

	"github.com/coder/lazymut"
)

// Locked is a lazily initialized value protected by a mutex.
//
// Example:
//
//	conns := guard.New(func() map[string]int { return map[string]int{} })
//	conns.Do(func(m *map[string]int) {
//		(*m)["a"]++
//	})
type Locked[T any] struct {
	mu   sync.Mutex
	cell *lazymut.LazyMut[T]
}

func New[T any](init func() T) *Locked[T] {
	return &Locked[T]{cell: lazymut.New(init)}
}

// Do calls fn with the value, initializing it first if needed. The lock is
// held until fn returns, so v must not be retained after that.
func (l *Locked[T]) Do(fn func(v *T)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.cell.Get())
}

// Modify is Do with a return value.
func Modify[T, R any](l *Locked[T], fn func(v *T) R) R {
	var r R
	l.Do(func(v *T) {
		r = fn(v)
	})
	return r
}

// Initialized reports whether the value has been computed.
func (l *Locked[T]) Initialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cell.Initialized()
}
