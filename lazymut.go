// Package lazymut implements a lazily initialized value that is computed on
// first mutable access.
package lazymut

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrPoisoned is the panic value raised when a cell whose initializer never
// returned is accessed again.
var ErrPoisoned = xerrors.New("lazymut: instance has previously been poisoned")

// LazyMut holds either an initializer or the value it produced. The value is
// computed on the first call to Get.
//
// LazyMut is not safe for concurrent use. Callers sharing a cell between
// goroutines must hold their own lock across Get and every use of the
// returned pointer (see the guard package).
//
// The zero value is initialized with the zero value of T.
type LazyMut[T any] struct {
	state state[T]
}

type state[T any] interface {
	isState()
}

type pending[T any] struct {
	init func() T
}

type ready[T any] struct {
	value T
}

// poisoned is entered while the initializer runs and is left in place if it
// panics.
type poisoned struct{}

func (pending[T]) isState() {}
func (*ready[T]) isState() {}
func (poisoned) isState() {}

// New returns a cell that calls init on the first Get.
func New[T any](init func() T) *LazyMut[T] {
	if init == nil {
		panic("lazymut: nil initializer")
	}
	return &LazyMut[T]{state: pending[T]{init: init}}
}

// Get returns a pointer to the value, calling the initializer first if it has
// not run yet. The initializer is called at most once. The pointer is only
// valid while the caller retains exclusive access to l.
//
// Get panics with ErrPoisoned if a previous initializer call did not return,
// including when the initializer calls Get on its own cell.
func (l *LazyMut[T]) Get() *T {
	switch s := l.state.(type) {
	case *ready[T]:
		return &s.value
	case pending[T]:
		l.state = poisoned{}
		r := &ready[T]{value: s.init()}
		l.state = r
		return &r.value
	case nil:
		r := &ready[T]{}
		l.state = r
		return &r.value
	default:
		panic(ErrPoisoned)
	}
}

// TryGet returns a pointer to the value if it has been computed. It never
// calls the initializer.
func (l *LazyMut[T]) TryGet() (*T, bool) {
	switch s := l.state.(type) {
	case *ready[T]:
		return &s.value, true
	case nil:
		return l.Get(), true
	default:
		return nil, false
	}
}

// Inner returns a copy of the value if it has been computed, and the zero
// value and false otherwise. It panics with ErrPoisoned on a poisoned cell.
func (l *LazyMut[T]) Inner() (T, bool) {
	if _, ok := l.state.(poisoned); ok {
		panic(ErrPoisoned)
	}
	v, ok := l.TryGet()
	if !ok {
		var zero T
		return zero, false
	}
	return *v, true
}

// Initialized reports whether the value has been computed.
func (l *LazyMut[T]) Initialized() bool {
	switch l.state.(type) {
	case *ready[T], nil:
		return true
	default:
		return false
	}
}

// Poisoned reports whether an initializer call failed to return.
func (l *LazyMut[T]) Poisoned() bool {
	_, ok := l.state.(poisoned)
	return ok
}

func (l *LazyMut[T]) String() string {
	switch s := l.state.(type) {
	case *ready[T]:
		return fmt.Sprintf("LazyMut(%v)", s.value)
	case nil:
		var zero T
		return fmt.Sprintf("LazyMut(%v)", zero)
	case poisoned:
		return "LazyMut(<poisoned>)"
	default:
		return "LazyMut(<uninit>)"
	}
}
