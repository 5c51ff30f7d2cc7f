// Package poison provides a small value-guarding mutex with lock
// poisoning: a holder that panics while the lock is held marks it
// poisoned, and later acquirers see the poisoning as an error wrapping
// a still-usable guard. Recover unwraps that error, which is how
// generated lock acquisitions consume it.
package poison

import (
	"errors"
	"sync"
)

// A Mutex guards a single value of type T. The zero Mutex guards the
// zero value of T. A Mutex must not be copied after first use.
type Mutex[T any] struct {
	mu       sync.Mutex
	poisoned bool
	val      T
}

// New returns a Mutex guarding v.
func New[T any](v T) *Mutex[T] {
	return &Mutex[T]{val: v}
}

// Lock blocks until the mutex is held and returns the guard. There is
// no timeout and no cancellation. If a previous holder panicked while
// holding the mutex, Lock instead returns a *PoisonError carrying the
// guard; the mutex is held either way.
func (m *Mutex[T]) Lock() (*Guard[T], error) {
	m.mu.Lock()
	g := &Guard[T]{m: m}
	if m.poisoned {
		return nil, &PoisonError[T]{g: g}
	}
	return g, nil
}

// A Guard is exclusive ownership of a locked Mutex. Release it with
// Unlock, usually deferred.
type Guard[T any] struct {
	m *Mutex[T]
}

// Get returns the guarded value.
func (g *Guard[T]) Get() T { return g.m.val }

// Set replaces the guarded value.
func (g *Guard[T]) Set(v T) { g.m.val = v }

// ReadOnly returns a read-only view of the guard. The view shares the
// guard's ownership; releasing the guard ends the view's validity.
func (g *Guard[T]) ReadOnly() *ReadGuard[T] { return &ReadGuard[T]{m: g.m} }

// Unlock releases the mutex. When deferred directly and unwinding a
// panic, Unlock marks the mutex poisoned before releasing it, then
// continues the panic.
func (g *Guard[T]) Unlock() {
	if r := recover(); r != nil {
		g.m.poisoned = true
		g.m.mu.Unlock()
		panic(r)
	}
	g.m.mu.Unlock()
}

// A ReadGuard is a read-only view of a held Guard.
type ReadGuard[T any] struct {
	m *Mutex[T]
}

// Get returns the guarded value.
func (g *ReadGuard[T]) Get() T { return g.m.val }

// A PoisonError reports that a previous holder of a Mutex panicked
// while holding it. The caller holds the mutex all the same; Guard
// recovers the guard.
type PoisonError[T any] struct {
	g *Guard[T]
}

func (e *PoisonError[T]) Error() string {
	return "poisoned lock: a previous holder panicked"
}

// Guard returns the held guard, discarding the poisoning.
func (e *PoisonError[T]) Guard() *Guard[T] { return e.g }

// Recover converts the result of Lock into a plain guard: a nil error
// passes the guard through and a poisoning error yields its recovered
// guard. Any other error panics. A goroutine that panicked while
// holding a lock has already taken the program down its failure path;
// the acquisition site proceeds with the recovered guard instead of
// reporting a second error.
func Recover[T any](g *Guard[T], err error) *Guard[T] {
	if err == nil {
		return g
	}
	var pe *PoisonError[T]
	if errors.As(err, &pe) {
		return pe.Guard()
	}
	panic(err)
}
