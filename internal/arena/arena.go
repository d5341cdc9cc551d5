// Package arena tracks memory handed across the plugin boundary.
//
// Every entry list returned to the host is one generation of allocations.
// With retain == 0 generations are never freed and are not even tracked:
// a returned list stays valid for the life of the process. With retain > 0
// only the newest retain generations are kept and older ones are freed as
// new ones are committed, which bounds memory for hosts that list often.
package arena

import "sync"

// Arena owns generations of allocations of pointer type P.
type Arena[P any] struct {
	mu     sync.Mutex
	retain int
	free   func(P)
	gens   [][]P
}

// New returns an Arena that keeps retain generations and releases pointers
// with free. retain <= 0 keeps every generation forever.
func New[P any](retain int, free func(P)) *Arena[P] {
	if retain < 0 {
		retain = 0
	}
	return &Arena[P]{retain: retain, free: free}
}

// Bounded reports whether old generations are ever freed.
func (a *Arena[P]) Bounded() bool { return a.retain > 0 }

// Commit records one generation and frees any generations that fall out of
// the retention window, oldest first.
func (a *Arena[P]) Commit(gen []P) {
	if !a.Bounded() {
		return
	}
	a.mu.Lock()
	a.gens = append(a.gens, gen)
	var expired [][]P
	if n := len(a.gens) - a.retain; n > 0 {
		expired = append(expired, a.gens[:n]...)
		a.gens = append([][]P(nil), a.gens[n:]...)
	}
	a.mu.Unlock()

	for _, g := range expired {
		a.freeAll(g)
	}
}

// Generations returns the number of generations currently tracked.
func (a *Arena[P]) Generations() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.gens)
}

// Release frees every tracked generation. Lists handed out earlier are
// invalid afterwards. The shared library exports no teardown call and never
// calls Release; it is for programs that embed this package directly.
func (a *Arena[P]) Release() {
	a.mu.Lock()
	gens := a.gens
	a.gens = nil
	a.mu.Unlock()

	for _, g := range gens {
		a.freeAll(g)
	}
}

func (a *Arena[P]) freeAll(gen []P) {
	for _, p := range gen {
		a.free(p)
	}
}
