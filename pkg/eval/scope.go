package eval

import "sync"

// Scope is a mutable mapping from names to values, with an optional reference
// to an enclosing scope. Lookup walks outward until the name is found or the
// chain is exhausted.
//
// The map is guarded by a mutex so that tasks sharing the global scope cannot
// corrupt it; the ordering of competing writes to the same name from two
// tasks is still undefined.
type Scope struct {
	mu     sync.RWMutex
	values map[string]any
	parent *Scope
}

// NewScope creates an empty scope enclosed by parent. A nil parent makes a
// root scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{values: make(map[string]any), parent: parent}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Define creates or overwrites the name in this scope, never in an enclosing
// one.
func (s *Scope) Define(name string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = v
}

// Lookup resolves the name against this scope and then its enclosing scopes,
// innermost first.
func (s *Scope) Lookup(name string) (any, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		sc.mu.RLock()
		v, ok := sc.values[name]
		sc.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Set mutates the nearest scope that already defines the name. It reports
// whether such a scope was found.
func (s *Scope) Set(name string, v any) bool {
	for sc := s; sc != nil; sc = sc.parent {
		sc.mu.Lock()
		if _, ok := sc.values[name]; ok {
			sc.values[name] = v
			sc.mu.Unlock()
			return true
		}
		sc.mu.Unlock()
	}
	return false
}
