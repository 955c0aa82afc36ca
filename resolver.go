// File: settei/resolver.go
package settei

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotRegistered is returned by Registry when a class path has no
// registered constructor.
var ErrNotRegistered = errors.New("symbol not registered")

// Callable instantiates an object from resolved positional and keyword
// arguments. Constructors registered for object properties implement this
// signature.
type Callable func(args []any, kwargs map[string]any) (any, error)

// Resolver maps a "class" import path of the form [dotted.path:]name to a
// Callable. How paths map to runtime symbols is up to the implementation;
// Registry is the map-backed one applications and tests normally use.
type Resolver interface {
	Resolve(path string) (Callable, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(path string) (Callable, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(path string) (Callable, error) {
	return f(path)
}

// Registry is a thread-safe, map-backed Resolver. Constructors register
// under the exact class path the configuration will reference.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Callable
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Callable)}
}

// Register binds a constructor to a class path. Registering the same path
// twice is an error.
func (r *Registry) Register(path string, fn Callable) error {
	if fn == nil {
		return fmt.Errorf("constructor for %q must not be nil", path)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.constructors[path]; exists {
		return fmt.Errorf("constructor already registered for %q", path)
	}
	r.constructors[path] = fn
	return nil
}

// MustRegister is Register but panics on error, for package-level wiring.
func (r *Registry) MustRegister(path string, fn Callable) {
	if err := r.Register(path, fn); err != nil {
		panic("settei: " + err.Error())
	}
}

// Resolve implements Resolver.
func (r *Registry) Resolve(path string) (Callable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.constructors[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, path)
	}
	return fn, nil
}
