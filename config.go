// File: settei/config.go
package settei

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Configuration wraps a nested configuration document and the collaborators
// property resolution depends on: the environment reader, the symbol
// resolver for object properties, and the default-usage warning sink.
//
// The document is read-only after construction. The only mutable state is
// the per-instance object-property cache.
type Configuration struct {
	document  map[string]any
	env       *EnvReader
	resolver  Resolver
	warn      WarningFunc
	delimiter string
	environ   func() []string

	mu    sync.Mutex
	cache map[string]any
}

// Option customizes a Configuration at construction time.
type Option func(*Configuration)

// WithEnviron replaces the environment snapshot function, normally
// os.Environ. Tests supply fixed variable sets this way.
func WithEnviron(environ func() []string) Option {
	return func(c *Configuration) { c.environ = environ }
}

// WithDelimiter replaces the segment delimiter used in environment variable
// names, normally DefaultDelimiter.
func WithDelimiter(delimiter string) Option {
	return func(c *Configuration) { c.delimiter = delimiter }
}

// WithResolver installs the symbol resolver used by object properties to
// turn "class" import paths into callables.
func WithResolver(r Resolver) Option {
	return func(c *Configuration) { c.resolver = r }
}

// WithWarning replaces the default-usage advisory sink, normally a handler
// that logs through the process-global zap logger.
func WithWarning(fn WarningFunc) Option {
	return func(c *Configuration) { c.warn = fn }
}

// WithLogger routes default-usage advisories to the given zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Configuration) {
		c.warn = func(w Warning) {
			logger.Warn("using default configuration value",
				zap.String("key", w.Key),
				zap.Any("default", w.Default),
			)
		}
	}
}

// New creates a Configuration over the given document. A nil document is
// treated as empty.
func New(document map[string]any, opts ...Option) *Configuration {
	c := &Configuration{
		document: document,
		warn:     defaultWarningFunc,
		cache:    make(map[string]any),
	}
	if c.document == nil {
		c.document = make(map[string]any)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.env = NewEnvReader(c.delimiter, c.environ)
	return c
}

// Get returns the top-level document value for key.
func (c *Configuration) Get(key string) (any, bool) {
	v, ok := c.document[key]
	return v, ok
}

// Len returns the number of top-level document keys.
func (c *Configuration) Len() int {
	return len(c.document)
}

// Keys returns the top-level document keys in sorted order.
func (c *Configuration) Keys() []string {
	keys := make([]string, 0, len(c.document))
	for k := range c.document {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves a dotted key path against the document by indexing
// successively into nested mappings. A missing key or a non-mapping value
// partway down is "not found", not an error.
func (c *Configuration) Lookup(path string) (any, bool) {
	current := any(c.document)
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMapping(current)
		if !ok {
			return nil, false
		}
		value, exists := m[segment]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}

// cachedObject returns the memoized object for a cached object property.
func (c *Configuration) cachedObject(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.cache[key]
	return v, ok
}

// storeObject memoizes an instantiated object under the property key.
// Duplicate construction under concurrent first access is tolerated; the
// last write wins.
func (c *Configuration) storeObject(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = v
}
