// File: settei/property.go
package settei

import (
	"fmt"
	"reflect"
	"strings"
)

// ParseFunc transforms the raw environment-derived value of a property
// before merging and type checking. It receives the whole resolved subtree
// for the key path, not individual leaves.
type ParseFunc func(v any) (any, error)

// DefaultFunc computes a property default from the owning Configuration.
type DefaultFunc func(c *Configuration) any

// Property declares a configuration key with a dotted key path, an expected
// type, and resolution options. A Property is stateless and shared across
// every Configuration it is resolved against; per-instance state lives on
// the Configuration.
type Property struct {
	key            string
	typ            Type
	defaultSet     bool
	defaultFn      DefaultFunc
	defaultWarning bool
	lookupEnv      bool
	envName        string
	parse          ParseFunc
}

// PropertyOption customizes a Property at declaration time.
type PropertyOption func(*Property)

// WithDefault declares a literal default returned when the key is missing
// from both the document and the environment. Defaults bypass coercion and
// type checking entirely.
func WithDefault(v any) PropertyOption {
	return func(p *Property) {
		if p.defaultSet {
			panic("settei: default and default func are mutually exclusive")
		}
		p.defaultSet = true
		p.defaultFn = func(*Configuration) any { return v }
	}
}

// WithDefaultFunc declares a computed default. The function receives the
// owning Configuration, so a default can derive from other properties.
func WithDefaultFunc(fn DefaultFunc) PropertyOption {
	return func(p *Property) {
		if p.defaultSet {
			panic("settei: default and default func are mutually exclusive")
		}
		p.defaultSet = true
		p.defaultFn = fn
	}
}

// WithDefaultWarning makes the property emit an advisory through the
// Configuration's WarningFunc whenever the default is used. Only valid
// together with WithDefault or WithDefaultFunc.
func WithDefaultWarning() PropertyOption {
	return func(p *Property) { p.defaultWarning = true }
}

// WithoutEnv disables environment lookup for the property; only the
// document and the default are consulted.
func WithoutEnv() PropertyOption {
	return func(p *Property) { p.lookupEnv = false }
}

// WithEnvName overrides the derived environment variable name. The name is
// used verbatim instead of upper-casing the key path.
func WithEnvName(name string) PropertyOption {
	return func(p *Property) { p.envName = name }
}

// WithParser installs a parser applied to the environment-derived value
// before merging. A parser failure surfaces as a ValueError.
func WithParser(fn ParseFunc) PropertyOption {
	return func(p *Property) { p.parse = fn }
}

// NewProperty declares a typed configuration property at the given dotted
// key path. Environment lookup is enabled unless WithoutEnv is given.
// Invalid option combinations panic, since declarations are wired at
// program start.
func NewProperty(key string, typ Type, opts ...PropertyOption) *Property {
	p := &Property{
		key:       key,
		typ:       typ,
		lookupEnv: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.defaultWarning && !p.defaultSet {
		panic("settei: default warning is only available when a default is provided")
	}
	return p
}

// Key returns the dotted key path.
func (p *Property) Key() string { return p.key }

// Type returns the declared type.
func (p *Property) Type() Type { return p.typ }

// Resolve reads the property from the given Configuration: document first,
// then environment overlay (merged per the precedence rules), then the
// declared default. Found values run through enum coercion and the
// typecheck; defaults are returned as-is.
func (p *Property) Resolve(c *Configuration) (any, error) {
	value, fromDefault, err := p.rawValue(c)
	if err != nil {
		return nil, err
	}
	if fromDefault {
		return value, nil
	}
	value, err = coerce(p.key, p.typ, value)
	if err != nil {
		return nil, err
	}
	if err := typecheck(p.key, p.typ, value); err != nil {
		return nil, err
	}
	return value, nil
}

// MustResolve is Resolve but panics on error.
func (p *Property) MustResolve(c *Configuration) any {
	v, err := p.Resolve(c)
	if err != nil {
		panic(fmt.Sprintf("settei: resolving %s: %v", p.key, err))
	}
	return v
}

// rawValue performs the lookup and default stages shared by plain and
// object properties. The second return value reports whether the value came
// from the declared default.
func (p *Property) rawValue(c *Configuration) (any, bool, error) {
	docVal, docFound := c.Lookup(p.key)
	if docFound {
		if _, isMap := asMapping(docVal); !isMap {
			// Scalar document values win outright; the environment is not
			// consulted for overlay.
			return docVal, false, nil
		}
	}

	var (
		envVal   any
		envFound bool
	)
	if p.lookupEnv {
		if p.envName != "" {
			envVal, envFound = c.env.LookupName(p.envName)
		} else {
			envVal, envFound = c.env.Lookup(p.key)
		}
		if envFound && p.parse != nil {
			parsed, err := p.parse(envVal)
			if err != nil {
				return nil, false, &ValueError{
					Key:    p.key,
					Reason: "failed to parse environment value",
					Cause:  err,
				}
			}
			envVal = parsed
		}
	}

	if v, ok := mergeLookup(docVal, docFound, envVal, envFound); ok {
		return v, false, nil
	}
	if p.defaultSet {
		def := p.defaultFn(c)
		if p.defaultWarning {
			c.warn(Warning{Key: p.key, Default: def})
		}
		return def, true, nil
	}
	return nil, false, &KeyError{Key: p.key}
}

// Get resolves p against c and asserts the result to T.
func Get[T any](c *Configuration, p *Property) (T, error) {
	var zero T
	v, err := p.Resolve(c)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		// %T on the zero value names interface types "<nil>"; go through
		// reflect for the declared type instead.
		expected := reflect.TypeOf((*T)(nil)).Elem().String()
		return zero, &TypeError{Key: p.key, Expected: expected, Value: v}
	}
	return t, nil
}

// coerce runs the enum construction step: a declared enum type (or a union
// containing enum types) turns a raw value into an EnumMember. Values for
// non-enum types pass through unchanged.
func coerce(key string, typ Type, value any) (any, error) {
	if e, ok := typ.(*Enum); ok {
		m, ok := e.Member(value)
		if !ok {
			return nil, &TypeError{
				Key:      key,
				Expected: e.Name(),
				Value:    value,
				Reason: fmt.Sprintf("invalid value %v in %s; candidates are: %s",
					value, e.Name(), strings.Join(e.Members(), ", ")),
			}
		}
		return m, nil
	}

	members := unionTypes(typ)
	if members == nil {
		return value, nil
	}
	var (
		enums      []*Enum
		hasNonEnum bool
	)
	for _, t := range members {
		if e, ok := t.(*Enum); ok {
			enums = append(enums, e)
		} else {
			hasNonEnum = true
		}
	}
	if len(enums) == 0 {
		return value, nil
	}

	var candidates []EnumMember
	for _, e := range enums {
		if m, ok := e.Member(value); ok {
			candidates = append(candidates, m)
		}
	}
	switch {
	case len(candidates) == 1:
		return candidates[0], nil
	case len(candidates) > 1:
		names := make([]string, len(candidates))
		for i, m := range candidates {
			names[i] = m.String()
		}
		return nil, &TypeError{
			Key:      key,
			Expected: typ.Name(),
			Value:    value,
			Reason: fmt.Sprintf("ambiguous enum type for value %v: %s",
				value, strings.Join(names, ", ")),
		}
	case hasNonEnum:
		return value, nil
	default:
		names := make([]string, len(enums))
		for i, e := range enums {
			names[i] = e.Name()
		}
		return nil, &TypeError{
			Key:      key,
			Expected: typ.Name(),
			Value:    value,
			Reason: fmt.Sprintf("no matching value %v for types: %s",
				value, strings.Join(names, ", ")),
		}
	}
}

// typecheck verifies the coerced value belongs to the declared type or to
// at least one member of a declared union.
func typecheck(key string, typ Type, value any) error {
	if typ.Check(value) {
		return nil
	}
	return &TypeError{Key: key, Expected: typ.Name(), Value: value}
}
