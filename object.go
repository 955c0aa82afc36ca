// File: settei/object.go
package settei

import (
	"fmt"
	"reflect"
	"regexp"
)

// Reserved construction-spec fields.
const (
	classField = "class"
	argsField  = "*"
)

// classPathRE validates [dotted.path:]identifier class references.
var classPathRE = regexp.MustCompile(`^(?:[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*:)?[A-Za-z_]\w*$`)

// ObjectProperty declares a configuration key whose value is a construction
// spec: a mapping with a "class" import path, an optional "*" list of
// positional arguments, and keyword arguments in the remaining keys. On
// read, the construction spec is evaluated into a live object through the owning
// Configuration's Resolver.
//
// With WithRecurse, nested mappings carrying a "class" field inside the
// arguments are themselves evaluated; without it they pass through as plain
// data. With WithCached, the instantiated object is memoized per
// Configuration instance, keyed by the property path.
type ObjectProperty struct {
	Property
	recurse bool
	cached  bool
}

// ObjectPropertyOption customizes an ObjectProperty at declaration time.
type ObjectPropertyOption func(*ObjectProperty)

// WithRecurse makes nested construction specs inside arguments evaluate
// recursively.
func WithRecurse() ObjectPropertyOption {
	return func(p *ObjectProperty) { p.recurse = true }
}

// WithCached memoizes the instantiated object on the owning Configuration
// instance, so repeated reads return the same object.
func WithCached() ObjectPropertyOption {
	return func(p *ObjectProperty) { p.cached = true }
}

// WithOptions applies plain property options (defaults, env name, parser)
// to an ObjectProperty declaration.
func WithOptions(opts ...PropertyOption) ObjectPropertyOption {
	return func(p *ObjectProperty) {
		for _, opt := range opts {
			opt(&p.Property)
		}
	}
}

// NewObjectProperty declares an object-valued configuration property at the
// given dotted key path. The declared type is normally an interface
// (InterfaceOf) the instantiated object must satisfy.
func NewObjectProperty(key string, typ Type, opts ...ObjectPropertyOption) *ObjectProperty {
	p := &ObjectProperty{
		Property: Property{
			key:       key,
			typ:       typ,
			lookupEnv: true,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.defaultWarning && !p.defaultSet {
		panic("settei: default warning is only available when a default is provided")
	}
	return p
}

// Resolve reads the property and evaluates the resolved construction spec
// into an object. A default value is returned unchanged, since defaults for
// object properties are already live instances rather than specs.
func (p *ObjectProperty) Resolve(c *Configuration) (any, error) {
	if p.cached {
		if v, ok := c.cachedObject(p.key); ok {
			return v, nil
		}
	}

	value, fromDefault, err := p.rawValue(c)
	if err != nil {
		return nil, err
	}
	if fromDefault {
		return value, nil
	}

	spec, ok := asMapping(value)
	if !ok {
		return nil, &TypeError{
			Key:      p.key,
			Expected: "map",
			Value:    value,
			Reason:   fmt.Sprintf("%s field must be a mapping, not %T", p.key, value),
		}
	}
	if _, hasClass := spec[classField]; !hasClass {
		return nil, &ValueError{Key: p.key, Reason: `field lacks "class" field`}
	}

	obj, err := p.evaluate(c, spec)
	if err != nil {
		return nil, err
	}
	if err := typecheck(p.key, p.typ, obj); err != nil {
		return nil, err
	}

	if p.cached {
		c.storeObject(p.key, obj)
	}
	return obj, nil
}

// MustResolve is Resolve but panics on error.
func (p *ObjectProperty) MustResolve(c *Configuration) any {
	v, err := p.Resolve(c)
	if err != nil {
		panic(fmt.Sprintf("settei: resolving %s: %v", p.key, err))
	}
	return v
}

// evaluate turns a construction spec into an object. Values that are not a
// mapping, or are a mapping without a "class" field, pass through
// unchanged; this is what lets recursive evaluation skip plain data.
func (p *ObjectProperty) evaluate(c *Configuration, value any) (any, error) {
	spec, ok := asMapping(value)
	if !ok {
		return value, nil
	}
	rawPath, hasClass := spec[classField]
	if !hasClass {
		return value, nil
	}

	fn, err := p.resolveClass(c, rawPath)
	if err != nil {
		return nil, err
	}

	args, err := p.positionalArgs(spec)
	if err != nil {
		return nil, err
	}
	kwargs := make(map[string]any, len(spec))
	for k, v := range spec {
		if k == classField || k == argsField {
			continue
		}
		kwargs[k] = v
	}

	if p.recurse {
		for i, arg := range args {
			evaluated, err := p.evaluate(c, arg)
			if err != nil {
				return nil, err
			}
			args[i] = evaluated
		}
		for k, v := range kwargs {
			evaluated, err := p.evaluate(c, v)
			if err != nil {
				return nil, err
			}
			kwargs[k] = evaluated
		}
	}

	return fn(args, kwargs)
}

// resolveClass validates the class path grammar and resolves it to a
// Callable through the Configuration's Resolver.
func (p *ObjectProperty) resolveClass(c *Configuration, rawPath any) (Callable, error) {
	classKey := p.key + "." + classField
	path, ok := rawPath.(string)
	if !ok || !classPathRE.MatchString(path) {
		return nil, &ValueError{
			Key:    classKey,
			Reason: fmt.Sprintf(`must be a valid import path (e.g. "module.path:cls_or_func"), not %#v`, rawPath),
		}
	}
	if c.resolver == nil {
		return nil, &ValueError{Key: classKey, Reason: "no symbol resolver configured"}
	}
	fn, err := c.resolver.Resolve(path)
	if err != nil {
		return nil, &ValueError{Key: classKey, Reason: "failed to resolve import path", Cause: err}
	}
	if fn == nil {
		return nil, &ValueError{
			Key:    classKey,
			Reason: fmt.Sprintf("%q must refer to a callable", path),
		}
	}
	return fn, nil
}

// positionalArgs extracts the "*" entry as the positional argument list.
// Any sequence other than a string is accepted; strings and scalars are
// rejected.
func (p *ObjectProperty) positionalArgs(spec map[string]any) ([]any, error) {
	raw, ok := spec[argsField]
	if !ok {
		return nil, nil
	}
	switch v := raw.(type) {
	case Tuple:
		return append([]any(nil), v...), nil
	case []any:
		return append([]any(nil), v...), nil
	}
	rv := reflect.ValueOf(raw)
	if raw == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, &ValueError{
			Key:    p.key,
			Reason: fmt.Sprintf(`"*" field must be a list, not %#v`, raw),
		}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
