// File: settei/types.go
package settei

import (
	"fmt"
	"reflect"
	"strings"
)

// Type describes the set of values a property accepts. The declared type of
// a property is checked after lookup and coercion; see Property.Resolve.
type Type interface {
	// Name returns the human-readable name used in error messages.
	Name() string
	// Check reports whether v belongs to the type.
	Check(v any) bool
}

// Predefined primitive types covering the value kinds a parsed document can
// produce. Int and Float are deliberately generous about machine widths
// since TOML, YAML, and JSON parsers disagree on concrete number types.
var (
	String Type = kindType{name: "string", kinds: []reflect.Kind{reflect.String}}
	Bool   Type = kindType{name: "bool", kinds: []reflect.Kind{reflect.Bool}}
	Int    Type = kindType{name: "int", kinds: []reflect.Kind{
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
	}}
	Float Type = kindType{name: "float", kinds: []reflect.Kind{reflect.Float32, reflect.Float64}}
	Map   Type = kindType{name: "map", kinds: []reflect.Kind{reflect.Map}}
	List  Type = kindType{name: "list", kinds: []reflect.Kind{reflect.Slice, reflect.Array}}
	Any   Type = anyType{}
)

type kindType struct {
	name  string
	kinds []reflect.Kind
}

func (t kindType) Name() string { return t.name }

func (t kindType) Check(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	for _, want := range t.kinds {
		if k == want {
			return true
		}
	}
	return false
}

type anyType struct{}

func (anyType) Name() string   { return "any" }
func (anyType) Check(any) bool { return true }

// Nil accepts only a nil value. Useful in unions for optional properties
// whose document value may be explicitly null.
var Nil Type = nilType{}

type nilType struct{}

func (nilType) Name() string     { return "nil" }
func (nilType) Check(v any) bool { return v == nil }

// EnumMember is a constructed member of an Enum. Members compare equal only
// when they belong to the same Enum and carry the same member name.
type EnumMember struct {
	enum *Enum
	name string
}

// Name returns the member name within its enum.
func (m EnumMember) Name() string { return m.name }

// Enum returns the owning enum.
func (m EnumMember) Enum() *Enum { return m.enum }

// String implements fmt.Stringer.
func (m EnumMember) String() string {
	return fmt.Sprintf("%s.%s", m.enum.name, m.name)
}

// Enum is a named closed set of string-valued members. A raw string value
// is coerced into the matching EnumMember during property resolution.
type Enum struct {
	name    string
	members []string
}

// NewEnum declares an enum type with the given member names.
func NewEnum(name string, members ...string) *Enum {
	return &Enum{name: name, members: members}
}

// Name implements Type.
func (e *Enum) Name() string { return e.name }

// Members returns the member names in declaration order.
func (e *Enum) Members() []string {
	out := make([]string, len(e.members))
	copy(out, e.members)
	return out
}

// Member constructs the enum member matching the raw value, if any.
func (e *Enum) Member(raw any) (EnumMember, bool) {
	s, ok := raw.(string)
	if !ok {
		if m, isMember := raw.(EnumMember); isMember && m.enum == e {
			return m, true
		}
		return EnumMember{}, false
	}
	for _, name := range e.members {
		if name == s {
			return EnumMember{enum: e, name: name}, true
		}
	}
	return EnumMember{}, false
}

// Check implements Type. A value belongs to the enum only if it is an
// EnumMember constructed from this exact enum.
func (e *Enum) Check(v any) bool {
	m, ok := v.(EnumMember)
	return ok && m.enum == e
}

// UnionType is a closed disjunction of candidate types. The coercion and
// typecheck steps enumerate its members; this is the one-of capability the
// resolution pipeline depends on.
type UnionType struct {
	types []Type
}

// Union declares a closed disjunction of the given types.
func Union(types ...Type) *UnionType {
	return &UnionType{types: types}
}

// Types returns the candidate types in declaration order.
func (u *UnionType) Types() []Type {
	out := make([]Type, len(u.types))
	copy(out, u.types)
	return out
}

// Name implements Type.
func (u *UnionType) Name() string {
	names := make([]string, len(u.types))
	for i, t := range u.types {
		names[i] = t.Name()
	}
	return strings.Join(names, " | ")
}

// Check implements Type; a value belongs to the union if it belongs to at
// least one candidate.
func (u *UnionType) Check(v any) bool {
	for _, t := range u.types {
		if t.Check(v) {
			return true
		}
	}
	return false
}

// unionTypes extracts the candidate types when typ is a union, analogous to
// inspecting a type hint for a disjunction. Returns nil otherwise.
func unionTypes(typ Type) []Type {
	if u, ok := typ.(*UnionType); ok {
		return u.Types()
	}
	return nil
}

// ifaceType declares an interface or concrete Go type as a property type.
type ifaceType struct {
	rt reflect.Type
}

// InterfaceOf declares the Go interface type T as a property type. Object
// properties use it to typecheck instantiated values against a capability
// rather than a primitive.
func InterfaceOf[T any]() Type {
	return ifaceType{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeOf declares the dynamic type of the given value as a property type.
func TypeOf(v any) Type {
	return ifaceType{rt: reflect.TypeOf(v)}
}

func (t ifaceType) Name() string { return t.rt.String() }

func (t ifaceType) Check(v any) bool {
	if v == nil {
		return false
	}
	vt := reflect.TypeOf(v)
	if t.rt.Kind() == reflect.Interface {
		return vt.Implements(t.rt)
	}
	return vt.AssignableTo(t.rt)
}
