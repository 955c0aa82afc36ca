// File: settei/env.go
package settei

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultDelimiter joins path segments in environment variable names.
const DefaultDelimiter = "__"

// Reserved marker segments. These names are part of the wire contract for
// environment-sourced configuration and must not change.
const (
	// ListMarker introduces a sequence level; the following segment is a
	// numeric index into the sequence (A__SETTEIENVLIST__0).
	ListMarker = "SETTEIENVLIST"
	// ArgsMarker introduces a positional-argument level; the following
	// segment is a numeric index into the tuple (A__ASTERISK__0).
	ArgsMarker = "ASTERISK"
)

// Tuple is an ordered, fixed sequence materialized from ASTERISK-marked
// environment variables. It represents positional constructor arguments and
// is kept distinct from []any so construction specs can tell the two apart.
type Tuple []any

// EnvReader materializes environment variables whose names match a dotted
// key path into a nested configuration value: mappings, index-addressed
// lists, and positional-argument tuples.
//
// The environment is consulted fresh on every lookup; a variable changed
// mid-process is observable on the next read.
type EnvReader struct {
	delimiter string
	environ   func() []string
}

// NewEnvReader returns a reader over the given environment snapshot
// function. A nil environ falls back to os.Environ; an empty delimiter
// falls back to DefaultDelimiter.
func NewEnvReader(delimiter string, environ func() []string) *EnvReader {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	if environ == nil {
		environ = os.Environ
	}
	return &EnvReader{delimiter: delimiter, environ: environ}
}

// EnvName converts a dotted key path into its canonical environment
// variable name: dots become the delimiter and the result is upper-cased,
// so "a.b" becomes "A__B".
func (r *EnvReader) EnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", r.delimiter))
}

// Lookup materializes every environment variable matching the dotted key
// path into a single value rooted at that key. The second return value
// reports whether any variable matched.
func (r *EnvReader) Lookup(key string) (any, bool) {
	return r.LookupName(r.EnvName(key))
}

// LookupName is Lookup with an explicit environment variable name instead
// of a derived one. The name is used verbatim as the match prefix.
func (r *EnvReader) LookupName(name string) (any, bool) {
	var (
		exact      string
		exactFound bool
		root       = newEnvNode()
		structural bool
	)
	nested := name + r.delimiter
	for _, pair := range r.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if k == name {
			exact = v
			exactFound = true
			continue
		}
		if rest, matched := strings.CutPrefix(k, nested); matched {
			root.insert(strings.Split(rest, r.delimiter), v)
			structural = true
		}
	}
	// A direct exact-name match shadows any deeper structure under the
	// same prefix and is returned as the raw string scalar.
	if exactFound {
		return exact, true
	}
	if !structural {
		return nil, false
	}
	return root.materialize(), true
}

// envNode is one level of the tree built from delimiter-split variable
// names. A node can accumulate a leaf value, mapping children, and indexed
// children at once while variables arrive in arbitrary order; materialize
// settles the precedence.
type envNode struct {
	leafSet bool
	leaf    string
	keys    map[string]*envNode
	list    map[int]*envNode
	tuple   map[int]*envNode
}

func newEnvNode() *envNode {
	return &envNode{
		keys:  make(map[string]*envNode),
		list:  make(map[int]*envNode),
		tuple: make(map[int]*envNode),
	}
}

// insert walks the remaining path segments, creating container levels on
// first use and merging repeat visits into the same container.
func (n *envNode) insert(segs []string, value string) {
	if len(segs) == 0 {
		// Last writer wins for the exact same leaf path; variable names
		// are unique keys so this does not happen with a real environ.
		n.leafSet = true
		n.leaf = value
		return
	}
	seg := segs[0]
	if (seg == ListMarker || seg == ArgsMarker) && len(segs) >= 2 {
		idx, err := strconv.Atoi(segs[1])
		if err != nil || idx < 0 {
			return
		}
		slots := n.list
		if seg == ArgsMarker {
			slots = n.tuple
		}
		child, ok := slots[idx]
		if !ok {
			child = newEnvNode()
			slots[idx] = child
		}
		child.insert(segs[2:], value)
		return
	}
	key := strings.ToLower(seg)
	child, ok := n.keys[key]
	if !ok {
		child = newEnvNode()
		n.keys[key] = child
	}
	child.insert(segs[1:], value)
}

// materialize converts the accumulated node into its final value. A leaf
// shadows any structure recorded beneath the same path. A marker level
// with no sibling keys drops the marker and becomes the sequence or tuple
// itself; tuple slots next to mapping keys fold under the "*" entry, which
// is how a construction spec carries CLASS and ASTERISK variables at the
// same level. Indexed containers are compacted in ascending numeric order
// with nil filling the gaps, so the result is deterministic regardless of
// environ order.
func (n *envNode) materialize() any {
	if n.leafSet {
		return n.leaf
	}
	if len(n.keys) > 0 {
		m := make(map[string]any, len(n.keys)+1)
		for k, child := range n.keys {
			m[k] = child.materialize()
		}
		if len(n.tuple) > 0 {
			m[argsField] = Tuple(materializeIndexed(n.tuple))
		}
		return m
	}
	if len(n.list) > 0 {
		return materializeIndexed(n.list)
	}
	if len(n.tuple) > 0 {
		return Tuple(materializeIndexed(n.tuple))
	}
	return map[string]any{}
}

func materializeIndexed(slots map[int]*envNode) []any {
	indices := make([]int, 0, len(slots))
	for i := range slots {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	out := make([]any, indices[len(indices)-1]+1)
	for _, i := range indices {
		out[i] = slots[i].materialize()
	}
	return out
}
