// File: settei/merge.go
package settei

// deepMerge combines a document value with an environment-derived value.
// Where both sides are mappings the merge recurses key by key, with the
// environment side taking precedence on overlapping keys and the document
// supplying any keys the environment tree lacks. Any non-mapping conflict
// resolves to the environment side.
func deepMerge(doc, env any) any {
	dm, dok := asMapping(doc)
	em, eok := asMapping(env)
	if !dok || !eok {
		return env
	}
	out := make(map[string]any, len(dm)+len(em))
	for k, v := range dm {
		out[k] = v
	}
	for k, ev := range em {
		if dv, exists := out[k]; exists {
			out[k] = deepMerge(dv, ev)
		} else {
			out[k] = ev
		}
	}
	return out
}

// mergeLookup resolves the value a typed property will process from the
// document and environment lookup results:
//
//   - document found and not a mapping: document wins outright
//   - document missing: environment value, if found
//   - both present and both mappings: deep merge, environment precedence
//   - neither present: not found (defaults are the caller's concern)
func mergeLookup(docVal any, docFound bool, envVal any, envFound bool) (any, bool) {
	switch {
	case docFound && envFound:
		if _, isMap := asMapping(docVal); !isMap {
			return docVal, true
		}
		return deepMerge(docVal, envVal), true
	case docFound:
		return docVal, true
	case envFound:
		return envVal, true
	default:
		return nil, false
	}
}

// asMapping normalizes the mapping representations different document
// parsers produce into map[string]any.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
