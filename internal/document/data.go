package document

import "maps"

// Data is the attribute map of a node, e.g. the column alignment of a table.
// Data values are treated as immutable; With returns a modified copy.
type Data map[string]any

// Get returns the value stored under key.
func (d Data) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// String returns the string stored under key, or def.
func (d Data) String(key, def string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return def
}

// Strings returns the string list stored under key. Lists decoded from
// fixtures arrive as []any and are converted.
func (d Data) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, _ := item.(string)
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

// With returns a copy of d with key set to value.
func (d Data) With(key string, value any) Data {
	out := make(Data, len(d)+1)
	maps.Copy(out, d)
	out[key] = value
	return out
}

// Without returns a copy of d with key removed.
func (d Data) Without(key string) Data {
	if _, ok := d[key]; !ok {
		return d
	}
	out := maps.Clone(d)
	delete(out, key)
	return out
}
