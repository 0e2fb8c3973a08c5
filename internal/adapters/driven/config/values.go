// Package config holds the dot-key value set shared by the config stores.
package config

import (
	"maps"
	"slices"
	"strings"
)

// Values maps dot-notation keys to decoded TOML values. Lookups coerce
// the types go-toml produces; a missing key or a value of another type
// reads as the zero value.
type Values map[string]any

// String returns the string at key.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the integer at key. TOML decodes integers as int64, values
// set in process are usually int, and JSON round trips give float64.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Strings returns the list at key. Non-string elements are skipped and a
// single string reads as a one-element list.
func (v Values) Strings(key string) []string {
	switch list := v[key].(type) {
	case []string:
		return list
	case string:
		return []string{list}
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Flatten turns nested TOML tables into dot keys.
func Flatten(tables map[string]any) Values {
	out := make(Values)
	flattenInto(out, tables, "")
	return out
}

func flattenInto(out Values, tables map[string]any, prefix string) {
	for k, val := range tables {
		if prefix != "" {
			k = prefix + "." + k
		}
		if child, ok := val.(map[string]any); ok {
			flattenInto(out, child, k)
			continue
		}
		out[k] = val
	}
}

// Nest is the inverse of Flatten. Keys are placed in sorted order, so a
// plain value always claims its name before any longer key uses it as a
// table; such a longer key keeps its full dotted name at the top level.
func (v Values) Nest() map[string]any {
	root := make(map[string]any)
	for _, key := range slices.Sorted(maps.Keys(v)) {
		parts := strings.Split(key, ".")
		table, ok := tableFor(root, parts[:len(parts)-1])
		if !ok {
			root[key] = v[key]
			continue
		}
		table[parts[len(parts)-1]] = v[key]
	}
	return root
}

// tableFor walks or creates the tables along path. It fails when a
// segment already holds a plain value.
func tableFor(root map[string]any, path []string) (map[string]any, bool) {
	node := root
	for _, part := range path {
		child, exists := node[part]
		if !exists {
			next := make(map[string]any)
			node[part] = next
			node = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}
