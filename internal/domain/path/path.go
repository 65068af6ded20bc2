// Package path reads and writes nested document fields by dotted address,
// e.g. "combat.hp.current" or "classResources.Monk.ki".
package path

import "strings"

// Separator joins address segments
const Separator = "."

// Split breaks an address into its segments. Empty segments are dropped so
// "a..b" and ".a.b." both yield [a b].
func Split(address string) []string {
	raw := strings.Split(address, Separator)
	segments := raw[:0]
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Join builds an address from segments
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Get walks address through nested maps. It reports false when any segment
// is absent or an intermediate value is not a map; it never panics.
func Get(doc map[string]any, address string) (any, bool) {
	segments := Split(address)
	if doc == nil || len(segments) == 0 {
		return nil, false
	}

	var current any = doc
	for _, key := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set assigns value at address, creating empty maps for missing
// intermediate segments. A non-map intermediate is replaced by a map.
// No bounds or shape checks happen here.
func Set(doc map[string]any, address string, value any) {
	segments := Split(address)
	if doc == nil || len(segments) == 0 {
		return
	}

	target := doc
	for _, key := range segments[:len(segments)-1] {
		next, ok := target[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			target[key] = next
		}
		target = next
	}
	target[segments[len(segments)-1]] = value
}

// Delete removes the field at address. Missing segments are a no-op.
func Delete(doc map[string]any, address string) {
	segments := Split(address)
	if doc == nil || len(segments) == 0 {
		return
	}

	parent := doc
	for _, key := range segments[:len(segments)-1] {
		next, ok := parent[key].(map[string]any)
		if !ok {
			return
		}
		parent = next
	}
	delete(parent, segments[len(segments)-1])
}
