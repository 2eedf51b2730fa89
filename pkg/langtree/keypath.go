package langtree

import "strings"

// Resolve walks tree along the dot-notation key and returns the value it
// lands on. Empty segments are discarded, so "a..b" and ".a.b." both walk
// ["a", "b"]; a key with no segments yields not-found. Segment comparison
// is case-insensitive. There are no partial results: if an intermediate
// value is not a mapping, or a segment is absent, the lookup fails.
func Resolve(tree Tree, key string) (any, bool) {
	segments := splitKey(key)
	if len(segments) == 0 {
		return nil, false
	}

	var current any = tree
	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = m[segment]
		if !ok {
			// Trees from source loaders are normalized; tolerate
			// hand-built trees with mixed-case keys.
			current, ok = lookupFold(m, segment)
			if !ok {
				return nil, false
			}
		}
	}

	return current, true
}

func splitKey(key string) []string {
	if key == "" {
		return nil
	}

	parts := strings.Split(key, ".")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, strings.ToLower(part))
	}
	return segments
}

func lookupFold(m map[string]any, segment string) (any, bool) {
	for k, v := range m {
		if strings.EqualFold(k, segment) {
			return v, true
		}
	}
	return nil, false
}
