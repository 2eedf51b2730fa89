package langtree

import (
	"fmt"
	"strings"
)

// Tree is a nested translation mapping. Leaves are strings, numbers,
// booleans, nils, or sequences; every non-leaf value is another mapping.
// Mapping keys are canonicalized to lower case, making key comparison
// case-insensitive throughout the package.
type Tree = map[string]any

// Normalize returns a copy of m with all mapping keys lower-cased,
// recursively, including mappings nested inside sequences.
// When two keys differ only by case, the surviving value is undefined
// (source documents are expected to resolve duplicates at parse time).
func Normalize(m map[string]any) Tree {
	if m == nil {
		return nil
	}

	out := make(Tree, len(m))
	for key, value := range m {
		out[strings.ToLower(key)] = normalizeValue(value)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Normalize(t)
	case []any:
		seq := make([]any, len(t))
		for i, elem := range t {
			seq[i] = normalizeValue(elem)
		}
		return seq
	default:
		return v
	}
}

// Stringify renders a leaf value as a translation string.
// Strings are returned as-is, nil renders as an empty string, and all
// other leaf types are formatted with fmt.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
