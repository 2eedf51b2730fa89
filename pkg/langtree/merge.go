package langtree

import "maps"

// Merge combines two trees with override precedence and returns a new
// tree; neither input is mutated. When both sides hold a mapping under
// the same key the mappings are merged recursively; any other collision
// is resolved by taking the override value wholesale (sequences are never
// merged element-wise). Merging more than two trees is order-sensitive:
// fold strictly left-to-right, lowest priority first.
func Merge(base, override Tree) Tree {
	if base == nil && override == nil {
		return Tree{}
	}
	if base == nil {
		return maps.Clone(override)
	}
	if override == nil {
		return maps.Clone(base)
	}

	out := make(Tree, len(base))
	maps.Copy(out, base)

	for key, value := range override {
		baseChild, baseIsMap := out[key].(map[string]any)
		overrideChild, overrideIsMap := value.(map[string]any)
		if baseIsMap && overrideIsMap {
			out[key] = Merge(baseChild, overrideChild)
			continue
		}
		out[key] = value
	}

	return out
}
