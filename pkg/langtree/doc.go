// Package langtree implements the value model shared by the translation
// pipeline: nested translation trees with case-insensitive keys,
// dot-notation key resolution, and deep merging with override precedence.
//
// # Trees
//
// A [Tree] is the parsed form of one translation document, as produced by
// json or yaml unmarshaling into map[string]any. [Normalize] canonicalizes
// all mapping keys to lower case so that two keys differing only by case
// refer to the same entry:
//
//	tree := langtree.Normalize(map[string]any{
//		"App": map[string]any{"Title": "Dashboard"},
//	})
//
// # Key resolution
//
// [Resolve] walks a tree along a dot-notation key:
//
//	v, ok := langtree.Resolve(tree, "app.title") // "Dashboard", true
//	v, ok = langtree.Resolve(tree, "APP.TITLE")  // same entry
//
// # Merging
//
// [Merge] combines two trees without mutating either. Mappings merge
// recursively; every other value type (including sequences) is replaced
// wholesale by the override side:
//
//	merged := langtree.Merge(base, override)
//
// To merge a priority-ordered list of trees, fold left-to-right starting
// from the lowest-priority tree.
package langtree
