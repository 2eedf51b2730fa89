package translator

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/dmitrymomot/lingua/pkg/langtree"
	"github.com/dmitrymomot/lingua/pkg/source"
)

// LanguageInfo is a read-only presentation projection of one available
// language, e.g. for populating a language picker.
type LanguageInfo struct {
	Code        string
	DisplayName string
}

// Languages enumerates the available languages across all registered
// sources, sorted ascending by display name (case-insensitive).
//
// Codes come from the reserved "languages" document when one exists,
// otherwise from source file enumeration. The display name of each code
// is resolved in order: explicit name from the "languages" document, the
// language's own _meta_.language_name field, the platform locale name
// for the tag, and finally the upper-cased code. Errors reading any one
// source are swallowed; enumeration never fails.
func (r *Resolver) Languages() []LanguageInfo {
	snap := r.snapshot()

	explicit := loadLanguageNames(snap.sources)

	var codes []string
	if len(explicit) > 0 {
		for code := range explicit {
			codes = append(codes, code)
		}
	} else {
		codes = enumerateCodes(snap.sources)
	}

	infos := make([]LanguageInfo, 0, len(codes))
	for _, code := range codes {
		infos = append(infos, LanguageInfo{
			Code:        code,
			DisplayName: displayName(snap.sources, explicit, code),
		})
	}

	slices.SortFunc(infos, func(a, b LanguageInfo) int {
		if c := strings.Compare(strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName)); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})

	return infos
}

// loadLanguageNames reads the reserved "languages" document from the
// highest-priority source that has one, flattening its top-level string
// leaves into a code → display-name map. Malformed documents contribute
// nothing.
func loadLanguageNames(sources []source.Source) map[string]string {
	for i := len(sources) - 1; i >= 0; i-- {
		src := sources[i]
		if !src.Exists(source.ReservedLanguagesName) {
			continue
		}

		tree, err := src.LoadAll(source.ReservedLanguagesName)
		if err != nil {
			continue
		}

		names := make(map[string]string, len(tree))
		for code, value := range tree {
			if strings.HasPrefix(code, "_") {
				continue
			}
			if _, isMap := value.(map[string]any); isMap {
				continue
			}
			if name := langtree.Stringify(value); name != "" {
				names[code] = name
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return nil
}

// enumerateCodes collects document names across sources, deduplicated
// case-insensitively, preserving first-seen spelling.
func enumerateCodes(sources []source.Source) []string {
	seen := make(map[string]bool)
	var codes []string

	for _, src := range sources {
		for _, name := range src.Names() {
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			codes = append(codes, name)
		}
	}

	return codes
}

func displayName(sources []source.Source, explicit map[string]string, code string) string {
	if name, ok := explicit[strings.ToLower(code)]; ok && name != "" {
		return name
	}

	// Highest-priority source wins, matching override semantics.
	for i := len(sources) - 1; i >= 0; i-- {
		if name, ok := sources[i].LanguageDisplayName(code); ok {
			return name
		}
	}

	if name := platformDisplayName(code); name != "" {
		return name
	}

	return strings.ToUpper(code)
}

// platformDisplayName resolves a language tag to its own self-name via
// the CLDR data shipped with golang.org/x/text.
func platformDisplayName(code string) string {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return ""
	}
	return display.Self.Name(tag)
}
