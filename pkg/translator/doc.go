// Package translator resolves human-readable strings by key from JSON or
// YAML translation documents organized by language code.
//
// A [Resolver] owns an append-only list of priority-ordered translation
// sources, one active language, and a cache of merged catalogs. It is
// safe for concurrent use: lookups read a consistent snapshot while
// mutations (language switch, source addition, cache reset) apply
// atomically.
//
// # Basic Usage
//
//	r, err := translator.New(
//		translator.WithDir("./translations"),
//		translator.WithLanguage("de"),
//		translator.WithFallback("en"),
//	)
//	if err != nil {
//		// missing source location, unreadable document, ...
//	}
//
//	title := r.Lang("app.title")
//	greeting := r.Lang("app.greeting", placeholder.M{"name": "john"})
//
// Missing keys render as empty strings; missing placeholder replacements
// stay verbatim in the output. Lookups never fail at runtime.
//
// # Embedded Translations
//
// Resource mode reads from any fs.FS:
//
//	//go:embed translations
//	var translationsFS embed.FS
//
//	sub, _ := fs.Sub(translationsFS, "translations")
//	r, err := translator.New(
//		translator.WithFS(sub),
//		translator.WithFallback("en"),
//	)
//
// # Language Determination
//
// The active language is chosen once at construction and on every
// SetLanguage call: an explicitly requested language is used when a
// document exists for it; otherwise the platform's detected candidates
// (see pkg/detect) are tried in order; otherwise the fallback language;
// otherwise "en".
//
// # Override Sources
//
// Later sources override earlier ones, key by key, with nested mappings
// merged recursively:
//
//	_ = r.AddSource("./translations-custom") // highest priority so far
//
// An optional defaults source (WithDefaultsDir/WithDefaultsFS) sits below
// the primary source as the lowest-priority base layer.
//
// # Caching
//
// Merged catalogs are memoized per language in a [cache.Cache] — the
// in-memory backend by default, or a shared Redis backend via WithCache.
// Every mutation invalidates the cache and eagerly rebuilds the active
// language's catalog, so a mutation surfaces document errors immediately
// instead of failing a later lookup.
//
// # Language Catalog
//
// Languages enumerates available languages with display names for
// presentation, resolved from the reserved "languages" document, each
// document's _meta_.language_name field, or CLDR self-names:
//
//	for _, info := range r.Languages() {
//		fmt.Printf("%s: %s\n", info.Code, info.DisplayName)
//	}
package translator
