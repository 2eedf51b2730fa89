package source

import (
	"github.com/dmitrymomot/lingua/pkg/langtree"
)

// ReservedLanguagesName is the name of the reserved document that maps
// language codes to display names. It is excluded from enumeration.
const ReservedLanguagesName = "languages"

// metaDisplayNameKey is the key path of the reserved display-name field
// inside a translation document.
const metaDisplayNameKey = "_meta_.language_name"

// Source is a named, priority-ordered origin of translation documents,
// one per language tag. The resolver registers sources in priority order;
// later sources override earlier ones.
type Source interface {
	// Exists reports whether a document with the given name is present.
	Exists(name string) bool

	// LoadAll parses the named document into a normalized translation
	// tree. An absent document yields an empty tree and no error; a
	// malformed or unreadable document yields an error wrapping
	// ErrInvalidDocument.
	LoadAll(name string) (langtree.Tree, error)

	// Extension returns the file extension this source matches,
	// including the dot (e.g. ".json").
	Extension() string

	// LanguageDisplayName reads the _meta_.language_name field of the
	// named document. It reports false when the document is absent,
	// malformed, or carries no non-empty name; errors are swallowed.
	LanguageDisplayName(name string) (string, bool)

	// Names enumerates the document names available from this source:
	// files matching the extension, extension stripped, excluding names
	// starting with an underscore and the reserved languages document.
	Names() []string
}
