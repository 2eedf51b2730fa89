package source

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/dmitrymomot/lingua/pkg/langtree"
)

// FS is a Source reading translation documents from the root of an fs.FS.
// Documents are flat files named after the language tag, e.g. "en.json",
// "de.json", plus the optional reserved "languages" document.
//
// File-system directories and embedded resources share this
// implementation: use [NewDir] for a directory on disk and [NewFS] for
// an embed.FS (or any other fs.FS).
type FS struct {
	fsys   fs.FS
	format Format
}

// NewFS creates a source over an existing fs.FS.
func NewFS(fsys fs.FS, format Format) (*FS, error) {
	if fsys == nil {
		return nil, ErrNilFS
	}
	return &FS{fsys: fsys, format: format}, nil
}

// NewDir creates a source over a directory on the local file system.
func NewDir(dir string, format Format) (*FS, error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}
	return &FS{fsys: os.DirFS(dir), format: format}, nil
}

// Extension returns the primary file extension of the source's format.
func (s *FS) Extension() string {
	return s.format.Extension()
}

// Exists reports whether a document with the given name is present.
func (s *FS) Exists(name string) bool {
	_, ok := s.fileFor(name)
	return ok
}

// LoadAll parses the named document into a normalized translation tree.
// An absent document yields an empty tree and no error.
func (s *FS) LoadAll(name string) (langtree.Tree, error) {
	filePath, ok := s.fileFor(name)
	if !ok {
		return langtree.Tree{}, nil
	}

	data, err := fs.ReadFile(s.fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrInvalidDocument, filePath, err)
	}

	var raw map[string]any
	if err := s.format.unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %s", ErrInvalidDocument, filePath, err)
	}

	return langtree.Normalize(raw), nil
}

// LanguageDisplayName reads the _meta_.language_name field of the named
// document. Errors are swallowed: a malformed document simply contributes
// no name.
func (s *FS) LanguageDisplayName(name string) (string, bool) {
	tree, err := s.LoadAll(name)
	if err != nil {
		return "", false
	}

	v, ok := langtree.Resolve(tree, metaDisplayNameKey)
	if !ok {
		return "", false
	}

	displayName := langtree.Stringify(v)
	if displayName == "" {
		return "", false
	}
	return displayName, true
}

// Names enumerates the document names available from this source, sorted.
// Names starting with an underscore and the reserved languages document
// are excluded. An unreadable directory contributes no names.
func (s *FS) Names() []string {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := path.Ext(entry.Name())
		if !s.matchesExtension(ext) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ext)
		if strings.HasPrefix(name, "_") || strings.EqualFold(name, ReservedLanguagesName) {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// fileFor resolves a document name to an existing file path, trying each
// extension the format matches.
func (s *FS) fileFor(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, ext := range s.format.extensions() {
		filePath := name + ext
		if info, err := fs.Stat(s.fsys, filePath); err == nil && !info.IsDir() {
			return filePath, true
		}
	}
	return "", false
}

func (s *FS) matchesExtension(ext string) bool {
	for _, candidate := range s.format.extensions() {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}

var _ Source = (*FS)(nil)
