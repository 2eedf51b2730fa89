package source_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/langtree"
	"github.com/dmitrymomot/lingua/pkg/source"
)

func jsonFS() fstest.MapFS {
	return fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{
			"_meta_": {"language_name": "English"},
			"App": {"Title": "Dashboard"}
		}`)},
		"de.json":        &fstest.MapFile{Data: []byte(`{"app": {"title": "Übersicht"}}`)},
		"broken.json":    &fstest.MapFile{Data: []byte(`{not json`)},
		"languages.json": &fstest.MapFile{Data: []byte(`{"en": "English", "de": "Deutsch"}`)},
		"_drafts.json":   &fstest.MapFile{Data: []byte(`{}`)},
		"notes.txt":      &fstest.MapFile{Data: []byte(`ignored`)},
	}
}

func TestFS_LoadAll(t *testing.T) {
	t.Parallel()

	t.Run("parses and normalizes a document", func(t *testing.T) {
		t.Parallel()

		src, err := source.NewFS(jsonFS(), source.JSON)
		require.NoError(t, err)

		tree, err := src.LoadAll("en")
		require.NoError(t, err)

		v, ok := langtree.Resolve(tree, "app.title")
		require.True(t, ok)
		require.Equal(t, "Dashboard", v)
	})

	t.Run("absent document yields empty tree without error", func(t *testing.T) {
		t.Parallel()

		src, err := source.NewFS(jsonFS(), source.JSON)
		require.NoError(t, err)

		tree, err := src.LoadAll("fr")
		require.NoError(t, err)
		require.NotNil(t, tree)
		require.Empty(t, tree)
	})

	t.Run("malformed document surfaces ErrInvalidDocument", func(t *testing.T) {
		t.Parallel()

		src, err := source.NewFS(jsonFS(), source.JSON)
		require.NoError(t, err)

		_, err = src.LoadAll("broken")
		require.ErrorIs(t, err, source.ErrInvalidDocument)
	})

	t.Run("yaml documents with both extensions", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"en.yaml": &fstest.MapFile{Data: []byte("app:\n  title: Dashboard\n")},
			"de.yml":  &fstest.MapFile{Data: []byte("app:\n  title: Übersicht\n")},
		}

		src, err := source.NewFS(fsys, source.YAML)
		require.NoError(t, err)
		require.Equal(t, ".yaml", src.Extension())

		tree, err := src.LoadAll("en")
		require.NoError(t, err)
		v, ok := langtree.Resolve(tree, "app.title")
		require.True(t, ok)
		require.Equal(t, "Dashboard", v)

		tree, err = src.LoadAll("de")
		require.NoError(t, err)
		v, ok = langtree.Resolve(tree, "app.title")
		require.True(t, ok)
		require.Equal(t, "Übersicht", v)
	})
}

func TestFS_Exists(t *testing.T) {
	t.Parallel()

	src, err := source.NewFS(jsonFS(), source.JSON)
	require.NoError(t, err)

	require.True(t, src.Exists("en"))
	require.True(t, src.Exists("de"))
	require.False(t, src.Exists("fr"))
	require.False(t, src.Exists(""))
}

func TestFS_Names(t *testing.T) {
	t.Parallel()

	src, err := source.NewFS(jsonFS(), source.JSON)
	require.NoError(t, err)

	// Underscore-prefixed names, the reserved languages document, and
	// files with foreign extensions are excluded.
	require.Equal(t, []string{"broken", "de", "en"}, src.Names())
}

func TestFS_LanguageDisplayName(t *testing.T) {
	t.Parallel()

	src, err := source.NewFS(jsonFS(), source.JSON)
	require.NoError(t, err)

	t.Run("reads meta field", func(t *testing.T) {
		t.Parallel()

		name, ok := src.LanguageDisplayName("en")
		require.True(t, ok)
		require.Equal(t, "English", name)
	})

	t.Run("absent meta yields no name", func(t *testing.T) {
		t.Parallel()

		_, ok := src.LanguageDisplayName("de")
		require.False(t, ok)
	})

	t.Run("malformed document is swallowed", func(t *testing.T) {
		t.Parallel()

		_, ok := src.LanguageDisplayName("broken")
		require.False(t, ok)
	})

	t.Run("absent document yields no name", func(t *testing.T) {
		t.Parallel()

		_, ok := src.LanguageDisplayName("fr")
		require.False(t, ok)
	})
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := source.NewFS(nil, source.JSON)
	require.ErrorIs(t, err, source.ErrNilFS)

	_, err = source.NewDir("", source.JSON)
	require.ErrorIs(t, err, source.ErrEmptyDir)
}
