package translator_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/cache"
	"github.com/dmitrymomot/lingua/pkg/langtree"
	"github.com/dmitrymomot/lingua/pkg/placeholder"
	"github.com/dmitrymomot/lingua/pkg/source"
	"github.com/dmitrymomot/lingua/pkg/translator"
)

func baseFS() fstest.MapFS {
	return fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{
			"app": {"title": "Dashboard", "greeting": "Hello :name!"},
			"count": 42,
			"empty": null
		}`)},
		"de.json": &fstest.MapFile{Data: []byte(`{
			"app": {"title": "Übersicht"}
		}`)},
	}
}

func newResolver(t *testing.T, opts ...translator.Option) *translator.Resolver {
	t.Helper()

	opts = append([]translator.Option{
		translator.WithFS(baseFS()),
		translator.WithDetected(), // ignore the host environment
	}, opts...)

	r, err := translator.New(opts...)
	require.NoError(t, err)
	return r
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	t.Run("fails without a source location", func(t *testing.T) {
		t.Parallel()

		_, err := translator.New()
		require.ErrorIs(t, err, translator.ErrNoSource)
	})

	t.Run("fails on empty directory", func(t *testing.T) {
		t.Parallel()

		_, err := translator.New(translator.WithDir(""))
		require.ErrorIs(t, err, translator.ErrEmptyDir)
	})

	t.Run("fails on nil filesystem", func(t *testing.T) {
		t.Parallel()

		_, err := translator.New(translator.WithFS(nil))
		require.ErrorIs(t, err, translator.ErrNilFS)
	})

	t.Run("fails on nil cache", func(t *testing.T) {
		t.Parallel()

		_, err := translator.New(translator.WithFS(baseFS()), translator.WithCache(nil))
		require.ErrorIs(t, err, translator.ErrNilCache)
	})
}

func TestLanguageDetermination(t *testing.T) {
	t.Parallel()

	t.Run("explicit language with existing document", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("de"))
		require.Equal(t, "de", r.Language())
	})

	t.Run("explicit language without document falls to detected", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t,
			translator.WithLanguage("fr"),
			translator.WithDetected("it", "de", "en"))
		require.Equal(t, "de", r.Language())
	})

	t.Run("no match falls to fallback", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t,
			translator.WithLanguage("fr"),
			translator.WithDetected("it"),
			translator.WithFallback("en"))
		require.Equal(t, "en", r.Language())
	})

	t.Run("nothing configured falls to hard default", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("fr"))
		require.Equal(t, translator.DefaultLang, r.Language())
	})
}

func TestLang(t *testing.T) {
	t.Parallel()

	t.Run("resolves nested key", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))
		require.Equal(t, "Dashboard", r.Lang("app.title"))
	})

	t.Run("key lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))
		require.Equal(t, "Dashboard", r.Lang("APP.TITLE"))
	})

	t.Run("missing key renders empty string", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))
		require.Equal(t, "", r.Lang("app.missing"))
		require.Equal(t, "", r.Lang(""))
	})

	t.Run("stringifies non-string leaves", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))
		require.Equal(t, "42", r.Lang("count"))
		require.Equal(t, "", r.Lang("empty"))
	})

	t.Run("applies placeholders", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))
		got := r.Lang("app.greeting", placeholder.M{"name": "john"})
		require.Equal(t, "Hello john!", got)
	})

	t.Run("missing key falls back to fallback language", func(t *testing.T) {
		t.Parallel()

		// "de" has no greeting; "en" does.
		r := newResolver(t,
			translator.WithLanguage("de"),
			translator.WithFallback("en"))
		got := r.Lang("app.greeting", placeholder.M{"name": "john"})
		require.Equal(t, "Hello john!", got)
	})

	t.Run("absent language document falls back wholesale", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"en.json": &fstest.MapFile{Data: []byte(`{"x": "hi"}`)},
		}
		r, err := translator.New(
			translator.WithFS(fsys),
			translator.WithDetected(),
			translator.WithLanguage("fr"),
			translator.WithFallback("en"))
		require.NoError(t, err)
		require.Equal(t, "hi", r.Lang("x"))
	})
}

func TestAddSource(t *testing.T) {
	t.Parallel()

	t.Run("later source overrides earlier keys and keeps the rest", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))
		require.Equal(t, "Dashboard", r.Lang("app.title"))

		override := fstest.MapFS{
			"en.json": &fstest.MapFile{Data: []byte(`{"app": {"title": "Override"}}`)},
		}
		require.NoError(t, r.AddSourceFS(override))

		require.Equal(t, "Override", r.Lang("app.title"))
		// Sibling keys from the base source survive the merge.
		require.Equal(t, "Hello john!", r.Lang("app.greeting", placeholder.M{"name": "JOHN"}))
	})

	t.Run("sources stack in registration order", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))

		first := fstest.MapFS{
			"en.json": &fstest.MapFile{Data: []byte(`{"app": {"title": "First"}}`)},
		}
		second := fstest.MapFS{
			"en.json": &fstest.MapFile{Data: []byte(`{"app": {"title": "Second"}}`)},
		}
		require.NoError(t, r.AddSourceFS(first))
		require.NoError(t, r.AddSourceFS(second))

		require.Equal(t, "Second", r.Lang("app.title"))
	})

	t.Run("surfaces malformed documents", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))

		broken := fstest.MapFS{
			"en.json": &fstest.MapFile{Data: []byte(`{not json`)},
		}
		err := r.AddSourceFS(broken)
		require.ErrorIs(t, err, source.ErrInvalidDocument)
	})
}

func TestDefaultsLayer(t *testing.T) {
	t.Parallel()

	defaults := fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{
			"app": {"title": "Default", "footer": "From defaults"}
		}`)},
	}

	r, err := translator.New(
		translator.WithFS(baseFS()),
		translator.WithDefaultsFS(defaults),
		translator.WithDetected(),
		translator.WithLanguage("en"))
	require.NoError(t, err)

	// Primary overrides the defaults layer; untouched keys shine through.
	require.Equal(t, "Dashboard", r.Lang("app.title"))
	require.Equal(t, "From defaults", r.Lang("app.footer"))
}

func TestSetLanguage(t *testing.T) {
	t.Parallel()

	t.Run("switch reflects the new language immediately", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))
		require.Equal(t, "Dashboard", r.Lang("app.title"))

		require.NoError(t, r.SetLanguage("de"))
		require.Equal(t, "de", r.Language())
		require.Equal(t, "Übersicht", r.Lang("app.title"))
	})

	t.Run("blank input is a no-op", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, translator.WithLanguage("en"))
		require.NoError(t, r.SetLanguage("  "))
		require.Equal(t, "en", r.Language())
	})

	t.Run("unknown language re-runs determination", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t,
			translator.WithLanguage("en"),
			translator.WithFallback("en"))
		require.NoError(t, r.SetLanguage("fr"))
		require.Equal(t, "en", r.Language())
	})
}

func TestClearCache(t *testing.T) {
	t.Parallel()

	r := newResolver(t, translator.WithLanguage("en"))
	require.Equal(t, "Dashboard", r.Lang("app.title"))

	require.NoError(t, r.ClearCache())
	require.Equal(t, "Dashboard", r.Lang("app.title"))
}

// gatedCache wraps a catalog cache and, while armed, parks the next Set
// until released. It exposes the window between a lookup's catalog
// rebuild and its write-back.
type gatedCache struct {
	cache.Cache[langtree.Tree]
	entered chan struct{}
	release chan struct{}
	armed   atomic.Bool
}

func (g *gatedCache) Set(ctx context.Context, key string, value langtree.Tree, ttl time.Duration) error {
	if g.armed.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.release
	}
	return g.Cache.Set(ctx, key, value, ttl)
}

func TestStaleRebuildDoesNotMaskMutation(t *testing.T) {
	t.Parallel()

	inner := cache.NewMemory[langtree.Tree]()
	defer inner.Close()

	gate := &gatedCache{
		Cache:   inner,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	gate.armed.Store(true)

	base := fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{"app": {"title": "Base"}}`)},
	}
	r, err := translator.New(
		translator.WithFS(base),
		translator.WithDetected(),
		translator.WithLanguage("en"),
		translator.WithCache(gate))
	require.NoError(t, err)

	first := make(chan string)
	go func() {
		first <- r.Lang("app.title")
	}()

	// The lookup has rebuilt its catalog from the base source and is
	// now parked on the write-back.
	<-gate.entered

	override := fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{"app": {"title": "Override"}}`)},
	}
	require.NoError(t, r.AddSourceFS(override))

	// Let the stale write-back land after the mutation completed.
	close(gate.release)
	require.Equal(t, "Base", <-first)

	// Every lookup issued after the mutation returned must observe the
	// post-mutation catalog, no matter when the parked rebuild landed.
	require.Equal(t, "Override", r.Lang("app.title"))
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := newResolver(t,
		translator.WithLanguage("en"),
		translator.WithFallback("en"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got := r.Lang("app.title")
				// Either language's title, never a torn read.
				if got != "Dashboard" && got != "Übersicht" {
					t.Errorf("unexpected title %q", got)
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for k := 0; k < 10; k++ {
			_ = r.SetLanguage("de")
			_ = r.SetLanguage("en")
		}
	}()

	wg.Wait()
}
