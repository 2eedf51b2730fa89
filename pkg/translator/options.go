package translator

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/lingua/pkg/cache"
	"github.com/dmitrymomot/lingua/pkg/langtree"
	"github.com/dmitrymomot/lingua/pkg/source"
)

// Option configures the Resolver during construction.
type Option func(*config) error

type config struct {
	dir        string
	fsys       fs.FS
	defaultDir string
	defaultFS  fs.FS
	format     source.Format
	language   string
	fallback   string
	detected   []string
	cache      cache.Cache[langtree.Tree]
	logger     *slog.Logger
}

// WithDir selects file mode: translation documents are read from the
// given directory. Exactly one of WithDir or WithFS is required.
func WithDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return ErrEmptyDir
		}
		c.dir = dir
		return nil
	}
}

// WithFS selects resource mode: translation documents are read from the
// root of the given filesystem (e.g. an embed.FS subtree). Exactly one of
// WithDir or WithFS is required.
func WithFS(fsys fs.FS) Option {
	return func(c *config) error {
		if fsys == nil {
			return ErrNilFS
		}
		c.fsys = fsys
		return nil
	}
}

// WithFormat sets the document encoding of all sources.
// Default: JSON.
func WithFormat(f source.Format) Option {
	return func(c *config) error {
		c.format = f
		return nil
	}
}

// WithLanguage sets an explicit language. It is used only when a source
// document exists for it; otherwise language determination falls through
// to the detected candidates and the fallback language.
func WithLanguage(tag string) Option {
	return func(c *config) error {
		c.language = tag
		return nil
	}
}

// WithFallback sets the fallback language consulted when the active
// language lacks a key or a document.
func WithFallback(tag string) Option {
	return func(c *config) error {
		c.fallback = tag
		return nil
	}
}

// WithDefaultsDir layers a base directory of default documents under the
// primary source. Documents from this source have the lowest priority.
func WithDefaultsDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return ErrEmptyDir
		}
		c.defaultDir = dir
		return nil
	}
}

// WithDefaultsFS layers a filesystem of default documents under the
// primary source. Documents from this source have the lowest priority.
func WithDefaultsFS(fsys fs.FS) Option {
	return func(c *config) error {
		if fsys == nil {
			return ErrNilFS
		}
		c.defaultFS = fsys
		return nil
	}
}

// WithDetected supplies the ranked language candidates normally produced
// by the platform (see pkg/detect). When this option is absent the
// resolver reads the host environment's locale settings; calling it with
// no tags disables detection entirely.
func WithDetected(tags ...string) Option {
	return func(c *config) error {
		c.detected = append([]string{}, tags...)
		return nil
	}
}

// WithCache replaces the default in-memory catalog cache, e.g. with a
// Redis-backed one shared between processes.
func WithCache(c cache.Cache[langtree.Tree]) Option {
	return func(cfg *config) error {
		if c == nil {
			return ErrNilCache
		}
		cfg.cache = c
		return nil
	}
}

// WithLogger sets the logger used to report source load failures during
// lookups. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *config) error {
		if log == nil {
			return ErrNilLogger
		}
		c.logger = log
		return nil
	}
}
