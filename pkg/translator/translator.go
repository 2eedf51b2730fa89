package translator

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/lingua/pkg/cache"
	"github.com/dmitrymomot/lingua/pkg/detect"
	"github.com/dmitrymomot/lingua/pkg/langtree"
	"github.com/dmitrymomot/lingua/pkg/placeholder"
	"github.com/dmitrymomot/lingua/pkg/source"
)

// DefaultLang is the hard-coded ultimate default language, used when no
// configured or detected language resolves to an existing source.
const DefaultLang = "en"

// catalogKeyPrefix namespaces merged-catalog entries in the cache.
const catalogKeyPrefix = "merged_"

// Resolver resolves translation keys against a set of priority-ordered
// translation sources for one active language. Merged catalogs are
// memoized per language and invalidated on every mutation (language
// switch, source addition, explicit cache reset).
//
// Lookups and mutations may be called from multiple goroutines.
type Resolver struct {
	mu        sync.RWMutex
	primary   source.Source
	defaults  source.Source // optional lowest-priority base, may be nil
	overrides []source.Source
	cache     cache.Cache[langtree.Tree]
	log       *slog.Logger
	format    source.Format
	fallback  string
	detected  []string
	active    string
	gen       uint64 // catalog generation, bumped on every invalidation
}

// snapshot is a consistent view of the resolver's mutable state, taken
// under the lock so lookups never observe a half-applied mutation.
type snapshot struct {
	sources  []source.Source // merge order, lowest priority first
	active   string
	fallback string
	gen      uint64
}

// New creates a Resolver. Exactly one primary source location is
// required: WithDir for file mode or WithFS for resource mode;
// construction fails with ErrNoSource otherwise. The active language is
// determined once here: the explicit language if a document exists for
// it, else the first detected candidate with a document, else the
// fallback language, else DefaultLang.
func New(opts ...Option) (*Resolver, error) {
	cfg := &config{format: source.JSON}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.dir == "" && cfg.fsys == nil {
		return nil, ErrNoSource
	}

	primary, err := newSource(cfg.dir, cfg.fsys, cfg.format)
	if err != nil {
		return nil, err
	}

	var defaults source.Source
	if cfg.defaultDir != "" || cfg.defaultFS != nil {
		defaults, err = newSource(cfg.defaultDir, cfg.defaultFS, cfg.format)
		if err != nil {
			return nil, err
		}
	}

	if cfg.cache == nil {
		cfg.cache = cache.NewMemory[langtree.Tree]()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.detected == nil {
		cfg.detected = detect.Languages()
	}

	r := &Resolver{
		primary:  primary,
		defaults: defaults,
		cache:    cfg.cache,
		log:      cfg.logger,
		format:   cfg.format,
		fallback: cfg.fallback,
		detected: cfg.detected,
	}

	r.active = r.determineLanguageLocked(cfg.language)
	r.log.Debug("active language determined",
		slog.String("language", r.active),
		slog.String("explicit", cfg.language),
		slog.String("fallback", r.fallback))

	return r, nil
}

func newSource(dir string, fsys fs.FS, format source.Format) (source.Source, error) {
	if dir != "" {
		return source.NewDir(dir, format)
	}
	return source.NewFS(fsys, format)
}

// Lang resolves key against the merged catalog for the active language,
// retrying against the fallback language on a miss. A key that is still
// missing renders as an empty string; Lang never fails. When replacement
// maps are supplied the resolved string runs through the placeholder
// engine. Source load failures during a catalog rebuild are logged and
// render as misses.
func (r *Resolver) Lang(key string, replacements ...placeholder.M) string {
	snap := r.snapshot()

	v, ok := r.lookup(snap, snap.active, key)
	if !ok && snap.fallback != "" && !strings.EqualFold(snap.fallback, snap.active) {
		v, ok = r.lookup(snap, snap.fallback, key)
	}
	if !ok {
		return ""
	}

	text := langtree.Stringify(v)
	if len(replacements) > 0 {
		text = placeholder.Replace(text, mergeReplacements(replacements...))
	}
	return text
}

// Language returns the active language tag. It is never empty.
func (r *Resolver) Language() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Fallback returns the configured fallback language tag, if any.
func (r *Resolver) Fallback() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// AddSource appends a directory as the highest-priority override source,
// invalidates all cached catalogs, and eagerly rebuilds the catalog for
// the active language. A load failure in any registered source is
// returned. Source registrations are append-only for the lifetime of the
// resolver.
func (r *Resolver) AddSource(dir string) error {
	src, err := source.NewDir(dir, r.format)
	if err != nil {
		return err
	}
	return r.addSource(src)
}

// AddSourceFS appends a filesystem as the highest-priority override
// source. See AddSource.
func (r *Resolver) AddSourceFS(fsys fs.FS) error {
	src, err := source.NewFS(fsys, r.format)
	if err != nil {
		return err
	}
	return r.addSource(src)
}

func (r *Resolver) addSource(src source.Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides = append(r.overrides, src)
	return r.refreshLocked()
}

// SetLanguage switches the active language, invalidates all cached
// catalogs, and eagerly rebuilds the catalog for the new language.
// Language determination applies: the requested tag is used only when a
// document exists for it. Blank input is a no-op.
func (r *Resolver) SetLanguage(tag string) error {
	if strings.TrimSpace(tag) == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = r.determineLanguageLocked(tag)
	return r.refreshLocked()
}

// ClearCache invalidates all cached catalogs and eagerly rebuilds the
// catalog for the active language.
func (r *Resolver) ClearCache() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshLocked()
}

// determineLanguageLocked runs language determination with the given
// explicit candidate. Caller must hold the write lock (or own the
// resolver exclusively, as during construction).
func (r *Resolver) determineLanguageLocked(explicit string) string {
	if explicit != "" && r.documentExistsLocked(explicit) {
		return explicit
	}
	for _, candidate := range r.detected {
		if candidate != "" && r.documentExistsLocked(candidate) {
			return candidate
		}
	}
	if r.fallback != "" {
		return r.fallback
	}
	return DefaultLang
}

func (r *Resolver) documentExistsLocked(lang string) bool {
	if r.primary.Exists(lang) {
		return true
	}
	if r.defaults != nil && r.defaults.Exists(lang) {
		return true
	}
	for _, src := range r.overrides {
		if src.Exists(lang) {
			return true
		}
	}
	return false
}

// refreshLocked invalidates the cache and rebuilds the merged catalog for
// the active language as one unit. Caller must hold the write lock.
//
// Bumping the generation retires every in-flight lazy rebuild: a loader
// started against the previous state can only write back under the old
// generation's key, which no lookup consults from here on. The dead entry
// is swept by the Clear of the next invalidation.
func (r *Resolver) refreshLocked() error {
	ctx := context.Background()

	r.gen++
	if err := r.cache.Clear(ctx); err != nil {
		return err
	}

	snap := r.snapshotLocked()
	tree, err := buildCatalog(snap, r.active)
	if err != nil {
		return err
	}

	return r.cache.Set(ctx, catalogKey(r.gen, r.active), tree, -1)
}

func (r *Resolver) snapshot() snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Resolver) snapshotLocked() snapshot {
	sources := make([]source.Source, 0, len(r.overrides)+2)
	if r.defaults != nil {
		sources = append(sources, r.defaults)
	}
	sources = append(sources, r.primary)
	sources = append(sources, r.overrides...)

	return snapshot{
		sources:  sources,
		active:   r.active,
		fallback: r.fallback,
		gen:      r.gen,
	}
}

func (r *Resolver) lookup(snap snapshot, lang, key string) (any, bool) {
	tree, err := r.catalog(snap, lang)
	if err != nil {
		r.log.Error("failed to load merged catalog",
			slog.String("language", lang),
			slog.Any("error", err))
		return nil, false
	}
	return langtree.Resolve(tree, key)
}

// catalog returns the memoized merged catalog for lang, building it at
// most once per distinct language between invalidations. The key is
// stamped with the snapshot's generation so a rebuild outrun by a
// concurrent mutation populates a retired key instead of the live one.
func (r *Resolver) catalog(snap snapshot, lang string) (langtree.Tree, error) {
	return cache.GetOrSet(context.Background(), r.cache, catalogKey(snap.gen, lang),
		func(context.Context) (langtree.Tree, time.Duration, error) {
			tree, err := buildCatalog(snap, lang)
			return tree, -1, err
		})
}

// buildCatalog deep-merges every source's document for lang, lowest
// priority first. Each source independently falls back to the fallback
// language when its document for lang is absent. A parse or read failure
// in any source fails the whole build.
func buildCatalog(snap snapshot, lang string) (langtree.Tree, error) {
	merged := langtree.Tree{}

	for _, src := range snap.sources {
		name := lang
		if !src.Exists(name) && snap.fallback != "" && !strings.EqualFold(snap.fallback, lang) {
			name = snap.fallback
		}

		tree, err := src.LoadAll(name)
		if err != nil {
			return nil, err
		}
		merged = langtree.Merge(merged, tree)
	}

	return merged, nil
}

func catalogKey(gen uint64, lang string) string {
	return fmt.Sprintf("%s%d_%s", catalogKeyPrefix, gen, lang)
}

func mergeReplacements(replacements ...placeholder.M) placeholder.M {
	if len(replacements) == 1 {
		return replacements[0]
	}
	merged := make(placeholder.M)
	for _, m := range replacements {
		maps.Copy(merged, m)
	}
	return merged
}
