// Package cache provides a generic Cache interface with in-memory and Redis
// implementations, used to memoize merged translation catalogs per language.
//
// Both implementations share the same [Cache] interface, making it easy to
// swap backends or use in-memory caching for development and Redis when
// several processes should share one catalog cache.
//
// # Interface
//
// The [Cache] interface is generic over value type V:
//
//   - Get(ctx, key) (V, error) — retrieve a value
//   - Set(ctx, key, value, ttl) error — store a value
//   - Delete(ctx, key) error — remove a key
//   - Has(ctx, key) (bool, error) — check existence
//   - Clear(ctx) error — remove all entries
//   - Close() error — release resources
//
// Keys are compared case-insensitively: both backends normalize keys to
// lower case.
//
// By default entries never expire; a catalog leaves the cache only through
// Delete or Clear (explicit invalidation on language switch, source
// addition, or cache reset). TTL support is available for hosts that
// prefer bounded staleness over explicit invalidation.
//
// # Loader deduplication
//
// [GetOrSet] computes a missing value at most once per distinct key under
// concurrent access, via singleflight:
//
//	tree, err := cache.GetOrSet(ctx, c, "merged_en",
//	    func(ctx context.Context) (langtree.Tree, time.Duration, error) {
//	        t, err := buildCatalog("en")
//	        return t, -1, err // never expires
//	    })
//
// # In-Memory Cache
//
// Use [NewMemory] for single-process applications or testing:
//
//	c := cache.NewMemory[langtree.Tree]()
//	defer c.Close()
//
// # Redis Cache
//
// Use [NewRedis] with an existing go-redis client. Values are serialized
// with JSON unless a custom [Marshaler] is provided, and a key prefix
// keeps catalogs apart from other tenants of the same Redis instance:
//
//	c := cache.NewRedis[langtree.Tree](client, nil, cache.WithPrefix("catalogs"))
package cache
