// Package cache provides the generic caches used for compiled pages and
// compiled view-model programs.
//
// [Cache] is implemented by [Memory] (per process, TTL plus optional LRU
// bound) and [Redis] (shared between processes). TTL semantics for Set:
//
//   - positive: entry expires after the duration
//   - zero: the cache's default TTL
//   - negative: entry never expires
//
// DeletePrefix evicts a key family at once, which is how templates drop
// every page rendered from them when their source changes:
//
//	pages := cache.NewMemory[string](cache.WithMaxEntries(1000))
//	html, err := cache.GetOrSet(ctx, pages, "page:home", func(ctx context.Context) (string, time.Duration, error) {
//	    return render(ctx)
//	})
//
// Values stored in Redis go through a [Marshaler]; JSON by default and
// [StringMarshaler] for plain text.
package cache
