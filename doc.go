// Package tinystore provides the caching and query core of an embedded
// document store.
//
// The library is a toolkit, not a database: table and document-id
// orchestration, durable file adapters and any CLI live outside. What lives
// here is the hard part those collaborators share:
//
//   - query: a composable predicate algebra with canonical structural
//     hashing, so filters can be memoized safely.
//   - cache: a generic bounded LRU cache with strict recency eviction.
//   - QueryCache (this package): predicate-result memoization keyed by
//     query hash and a monotonically increasing document-set version.
//   - middleware: storage decorators that buffer writes (Caching), log
//     operations (Logging), and translate snapshots (Encoded, Compression).
//   - frozen: immutable, hashable document views.
//
// # Quick start
//
//	adult := query.Field("age").Ge(18)
//
//	results, _ := tinystore.NewQueryCache[[]string]()
//	if ids, ok := results.Get(adult); ok {
//	    return ids // served from cache
//	}
//	ids := scan(docs, adult) // caller-side linear scan
//	results.Set(adult, ids)
//
//	// After any document mutation:
//	results.Invalidate()
//
// # Concurrency
//
// All operations are synchronous and complete on the caller's goroutine.
// Nothing here locks internally: share instances across goroutines only
// with external synchronization.
package tinystore
