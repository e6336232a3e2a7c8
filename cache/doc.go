// Package cache provides a generic bounded LRU cache.
//
// The cache is the memoization building block of tinystore: the root
// package's QueryCache stores predicate results in it, keyed by query hash
// and document-set version. It is equally usable standalone for any
// hashable-key memoization.
//
// Recency tracking is a doubly linked list over map entries, so Get and Set
// never scan the cache. Iteration order is defined: most-recently-used
// first.
package cache
