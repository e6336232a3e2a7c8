package tinystore

import (
	"github.com/hupe1980/tinystore/cache"
	"github.com/hupe1980/tinystore/query"
)

// QueryCache memoizes query results for one document set.
//
// Keys combine the query's structural hash with a monotonically increasing
// document-set version: whoever owns the documents calls Invalidate after
// every insert, update or delete, which bumps the version and makes all
// earlier entries unreachable. Stale entries age out of the underlying LRU;
// they are never returned.
//
// Non-cacheable queries bypass the cache entirely: Get always misses and
// Set never stores for them.
//
// V is the memoized result type, typically a slice of document IDs or
// documents. QueryCache is not safe for concurrent use without external
// synchronization.
type QueryCache[V any] struct {
	lru     *cache.LRU[resultKey, V]
	version uint64
	metrics MetricsCollector
	logger  *Logger
}

type resultKey struct {
	hash    uint64
	version uint64
}

// NewQueryCache creates a query-result cache. The capacity defaults to
// DefaultQueryCacheCapacity; an invalid capacity fails fast with
// cache.ErrInvalidCapacity.
func NewQueryCache[V any](optFns ...Option) (*QueryCache[V], error) {
	opts := options{
		capacity:         DefaultQueryCacheCapacity,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	lru, err := cache.New[resultKey, V](opts.capacity)
	if err != nil {
		return nil, err
	}

	return &QueryCache[V]{
		lru:     lru,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}, nil
}

// Get returns the memoized result for q at the current document-set
// version. Non-cacheable queries always miss.
func (c *QueryCache[V]) Get(q query.Query) (V, bool) {
	if !q.Cacheable() {
		c.metrics.RecordCacheMiss()
		var zero V
		return zero, false
	}

	v, ok := c.lru.Get(resultKey{hash: q.Hash(), version: c.version})
	if ok {
		c.metrics.RecordCacheHit()
	} else {
		c.metrics.RecordCacheMiss()
	}
	return v, ok
}

// Set memoizes the result of q at the current document-set version.
// Results of non-cacheable queries are discarded.
func (c *QueryCache[V]) Set(q query.Query, result V) {
	if !q.Cacheable() {
		return
	}

	key := resultKey{hash: q.Hash(), version: c.version}
	existed := c.lru.Contains(key)
	before := c.lru.Len()
	c.lru.Set(key, result)
	// A fresh insert that does not grow the cache displaced the LRU entry.
	if !existed && c.lru.Len() == before && before > 0 {
		c.metrics.RecordEviction()
	}
}

// Invalidate marks the document set as changed. Every cached result becomes
// unreachable; the version only ever increases.
func (c *QueryCache[V]) Invalidate() {
	c.version++
	c.logger.Debug("query cache invalidated", "version", c.version)
}

// Version returns the current document-set version.
func (c *QueryCache[V]) Version() uint64 { return c.version }

// Len returns the number of retained entries, including entries from
// earlier versions that have not yet aged out.
func (c *QueryCache[V]) Len() int { return c.lru.Len() }

// Clear drops all retained entries without touching the version.
func (c *QueryCache[V]) Clear() { c.lru.Clear() }
