package tinystore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordCacheHit is called when a query-result lookup is served from
	// the cache.
	RecordCacheHit()

	// RecordCacheMiss is called when a query-result lookup misses, either
	// because the entry is absent, stale, or the query is non-cacheable.
	RecordCacheMiss()

	// RecordEviction is called when inserting a query result displaces the
	// least-recently-used entry.
	RecordEviction()

	// RecordFlush is called after the caching middleware persists its
	// buffered snapshot. err is nil on success.
	RecordFlush(duration time.Duration, err error)

	// RecordStorageRead is called after a delegated read against the
	// wrapped storage. err is nil on success.
	RecordStorageRead(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCacheHit()                        {}
func (NoopMetricsCollector) RecordCacheMiss()                       {}
func (NoopMetricsCollector) RecordEviction()                        {}
func (NoopMetricsCollector) RecordFlush(time.Duration, error)       {}
func (NoopMetricsCollector) RecordStorageRead(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CacheHits       atomic.Int64
	CacheMisses     atomic.Int64
	Evictions       atomic.Int64
	Flushes         atomic.Int64
	FlushErrors     atomic.Int64
	FlushTotalNanos atomic.Int64
	StorageReads    atomic.Int64
	StorageErrors   atomic.Int64
}

func (c *BasicMetricsCollector) RecordCacheHit()  { c.CacheHits.Add(1) }
func (c *BasicMetricsCollector) RecordCacheMiss() { c.CacheMisses.Add(1) }
func (c *BasicMetricsCollector) RecordEviction()  { c.Evictions.Add(1) }

func (c *BasicMetricsCollector) RecordFlush(d time.Duration, err error) {
	c.Flushes.Add(1)
	c.FlushTotalNanos.Add(int64(d))
	if err != nil {
		c.FlushErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordStorageRead(d time.Duration, err error) {
	c.StorageReads.Add(1)
	if err != nil {
		c.StorageErrors.Add(1)
	}
}

// HitRate returns the cache hit ratio in [0, 1], or 0 before any lookup.
func (c *BasicMetricsCollector) HitRate() float64 {
	hits := c.CacheHits.Load()
	total := hits + c.CacheMisses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
