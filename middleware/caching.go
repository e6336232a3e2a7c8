package middleware

import (
	"errors"
	"time"

	"github.com/hupe1980/tinystore"
	"github.com/hupe1980/tinystore/storage"
)

// ErrInvalidThreshold is returned by NewCaching for a non-positive flush
// threshold.
var ErrInvalidThreshold = errors.New("middleware: flush threshold must be positive")

// DefaultFlushThreshold is the number of buffered writes after which the
// caching middleware persists to the wrapped storage on its own.
const DefaultFlushThreshold = 1000

type cachingOptions struct {
	flushThreshold   int
	metricsCollector tinystore.MetricsCollector
}

// CachingOption configures NewCaching.
type CachingOption func(*cachingOptions)

// WithFlushThreshold sets how many writes are buffered before an automatic
// flush. A threshold of 1 persists every write.
func WithFlushThreshold(n int) CachingOption {
	return func(o *cachingOptions) {
		o.flushThreshold = n
	}
}

// WithMetricsCollector configures a collector for flush and delegated-read
// metrics. Pass nil to disable metrics collection.
func WithMetricsCollector(mc tinystore.MetricsCollector) CachingOption {
	return func(o *cachingOptions) {
		if mc == nil {
			mc = tinystore.NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// Caching buffers writes to the wrapped storage and serves reads from the
// last known snapshot.
//
// Writes are visible through Read immediately but reach the wrapped storage
// only when the buffered write count hits the flush threshold, on an
// explicit Flush, or on Close. Unflushed writes are lost if the process
// dies; callers needing durability flush themselves.
//
// If the wrapped storage fails to persist, the error propagates unchanged
// and the buffered snapshot and dirty count stay intact, so Flush can be
// retried.
type Caching[T any] struct {
	inner     storage.Storage[T]
	snapshot  T
	has       bool
	dirty     int
	threshold int
	metrics   tinystore.MetricsCollector
}

// NewCaching wraps inner with a write buffer. The flush threshold defaults
// to DefaultFlushThreshold; non-positive thresholds fail fast with
// ErrInvalidThreshold.
func NewCaching[T any](inner storage.Storage[T], optFns ...CachingOption) (*Caching[T], error) {
	opts := cachingOptions{
		flushThreshold:   DefaultFlushThreshold,
		metricsCollector: tinystore.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.flushThreshold <= 0 {
		return nil, ErrInvalidThreshold
	}

	return &Caching[T]{
		inner:     inner,
		threshold: opts.flushThreshold,
		metrics:   opts.metricsCollector,
	}, nil
}

// Read returns the buffered snapshot if one exists, and otherwise delegates
// to the wrapped storage, caching what it finds.
func (c *Caching[T]) Read() (T, bool, error) {
	if c.has {
		return c.snapshot, true, nil
	}

	start := time.Now()
	data, ok, err := c.inner.Read()
	c.metrics.RecordStorageRead(time.Since(start), err)
	if err != nil {
		var zero T
		return zero, false, err
	}
	if ok {
		c.snapshot = data
		c.has = true
	}
	return data, ok, nil
}

// Write replaces the buffered snapshot. When the buffered write count
// reaches the flush threshold, the snapshot is persisted immediately.
func (c *Caching[T]) Write(data T) error {
	c.snapshot = data
	c.has = true
	c.dirty++

	if c.dirty >= c.threshold {
		return c.Flush()
	}
	return nil
}

// Flush persists the buffered snapshot regardless of the threshold and
// resets the dirty count. Without pending writes it is a no-op.
func (c *Caching[T]) Flush() error {
	if c.dirty == 0 {
		return nil
	}

	start := time.Now()
	err := c.inner.Write(c.snapshot)
	c.metrics.RecordFlush(time.Since(start), err)
	if err != nil {
		return err
	}
	c.dirty = 0
	return nil
}

// Close flushes pending writes and closes the wrapped storage.
func (c *Caching[T]) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	return c.inner.Close()
}

// Pending returns the number of writes buffered since the last flush.
func (c *Caching[T]) Pending() int { return c.dirty }

var _ storage.Storage[any] = (*Caching[any])(nil)
