package middleware

import (
	"time"

	"github.com/hupe1980/tinystore"
	"github.com/hupe1980/tinystore/storage"
)

// Logging logs every storage operation with its duration and outcome, then
// delegates unchanged. Stack it outside Caching to observe actual persists,
// or inside to observe every table-level operation.
type Logging[T any] struct {
	inner  storage.Storage[T]
	logger *tinystore.Logger
}

// NewLogging wraps inner with operation logging. If logger is nil, logging
// is disabled.
func NewLogging[T any](inner storage.Storage[T], logger *tinystore.Logger) *Logging[T] {
	if logger == nil {
		logger = tinystore.NoopLogger()
	}
	return &Logging[T]{inner: inner, logger: logger}
}

// Read delegates to the wrapped storage and logs the outcome.
func (l *Logging[T]) Read() (T, bool, error) {
	start := time.Now()
	data, ok, err := l.inner.Read()
	l.log("read", start, err, "empty", !ok)
	return data, ok, err
}

// Write delegates to the wrapped storage and logs the outcome.
func (l *Logging[T]) Write(data T) error {
	start := time.Now()
	err := l.inner.Write(data)
	l.log("write", start, err)
	return err
}

// Close delegates to the wrapped storage and logs the outcome.
func (l *Logging[T]) Close() error {
	start := time.Now()
	err := l.inner.Close()
	l.log("close", start, err)
	return err
}

func (l *Logging[T]) log(op string, start time.Time, err error, attrs ...any) {
	attrs = append([]any{"op", op, "duration", time.Since(start)}, attrs...)
	if err != nil {
		l.logger.Error("storage operation failed", append(attrs, "error", err)...)
		return
	}
	l.logger.Debug("storage operation", attrs...)
}

var _ storage.Storage[any] = (*Logging[any])(nil)
