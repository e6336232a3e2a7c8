package storage

import "errors"

// ErrClosed is returned by Memory once Close has been called.
var ErrClosed = errors.New("storage: closed")

// Storage is the capability a table reads and writes its state through.
//
// Read returns ok=false with a nil error when nothing has been persisted
// yet; that is the defined empty marker, not a failure. Write persists a
// full snapshot and may fail with an I/O error. Middlewares implement the
// same interface, so any Storage can transparently be wrapped.
//
// T is the snapshot representation: a decoded value for table-level stores,
// []byte for byte-oriented stores (see Bytes).
type Storage[T any] interface {
	Read() (data T, ok bool, err error)
	Write(data T) error
	Close() error
}

// Bytes is the byte-oriented storage capability used below codecs and
// compression.
type Bytes = Storage[[]byte]

// Memory is an in-memory Storage. It is the composition root for tests and
// for fully transient tables; concrete durable adapters (files, object
// stores) live outside this core.
type Memory[T any] struct {
	data   T
	has    bool
	closed bool
}

// NewMemory creates an empty in-memory storage.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{}
}

// Read returns the last written snapshot, or ok=false before the first
// write.
func (m *Memory[T]) Read() (T, bool, error) {
	var zero T
	if m.closed {
		return zero, false, ErrClosed
	}
	if !m.has {
		return zero, false, nil
	}
	return m.data, true, nil
}

// Write replaces the stored snapshot.
func (m *Memory[T]) Write(data T) error {
	if m.closed {
		return ErrClosed
	}
	m.data = data
	m.has = true
	return nil
}

// Close marks the storage closed; subsequent operations fail with
// ErrClosed. Closing twice is an error.
func (m *Memory[T]) Close() error {
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	return nil
}
