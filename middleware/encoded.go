package middleware

import (
	"fmt"

	"github.com/hupe1980/tinystore/codec"
	"github.com/hupe1980/tinystore/storage"
)

// Encoded bridges a typed storage capability onto a byte-oriented chain: it
// marshals snapshots with a codec before handing them down and unmarshals
// on the way back up. Combined with Compression this yields e.g.
//
//	bytes  := storage.NewMemory[[]byte]()
//	packed, _ := middleware.NewCompression(bytes)
//	typed  := middleware.NewEncoded[map[string]any](packed)
//	cached, _ := middleware.NewCaching[map[string]any](typed)
type Encoded[T any] struct {
	inner storage.Bytes
	codec codec.Codec
}

type encodedOptions struct {
	codec codec.Codec
}

// EncodedOption configures NewEncoded.
type EncodedOption func(*encodedOptions)

// WithCodec selects the codec. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) EncodedOption {
	return func(o *encodedOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// NewEncoded wraps a byte-oriented storage with codec translation.
func NewEncoded[T any](inner storage.Bytes, optFns ...EncodedOption) *Encoded[T] {
	opts := encodedOptions{codec: codec.Default}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Encoded[T]{inner: inner, codec: opts.codec}
}

// Read fetches and decodes the persisted snapshot.
func (e *Encoded[T]) Read() (T, bool, error) {
	var zero T
	b, ok, err := e.inner.Read()
	if err != nil || !ok {
		return zero, ok, err
	}
	var data T
	if err := e.codec.Unmarshal(b, &data); err != nil {
		return zero, false, fmt.Errorf("middleware: %s decode: %w", e.codec.Name(), err)
	}
	return data, true, nil
}

// Write encodes the snapshot and persists the bytes.
func (e *Encoded[T]) Write(data T) error {
	b, err := e.codec.Marshal(data)
	if err != nil {
		return fmt.Errorf("middleware: %s encode: %w", e.codec.Name(), err)
	}
	return e.inner.Write(b)
}

// Close closes the wrapped storage.
func (e *Encoded[T]) Close() error {
	return e.inner.Close()
}

var _ storage.Storage[any] = (*Encoded[any])(nil)
