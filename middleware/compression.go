package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/tinystore/storage"
)

// Algorithm selects the compression scheme for newly written frames.
type Algorithm string

const (
	// Zstd is the default algorithm: best ratio at comparable speed.
	Zstd Algorithm = "zstd"
	// LZ4 trades ratio for very cheap decompression.
	LZ4 Algorithm = "lz4"
)

// ErrUnknownAlgorithm is returned by NewCompression for an unsupported
// algorithm.
var ErrUnknownAlgorithm = errors.New("middleware: unknown compression algorithm")

// Frame tags. Persisted frames are self-describing, so reads decode frames
// written under a different configured algorithm.
const (
	frameZstd byte = 0x01
	frameLZ4  byte = 0x02
)

type compressionOptions struct {
	algorithm Algorithm
	zstdLevel zstd.EncoderLevel
}

// CompressionOption configures NewCompression.
type CompressionOption func(*compressionOptions)

// WithAlgorithm selects the compression algorithm for writes.
func WithAlgorithm(a Algorithm) CompressionOption {
	return func(o *compressionOptions) {
		o.algorithm = a
	}
}

// WithZstdLevel sets the zstd encoder level. Ignored for other algorithms.
func WithZstdLevel(level zstd.EncoderLevel) CompressionOption {
	return func(o *compressionOptions) {
		o.zstdLevel = level
	}
}

// Compression compresses snapshots before the wrapped byte-oriented storage
// and decompresses on the way back. Frames carry a one-byte algorithm tag.
type Compression struct {
	inner     storage.Bytes
	algorithm Algorithm
	enc       *zstd.Encoder
	dec       *zstd.Decoder
}

// NewCompression wraps inner with transparent compression. The algorithm
// defaults to Zstd.
func NewCompression(inner storage.Bytes, optFns ...CompressionOption) (*Compression, error) {
	opts := compressionOptions{
		algorithm: Zstd,
		zstdLevel: zstd.SpeedDefault,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	switch opts.algorithm {
	case Zstd, LZ4:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, opts.algorithm)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(opts.zstdLevel))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}

	return &Compression{
		inner:     inner,
		algorithm: opts.algorithm,
		enc:       enc,
		dec:       dec,
	}, nil
}

// Read fetches a frame from the wrapped storage and decompresses it
// according to its tag.
func (c *Compression) Read() ([]byte, bool, error) {
	frame, ok, err := c.inner.Read()
	if err != nil || !ok {
		return nil, ok, err
	}
	if len(frame) == 0 {
		return nil, false, errors.New("middleware: empty compression frame")
	}

	tag, payload := frame[0], frame[1:]
	switch tag {
	case frameZstd:
		data, err := c.dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, false, fmt.Errorf("middleware: zstd decode: %w", err)
		}
		return data, true, nil
	case frameLZ4:
		r := lz4.NewReader(bytes.NewReader(payload))
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, false, fmt.Errorf("middleware: lz4 decode: %w", err)
		}
		return data, true, nil
	default:
		return nil, false, fmt.Errorf("middleware: unknown compression frame tag 0x%02x", tag)
	}
}

// Write compresses data with the configured algorithm and persists the
// tagged frame.
func (c *Compression) Write(data []byte) error {
	var frame []byte
	switch c.algorithm {
	case LZ4:
		var buf bytes.Buffer
		buf.WriteByte(frameLZ4)
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("middleware: lz4 encode: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("middleware: lz4 encode: %w", err)
		}
		frame = buf.Bytes()
	default: // Zstd
		frame = c.enc.EncodeAll(data, []byte{frameZstd})
	}
	return c.inner.Write(frame)
}

// Close releases the codec resources and closes the wrapped storage.
func (c *Compression) Close() error {
	c.enc.Close()
	c.dec.Close()
	return c.inner.Close()
}

var _ storage.Bytes = (*Compression)(nil)
