package middleware

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tinystore/storage"
)

func TestCompression_UnknownAlgorithm(t *testing.T) {
	_, err := NewCompression(storage.NewMemory[[]byte](), WithAlgorithm("snappy"))
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestCompression_RoundTrip(t *testing.T) {
	for _, algo := range []Algorithm{Zstd, LZ4} {
		t.Run(string(algo), func(t *testing.T) {
			mem := storage.NewMemory[[]byte]()
			c, err := NewCompression(mem, WithAlgorithm(algo))
			require.NoError(t, err)

			_, ok, err := c.Read()
			require.NoError(t, err)
			assert.False(t, ok, "empty marker passes through")

			payload := bytes.Repeat([]byte(`{"users":{"1":{"name":"john"}}}`), 64)
			require.NoError(t, c.Write(payload))

			// The persisted frame is actually compressed.
			frame, ok, err := mem.Read()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Less(t, len(frame), len(payload))

			got, ok, err := c.Read()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, payload, got)
		})
	}
}

// Frames are self-describing: a reader configured for one algorithm decodes
// frames written under another.
func TestCompression_CrossAlgorithmRead(t *testing.T) {
	mem := storage.NewMemory[[]byte]()

	w, err := NewCompression(mem, WithAlgorithm(LZ4))
	require.NoError(t, err)
	require.NoError(t, w.Write([]byte("snapshot")))

	r, err := NewCompression(mem, WithAlgorithm(Zstd))
	require.NoError(t, err)
	got, ok, err := r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("snapshot"), got)
}

func TestCompression_CorruptFrame(t *testing.T) {
	mem := storage.NewMemory[[]byte]()
	require.NoError(t, mem.Write([]byte{0xff, 1, 2, 3}))

	c, err := NewCompression(mem)
	require.NoError(t, err)
	_, _, err = c.Read()
	assert.ErrorContains(t, err, "frame tag")

	require.NoError(t, mem.Write(nil))
	_, _, err = c.Read()
	assert.Error(t, err)
}

func TestCompression_CloseClosesInner(t *testing.T) {
	mem := storage.NewMemory[[]byte]()
	c, err := NewCompression(mem)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	assert.ErrorIs(t, mem.Close(), storage.ErrClosed)
}
