package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tinystore"
)

func newBufferLogger() (*tinystore.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return tinystore.NewLogger(handler), &buf
}

func TestLogging_DelegatesUnchanged(t *testing.T) {
	logger, buf := newBufferLogger()
	spy := &spyStorage[int]{}
	l := NewLogging[int](spy, logger)

	require.NoError(t, l.Write(1))
	v, ok, err := l.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	require.NoError(t, l.Close())

	assert.Equal(t, 1, spy.reads)
	assert.Equal(t, 1, spy.writes)
	assert.Equal(t, 1, spy.closes)

	out := buf.String()
	assert.Contains(t, out, "op=write")
	assert.Contains(t, out, "op=read")
	assert.Contains(t, out, "op=close")
}

func TestLogging_ErrorsSurfaceAndLog(t *testing.T) {
	logger, buf := newBufferLogger()
	ioErr := errors.New("io")
	spy := &spyStorage[int]{writeErr: ioErr}
	l := NewLogging[int](spy, logger)

	require.ErrorIs(t, l.Write(1), ioErr)
	assert.Contains(t, buf.String(), "storage operation failed")
}

func TestLogging_NilLoggerIsSilent(t *testing.T) {
	spy := &spyStorage[int]{}
	l := NewLogging[int](spy, nil)

	require.NoError(t, l.Write(1))
	assert.Equal(t, 1, spy.writes)
}

// Caching wrapped by logging: the log only sees actual persists.
func TestLogging_OutsideCaching(t *testing.T) {
	logger, buf := newBufferLogger()
	spy := &spyStorage[int]{}
	logged := NewLogging[int](spy, logger)
	cached, err := NewCaching[int](logged, WithFlushThreshold(10))
	require.NoError(t, err)

	require.NoError(t, cached.Write(1))
	require.NoError(t, cached.Write(2))
	assert.NotContains(t, buf.String(), "op=write")

	require.NoError(t, cached.Flush())
	assert.Contains(t, buf.String(), "op=write")
}
