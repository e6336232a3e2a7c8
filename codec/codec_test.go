package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAreWireCompatible(t *testing.T) {
	snapshot := map[string]any{
		"users": map[string]any{"1": map[string]any{"name": "john", "age": 25.0}},
	}

	b := MustMarshal(JSON{}, snapshot)

	var got map[string]any
	require.NoError(t, GoJSON{}.Unmarshal(b, &got))
	assert.Equal(t, snapshot, got)

	b2, err := GoJSON{}.Marshal(snapshot)
	require.NoError(t, err)
	var got2 map[string]any
	require.NoError(t, JSON{}.Unmarshal(b2, &got2))
	assert.Equal(t, snapshot, got2)
}
