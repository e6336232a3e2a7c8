package docval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil both", nil, nil, true},
		{"nil one", nil, 0, false},
		{"int float", 2, 2.0, true},
		{"int int64", 2, int64(2), true},
		{"number mismatch", 2, 3.0, false},
		{"number vs string", 1, "1", false},
		{"string", "a", "a", true},
		{"bool", true, true, true},
		{"bool vs number", true, 1, false},
		{"slice", []any{1, "a"}, []any{1.0, "a"}, true},
		{"slice order", []any{1, 2}, []any{2, 1}, false},
		{"slice length", []any{1}, []any{1, 1}, false},
		{"map", map[string]any{"a": 1}, map[string]any{"a": 1.0}, true},
		{"map extra key", map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2}, false},
		{"nested", map[string]any{"a": []any{map[string]any{"x": 1}}}, map[string]any{"a": []any{map[string]any{"x": 1.0}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "equality is symmetric")
		})
	}
}

func TestCompare(t *testing.T) {
	cmp, ok := Compare(1, 2)
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = Compare(2.5, 2)
	assert.True(t, ok)
	assert.Equal(t, 1, cmp)

	cmp, ok = Compare(2, 2.0)
	assert.True(t, ok)
	assert.Equal(t, 0, cmp)

	cmp, ok = Compare("a", "b")
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)

	// Non-orderable pairs report !ok rather than failing.
	_, ok = Compare("a", 1)
	assert.False(t, ok)
	_, ok = Compare(1, "a")
	assert.False(t, ok)
	_, ok = Compare(nil, 1)
	assert.False(t, ok)
	_, ok = Compare([]any{1}, []any{2})
	assert.False(t, ok)
	_, ok = Compare(true, false)
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	src := map[string]any{"a": 1, "list": []any{map[string]any{"x": 1}}}
	cp := Clone(src).(map[string]any)

	cp["a"] = 2
	cp["list"].([]any)[0].(map[string]any)["x"] = 2

	assert.Equal(t, 1, src["a"])
	assert.Equal(t, 1, src["list"].([]any)[0].(map[string]any)["x"])
}
