package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_MapOrderIndependence(t *testing.T) {
	a := map[string]any{"x": 1, "y": "two", "z": []any{3}}
	b := map[string]any{"z": []any{3}, "y": "two", "x": 1}

	assert.Equal(t, Value(a), Value(b))
}

func TestValue_NumericCoercion(t *testing.T) {
	assert.Equal(t, Value(2), Value(2.0))
	assert.Equal(t, Value(int64(7)), Value(uint8(7)))
	assert.NotEqual(t, Value(2), Value(3))
}

func TestValue_TypeTagsPreventCollisions(t *testing.T) {
	assert.NotEqual(t, Value(1), Value("1"))
	assert.NotEqual(t, Value(nil), Value(""))
	assert.NotEqual(t, Value(true), Value(1))
	assert.NotEqual(t, Value([]any{"a"}), Value("a"))
	assert.NotEqual(t, Value(map[string]any{"a": 1}), Value([]any{"a", 1}))
}

func TestValue_SliceOrderMatters(t *testing.T) {
	assert.NotEqual(t, Value([]any{1, 2}), Value([]any{2, 1}))
	assert.Equal(t, Value([]any{1, 2}), Value([]any{1.0, 2.0}))
}

func TestValue_Nested(t *testing.T) {
	a := map[string]any{"user": map[string]any{"tags": []any{"a", "b"}, "age": 30}}
	b := map[string]any{"user": map[string]any{"age": 30.0, "tags": []any{"a", "b"}}}
	assert.Equal(t, Value(a), Value(b))
}

type fixedHash uint64

func (f fixedHash) Hash64() uint64 { return uint64(f) }

func TestValue_Hashable(t *testing.T) {
	assert.Equal(t, Value(fixedHash(1)), Value(fixedHash(1)))
	assert.NotEqual(t, Value(fixedHash(1)), Value(fixedHash(2)))
	// A Hashable must not collide with the raw number it reports.
	assert.NotEqual(t, Value(fixedHash(1)), Value(uint64(1)))
}

func TestCombine(t *testing.T) {
	assert.Equal(t, Combine(1, 2), Combine(1, 2))
	assert.NotEqual(t, Combine(1, 2), Combine(2, 1))

	assert.Equal(t, CombineUnordered(1, 2, 3), CombineUnordered(3, 1, 2))
	assert.NotEqual(t, CombineUnordered(1, 2), CombineUnordered(1, 3))
}

func BenchmarkValue_Document(b *testing.B) {
	doc := map[string]any{
		"name":    "user-000001",
		"age":     42,
		"active":  true,
		"tags":    []any{"new", "vip"},
		"address": map[string]any{"city": "Berlin", "zip": "10115"},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Value(doc)
	}
}
