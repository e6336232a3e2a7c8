package frozen

import (
	"errors"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/tinystore/internal/docval"
	"github.com/hupe1980/tinystore/internal/hashing"
)

// ErrImmutable is returned by every mutating method on a frozen Dict.
var ErrImmutable = errors.New("frozen: dict is immutable")

// Dict is an immutable, hashable view of a document.
//
// A Dict gives a document a stable identity: two frozen views built from
// equal mappings hash identically regardless of insertion order, which makes
// a Dict safe to use as a cache key or query operand. The zero value is an
// empty Dict.
type Dict struct {
	m    map[string]any
	hash uint64
}

// Freeze produces an immutable view of m. The input is deep-copied, so
// mutating m afterwards does not affect the frozen view.
func Freeze(m map[string]any) Dict {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = docval.Clone(v)
	}
	return Dict{m: cp, hash: hashDict(cp)}
}

// Get returns the value stored under key.
func (d Dict) Get(key string) (any, bool) {
	v, ok := d.m[key]
	return v, ok
}

// Len returns the number of entries.
func (d Dict) Len() int { return len(d.m) }

// Keys returns the keys in sorted order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d.m))
	for k := range d.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for each entry until fn returns false. Iteration order is
// unspecified.
func (d Dict) Range(fn func(key string, value any) bool) {
	for k, v := range d.m {
		if !fn(k, v) {
			return
		}
	}
}

// Hash64 returns the structural hash of the frozen document. It satisfies
// hashing.Hashable so a Dict can itself appear as a hashed operand.
func (d Dict) Hash64() uint64 { return d.hash }

// Equal reports whether both views contain the same key set with equal
// values for every key.
func (d Dict) Equal(other Dict) bool {
	if len(d.m) != len(other.m) {
		return false
	}
	for k, v := range d.m {
		ov, ok := other.m[k]
		if !ok || !docval.Equal(v, ov) {
			return false
		}
	}
	return true
}

// Thaw returns a mutable deep copy of the document. The Dict itself is
// unaffected by changes to the returned map.
func (d Dict) Thaw() map[string]any {
	cp := make(map[string]any, len(d.m))
	for k, v := range d.m {
		cp[k] = docval.Clone(v)
	}
	return cp
}

// Set always fails with ErrImmutable.
func (d Dict) Set(key string, value any) error { return ErrImmutable }

// Delete always fails with ErrImmutable.
func (d Dict) Delete(key string) error { return ErrImmutable }

// Update always fails with ErrImmutable.
func (d Dict) Update(m map[string]any) error { return ErrImmutable }

func hashDict(m map[string]any) uint64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := xxhash.New()
	for _, k := range keys {
		hashing.WriteValue(d, k)
		hashing.WriteValue(d, m[k])
	}
	return d.Sum64()
}

var _ hashing.Hashable = Dict{}
