package hashing

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Type tags keep values of different kinds from colliding: hash("1") must
// differ from hash(1) even though both encode to the same digits.
const (
	tagNil byte = iota
	tagBool
	tagNumber
	tagString
	tagBytes
	tagSlice
	tagMap
	tagHashable
	tagOpaque
)

// Hashable lets a type supply its own structural hash. frozen.Dict
// implements this so frozen documents can appear as operand values.
type Hashable interface {
	Hash64() uint64
}

// Value computes the canonical hash of an arbitrary document value.
//
// The encoding is deterministic: map keys are visited in sorted order and
// all numeric types collapse to their float64 representation, so two values
// that compare equal under document semantics hash identically regardless of
// construction order or concrete Go type.
func Value(v any) uint64 {
	d := xxhash.New()
	WriteValue(d, v)
	return d.Sum64()
}

// WriteValue streams the canonical encoding of v into d. Exported so
// composite hashes (query nodes, frozen documents) can fold several values
// into a single digest.
func WriteValue(d *xxhash.Digest, v any) {
	if v == nil {
		writeByte(d, tagNil)
		return
	}

	if h, ok := v.(Hashable); ok {
		writeByte(d, tagHashable)
		writeUint64(d, h.Hash64())
		return
	}

	switch x := v.(type) {
	case bool:
		writeByte(d, tagBool)
		if x {
			writeByte(d, 1)
		} else {
			writeByte(d, 0)
		}
		return
	case string:
		writeByte(d, tagString)
		writeUint64(d, uint64(len(x)))
		_, _ = d.WriteString(x)
		return
	case []byte:
		writeByte(d, tagBytes)
		writeUint64(d, uint64(len(x)))
		_, _ = d.Write(x)
		return
	}

	if f, ok := asFloat(v); ok {
		writeByte(d, tagNumber)
		writeUint64(d, math.Float64bits(f))
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		writeByte(d, tagSlice)
		writeUint64(d, uint64(rv.Len()))
		for i := 0; i < rv.Len(); i++ {
			WriteValue(d, rv.Index(i).Interface())
		}
	case reflect.Map:
		writeByte(d, tagMap)
		writeUint64(d, uint64(rv.Len()))
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := fmt.Sprint(k.Interface())
			keys = append(keys, ks)
			byKey[ks] = rv.MapIndex(k).Interface()
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeUint64(d, uint64(len(k)))
			_, _ = d.WriteString(k)
			WriteValue(d, byKey[k])
		}
	default:
		// Structs and anything else: fall back to the printed form. Not
		// reachable from JSON-shaped documents.
		writeByte(d, tagOpaque)
		_, _ = d.WriteString(fmt.Sprintf("%T:%v", v, v))
	}
}

// Combine folds a set of hashes into one, order-sensitively.
func Combine(hashes ...uint64) uint64 {
	d := xxhash.New()
	for _, h := range hashes {
		writeUint64(d, h)
	}
	return d.Sum64()
}

// CombineUnordered folds a set of hashes into one, independent of their
// order. Used for commutative query combinators.
func CombineUnordered(hashes ...uint64) uint64 {
	sorted := make([]uint64, len(hashes))
	copy(sorted, hashes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return Combine(sorted...)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func writeByte(d *xxhash.Digest, b byte) {
	_, _ = d.Write([]byte{b})
}

func writeUint64(d *xxhash.Digest, u uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], u)
	_, _ = d.Write(buf[:])
}
