package query

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/tinystore/internal/hashing"
)

type segmentKind uint8

const (
	segField segmentKind = iota
	segIndex
	segMap
)

// segment is one accessor token of a field path. Paths are explicit token
// sequences resolved by traversal, so they can be inspected and hashed.
type segment struct {
	kind  segmentKind
	field string
	index int
	fn    MapFunc
	id    string // stable identity for segMap; empty means non-cacheable
}

// MapFunc derives a value from the one the path resolved so far. ok=false
// aborts traversal, which makes the predicate evaluate to false.
type MapFunc func(value any) (derived any, ok bool)

// Path is an ordered sequence of accessors into a document, built fluently:
//
//	query.Field("address").Field("city").Eq("Berlin")
//	query.Field("tags").Index(0).Eq("featured")
//
// A Path is immutable; every builder method returns a new Path. The zero
// value is the empty path, which resolves to the document itself.
type Path struct {
	segments []segment
	unstable bool // true once a segment without a stable identity is added
}

// Field starts a path at a top-level document field.
func Field(name string) Path {
	return Path{}.Field(name)
}

// Field extends the path with a nested field accessor.
func (p Path) Field(name string) Path {
	return p.extend(segment{kind: segField, field: name})
}

// Index extends the path with a list index accessor. Negative indices count
// from the end, -1 being the last element.
func (p Path) Index(i int) Path {
	return p.extend(segment{kind: segIndex, index: i})
}

// Map extends the path with a derived-value accessor. The id is the
// accessor's stable identity for structural hashing; passing an empty id
// makes every predicate built from this path non-cacheable.
func (p Path) Map(id string, fn MapFunc) Path {
	next := p.extend(segment{kind: segMap, fn: fn, id: id})
	if id == "" {
		next.unstable = true
	}
	return next
}

func (p Path) extend(s segment) Path {
	segments := make([]segment, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	return Path{segments: append(segments, s), unstable: p.unstable}
}

// String renders the path in accessor notation, e.g. "address.city[0]".
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p.segments {
		switch s.kind {
		case segField:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.field)
		case segIndex:
			fmt.Fprintf(&b, "[%d]", s.index)
		case segMap:
			if i > 0 {
				b.WriteByte('.')
			}
			id := s.id
			if id == "" {
				id = "?"
			}
			fmt.Fprintf(&b, "map(%s)", id)
		}
	}
	return b.String()
}

// getter lets non-map document representations (e.g. frozen.Dict) resolve
// field accessors.
type getter interface {
	Get(key string) (any, bool)
}

// resolve traverses the path from root. ok=false means a segment could not
// be resolved (missing field, non-container value, out-of-range index);
// predicates treat that as "does not match".
func (p Path) resolve(root any) (any, bool) {
	cur := root
	for _, s := range p.segments {
		switch s.kind {
		case segField:
			switch c := cur.(type) {
			case map[string]any:
				v, ok := c[s.field]
				if !ok {
					return nil, false
				}
				cur = v
			case getter:
				v, ok := c.Get(s.field)
				if !ok {
					return nil, false
				}
				cur = v
			default:
				return nil, false
			}
		case segIndex:
			seq, ok := cur.([]any)
			if !ok {
				return nil, false
			}
			i := s.index
			if i < 0 {
				i += len(seq)
			}
			if i < 0 || i >= len(seq) {
				return nil, false
			}
			cur = seq[i]
		case segMap:
			v, ok := s.fn(cur)
			if !ok {
				return nil, false
			}
			cur = v
		}
	}
	return cur, true
}

// hash64 folds the path tokens into a digest-friendly hash. Map segments
// contribute their declared identity.
func (p Path) hash64() uint64 {
	d := xxhash.New()
	for _, s := range p.segments {
		switch s.kind {
		case segField:
			hashing.WriteValue(d, "f:"+s.field)
		case segIndex:
			hashing.WriteValue(d, s.index)
		case segMap:
			hashing.WriteValue(d, "m:"+s.id)
		}
	}
	return d.Sum64()
}
