package query

import (
	"fmt"
	"regexp"

	"github.com/hupe1980/tinystore/internal/docval"
	"github.com/hupe1980/tinystore/internal/hashing"
)

// Document is one record of a table: a mapping from field name to value.
type Document = map[string]any

// Kind tags the variant of a query node.
type Kind uint8

const (
	KindNoop Kind = iota
	KindField
	KindAnd
	KindOr
	KindNot
	KindQuantifier
	KindFragment
	KindCustom
)

// Operator tags used in structural hashing. Every terminal test mixes its
// own tag so e.g. Gt(5) and Ge(5) on the same path hash apart.
const (
	opNoop uint64 = iota + 1
	opExists
	opEq
	opNe
	opGt
	opGe
	opLt
	opLe
	opMatches
	opSearch
	opOneOf
	opAny
	opAll
	opAnyOf
	opAllOf
	opFragment
	opWhere
	opAnd
	opOr
	opNot
)

// Query is an immutable, composable boolean predicate over a document.
//
// Queries are built from a Path plus a terminal test, and combined with And,
// Or and Not. A Query carries a canonical structural hash; two cacheable
// queries with equal hashes are structurally equal and may share a cache
// slot. Construction never mutates operands.
type Query struct {
	kind      Kind
	test      func(value any) bool
	hash      uint64
	cacheable bool
	str       string
}

// Test evaluates the predicate against a document. A missing or
// non-traversable path segment makes the predicate false; it never panics
// on malformed documents.
func (q Query) Test(doc Document) bool {
	if q.test == nil {
		return false
	}
	return q.test(doc)
}

// Kind returns the variant tag of the query node.
func (q Query) Kind() Kind { return q.kind }

// Hash returns the canonical structural hash. For non-cacheable queries the
// value is still defined but carries no equality meaning.
func (q Query) Hash() uint64 { return q.hash }

// Cacheable reports whether the query's hash is a safe memoization key.
// A query is non-cacheable when any constituent accessor or test lacks a
// declared stable identity.
func (q Query) Cacheable() bool { return q.cacheable }

// Equal reports structural equality. Two queries are equal iff both are
// cacheable and their hashes match; a non-cacheable query equals nothing,
// itself included.
func (q Query) Equal(other Query) bool {
	return q.cacheable && other.cacheable && q.hash == other.hash
}

// String renders the query for logs and test failures.
func (q Query) String() string { return q.str }

// Noop returns the always-true predicate, the identity element for And and
// Or combination.
func Noop() Query {
	return Query{
		kind:      KindNoop,
		test:      func(any) bool { return true },
		hash:      hashing.Combine(opNoop),
		cacheable: true,
		str:       "noop()",
	}
}

// --- terminal tests -------------------------------------------------------

// Exists matches documents where the path resolves to any value.
func (p Path) Exists() Query {
	return p.terminal(KindField, opExists, "exists", nil, func(any) bool { return true })
}

// Eq matches when the resolved value deeply equals value. Numeric types
// compare by value: int 2 equals float64 2.
func (p Path) Eq(value any) Query {
	return p.terminal(KindField, opEq, "==", value, func(v any) bool {
		return docval.Equal(v, value)
	})
}

// Ne matches when the path resolves and the value differs from value. A
// document without the field does not match.
func (p Path) Ne(value any) Query {
	return p.terminal(KindField, opNe, "!=", value, func(v any) bool {
		return !docval.Equal(v, value)
	})
}

// Gt matches when the resolved value orders strictly greater than value.
// Values that are not mutually orderable never match.
func (p Path) Gt(value any) Query {
	return p.terminal(KindField, opGt, ">", value, func(v any) bool {
		c, ok := docval.Compare(v, value)
		return ok && c > 0
	})
}

// Ge matches when the resolved value orders greater than or equal to value.
func (p Path) Ge(value any) Query {
	return p.terminal(KindField, opGe, ">=", value, func(v any) bool {
		c, ok := docval.Compare(v, value)
		return ok && c >= 0
	})
}

// Lt matches when the resolved value orders strictly less than value.
func (p Path) Lt(value any) Query {
	return p.terminal(KindField, opLt, "<", value, func(v any) bool {
		c, ok := docval.Compare(v, value)
		return ok && c < 0
	})
}

// Le matches when the resolved value orders less than or equal to value.
func (p Path) Le(value any) Query {
	return p.terminal(KindField, opLe, "<=", value, func(v any) bool {
		c, ok := docval.Compare(v, value)
		return ok && c <= 0
	})
}

// Matches matches string values whose prefix matches the regular
// expression, mirroring anchored-at-start matching. An invalid pattern
// never matches.
func (p Path) Matches(pattern string) Query {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	return p.terminal(KindField, opMatches, "matches", pattern, func(v any) bool {
		s, ok := v.(string)
		return ok && err == nil && re.MatchString(s)
	})
}

// Search matches string values containing a match of the regular expression
// anywhere. An invalid pattern never matches.
func (p Path) Search(pattern string) Query {
	re, err := regexp.Compile(pattern)
	return p.terminal(KindField, opSearch, "search", pattern, func(v any) bool {
		s, ok := v.(string)
		return ok && err == nil && re.MatchString(s)
	})
}

// OneOf matches when the resolved value equals one of the given values.
func (p Path) OneOf(values ...any) Query {
	return p.terminal(KindField, opOneOf, "one_of", values, func(v any) bool {
		for _, want := range values {
			if docval.Equal(v, want) {
				return true
			}
		}
		return false
	})
}

// Any matches when the path resolves to a sequence with at least one
// element satisfying cond. Elements that are not documents are handed to
// cond's test directly.
func (p Path) Any(cond Query) Query {
	q := p.terminal(KindQuantifier, opAny, "any", nil, func(v any) bool {
		seq, ok := v.([]any)
		if !ok {
			return false
		}
		for _, el := range seq {
			if cond.testValue(el) {
				return true
			}
		}
		return false
	})
	q.hash = hashing.Combine(q.hash, cond.hash)
	q.cacheable = q.cacheable && cond.cacheable
	q.str = p.String() + ".any(" + cond.str + ")"
	return q
}

// All matches when the path resolves to a sequence whose every element
// satisfies cond. An empty sequence matches.
func (p Path) All(cond Query) Query {
	q := p.terminal(KindQuantifier, opAll, "all", nil, func(v any) bool {
		seq, ok := v.([]any)
		if !ok {
			return false
		}
		for _, el := range seq {
			if !cond.testValue(el) {
				return false
			}
		}
		return true
	})
	q.hash = hashing.Combine(q.hash, cond.hash)
	q.cacheable = q.cacheable && cond.cacheable
	q.str = p.String() + ".all(" + cond.str + ")"
	return q
}

// AnyOf matches when the resolved sequence shares at least one element with
// values.
func (p Path) AnyOf(values ...any) Query {
	return p.terminal(KindQuantifier, opAnyOf, "any_of", values, func(v any) bool {
		seq, ok := v.([]any)
		if !ok {
			return false
		}
		for _, el := range seq {
			for _, want := range values {
				if docval.Equal(el, want) {
					return true
				}
			}
		}
		return false
	})
}

// AllOf matches when the resolved sequence contains every one of values.
func (p Path) AllOf(values ...any) Query {
	return p.terminal(KindQuantifier, opAllOf, "all_of", values, func(v any) bool {
		seq, ok := v.([]any)
		if !ok {
			return false
		}
		for _, want := range values {
			found := false
			for _, el := range seq {
				if docval.Equal(el, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	})
}

// Fragment matches when the resolved value is a mapping containing every
// key of fragment with a deeply equal value. Extra keys are ignored.
func (p Path) Fragment(fragment map[string]any) Query {
	q := p.terminal(KindFragment, opFragment, "fragment", fragment, func(v any) bool {
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		for k, want := range fragment {
			got, ok := m[k]
			if !ok || !docval.Equal(got, want) {
				return false
			}
		}
		return true
	})
	return q
}

// Fragment matches documents containing every key of fragment with a deeply
// equal value at top level.
func Fragment(fragment map[string]any) Query {
	return Path{}.Fragment(fragment)
}

// Where applies an arbitrary test to the resolved value. The id is the
// test's stable identity for structural hashing; an empty id yields a
// non-cacheable query.
func (p Path) Where(id string, fn func(value any) bool) Query {
	q := p.terminal(KindCustom, opWhere, "where", id, func(v any) bool {
		return fn(v)
	})
	if id == "" {
		q.cacheable = false
	}
	q.str = p.String() + ".where(" + orUnknown(id) + ")"
	return q
}

// terminal builds a path-rooted query node: resolve the path, then apply
// the test. Failed traversal is "does not match".
func (p Path) terminal(kind Kind, op uint64, name string, operand any, test func(any) bool) Query {
	str := p.String() + " " + name
	if operand != nil {
		str += " " + fmt.Sprint(operand)
	}
	return Query{
		kind: kind,
		test: func(root any) bool {
			v, ok := p.resolve(root)
			if !ok {
				return false
			}
			return test(v)
		},
		hash:      hashing.Combine(op, p.hash64(), hashing.Value(operand)),
		cacheable: !p.unstable,
		str:       str,
	}
}

// testValue runs the predicate against an arbitrary value, used by
// quantifiers whose elements need not be documents.
func (q Query) testValue(v any) bool {
	if q.test == nil {
		return false
	}
	return q.test(v)
}

// --- combinators ----------------------------------------------------------

// And combines queries with short-circuit conjunction. The hash is
// order-insensitive: And(p, q) and And(q, p) hash identically. With no
// operands And degenerates to Noop.
func And(qs ...Query) Query {
	if len(qs) == 0 {
		return Noop()
	}
	if len(qs) == 1 {
		return qs[0]
	}
	return combine(KindAnd, opAnd, "and", qs, func(v any) bool {
		for _, q := range qs {
			if !q.testValue(v) {
				return false
			}
		}
		return true
	})
}

// Or combines queries with short-circuit disjunction. The hash is
// order-insensitive. With no operands Or degenerates to Noop.
func Or(qs ...Query) Query {
	if len(qs) == 0 {
		return Noop()
	}
	if len(qs) == 1 {
		return qs[0]
	}
	return combine(KindOr, opOr, "or", qs, func(v any) bool {
		for _, q := range qs {
			if q.testValue(v) {
				return true
			}
		}
		return false
	})
}

// Not negates a query. The hash derives from the operand's hash with a
// distinct tag, so Not(q) never collides with q.
func Not(q Query) Query {
	return Query{
		kind:      KindNot,
		test:      func(v any) bool { return !q.testValue(v) },
		hash:      hashing.Combine(opNot, q.hash),
		cacheable: q.cacheable,
		str:       "not(" + q.str + ")",
	}
}

func combine(kind Kind, op uint64, name string, qs []Query, test func(any) bool) Query {
	hashes := make([]uint64, len(qs))
	cacheable := true
	str := name + "("
	for i, q := range qs {
		hashes[i] = q.hash
		cacheable = cacheable && q.cacheable
		if i > 0 {
			str += ", "
		}
		str += q.str
	}
	return Query{
		kind:      kind,
		test:      test,
		hash:      hashing.Combine(op, hashing.CombineUnordered(hashes...)),
		cacheable: cacheable,
		str:       str + ")",
	}
}

func orUnknown(id string) string {
	if id == "" {
		return "?"
	}
	return id
}
