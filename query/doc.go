// Package query implements a composable predicate algebra over documents.
//
// A predicate is built from a fluent field path plus a terminal test, and
// combined with explicit named combinators:
//
//	adult := query.Field("age").Ge(18)
//	local := query.Field("address").Field("city").Eq("Berlin")
//	q := query.And(adult, query.Not(local))
//
//	q.Test(map[string]any{"age": 25, "address": map[string]any{"city": "Kyoto"}}) // true
//
// # Structural identity
//
// Every query carries a canonical structural hash so results can be
// memoized. And/Or hashing is commutativity-aware (operand hashes are
// combined in sorted order), so And(p, q) and And(q, p) share one cache
// slot. Predicates built from accessors or tests without a declared stable
// identity (Path.Map or Path.Where with an empty id) are non-cacheable:
// they compare unequal to everything, including themselves, and must bypass
// result caching.
//
// Only structural equality is guaranteed. Semantically equivalent but
// structurally different predicates (e.g. Not(Not(p)) vs p) hash apart.
//
// # Evaluation
//
// Test never panics on malformed documents: a missing field, a non-container
// value mid-path or a non-comparable terminal value simply makes the
// predicate false.
package query
