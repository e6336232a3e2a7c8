// Package testutil provides seeded random document generation for tests
// and benchmarks.
package testutil
