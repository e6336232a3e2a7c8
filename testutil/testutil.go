package testutil

import (
	"fmt"
	"math/rand"
)

// RNG encapsulates a seeded random number generator so fixtures are
// reproducible across test runs.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

var tags = []any{"new", "vip", "trial", "staff", "beta"}

// Document generates a random document in the shape used throughout the
// test suites: flat scalar fields plus a nested address and a tag list.
func (r *RNG) Document() map[string]any {
	n := r.rand.Intn(1 << 20)
	doc := map[string]any{
		"name":   fmt.Sprintf("user-%06d", n),
		"age":    r.rand.Intn(90) + 10,
		"active": r.rand.Intn(2) == 0,
		"address": map[string]any{
			"city": []string{"Berlin", "Kyoto", "Lagos", "Lima"}[r.rand.Intn(4)],
			"zip":  fmt.Sprintf("%05d", r.rand.Intn(100000)),
		},
	}
	doc["tags"] = tags[:r.rand.Intn(len(tags))+1]
	return doc
}

// Documents generates n random documents.
func (r *RNG) Documents(n int) []map[string]any {
	docs := make([]map[string]any, n)
	for i := range docs {
		docs[i] = r.Document()
	}
	return docs
}
