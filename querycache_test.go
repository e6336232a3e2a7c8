package tinystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tinystore/cache"
	"github.com/hupe1980/tinystore/query"
	"github.com/hupe1980/tinystore/testutil"
)

func TestQueryCache_InvalidCapacity(t *testing.T) {
	_, err := NewQueryCache[[]string](WithCapacity(-1))
	require.ErrorIs(t, err, cache.ErrInvalidCapacity)
}

func TestQueryCache_HitAndMiss(t *testing.T) {
	qc, err := NewQueryCache[[]string]()
	require.NoError(t, err)

	adult := query.Field("age").Ge(18)

	_, ok := qc.Get(adult)
	assert.False(t, ok)

	qc.Set(adult, []string{"1", "3"})
	got, ok := qc.Get(adult)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "3"}, got)

	// A structurally identical query hits the same slot.
	got, ok = qc.Get(query.Field("age").Ge(18))
	require.True(t, ok)
	assert.Equal(t, []string{"1", "3"}, got)

	// Commutated conjunctions share one slot too.
	active := query.Field("active").Eq(true)
	qc.Set(query.And(adult, active), []string{"3"})
	got, ok = qc.Get(query.And(active, adult))
	require.True(t, ok)
	assert.Equal(t, []string{"3"}, got)
}

func TestQueryCache_InvalidateBumpsVersion(t *testing.T) {
	qc, err := NewQueryCache[[]string]()
	require.NoError(t, err)

	adult := query.Field("age").Ge(18)
	qc.Set(adult, []string{"1"})

	v := qc.Version()
	qc.Invalidate()
	assert.Equal(t, v+1, qc.Version(), "version increases monotonically")

	// Entries from the previous version are unreachable.
	_, ok := qc.Get(adult)
	assert.False(t, ok)

	// The same query memoizes independently at the new version.
	qc.Set(adult, []string{"1", "2"})
	got, ok := qc.Get(adult)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, got)
}

func TestQueryCache_NonCacheableBypass(t *testing.T) {
	qc, err := NewQueryCache[[]string]()
	require.NoError(t, err)

	anon := query.Field("age").Where("", func(v any) bool { return true })
	require.False(t, anon.Cacheable())

	qc.Set(anon, []string{"1"})
	assert.Equal(t, 0, qc.Len(), "non-cacheable results are never stored")
	_, ok := qc.Get(anon)
	assert.False(t, ok)
}

func TestQueryCache_ZeroCapacity(t *testing.T) {
	qc, err := NewQueryCache[[]string](WithCapacity(0))
	require.NoError(t, err)

	adult := query.Field("age").Ge(18)
	qc.Set(adult, []string{"1"})
	_, ok := qc.Get(adult)
	assert.False(t, ok)
}

func TestQueryCache_Metrics(t *testing.T) {
	mc := &BasicMetricsCollector{}
	qc, err := NewQueryCache[int](WithCapacity(2), WithMetricsCollector(mc))
	require.NoError(t, err)

	a := query.Field("a").Exists()
	b := query.Field("b").Exists()
	c := query.Field("c").Exists()

	qc.Get(a) // miss
	qc.Set(a, 1)
	qc.Get(a) // hit
	qc.Set(b, 2)
	qc.Set(c, 3) // evicts a

	assert.Equal(t, int64(1), mc.CacheHits.Load())
	assert.Equal(t, int64(1), mc.CacheMisses.Load())
	assert.Equal(t, int64(1), mc.Evictions.Load())
	assert.InDelta(t, 0.5, mc.HitRate(), 1e-9)
}

func TestQueryCache_Clear(t *testing.T) {
	qc, err := NewQueryCache[int]()
	require.NoError(t, err)

	qc.Set(query.Field("a").Exists(), 1)
	require.Equal(t, 1, qc.Len())

	v := qc.Version()
	qc.Clear()
	assert.Equal(t, 0, qc.Len())
	assert.Equal(t, v, qc.Version())
}

// End-to-end shape: scan on miss, serve from cache on hit, invalidate on
// mutation.
func TestQueryCache_ScanWorkflow(t *testing.T) {
	rng := testutil.NewRNG(42)
	docs := rng.Documents(100)

	scan := func(q query.Query) []int {
		var ids []int
		for i, d := range docs {
			if q.Test(d) {
				ids = append(ids, i)
			}
		}
		return ids
	}

	qc, err := NewQueryCache[[]int]()
	require.NoError(t, err)

	adult := query.Field("age").Ge(18)

	first, ok := qc.Get(adult)
	require.False(t, ok)
	first = scan(adult)
	qc.Set(adult, first)

	cached, ok := qc.Get(adult)
	require.True(t, ok)
	assert.Equal(t, first, cached)

	// A mutation invalidates; the next lookup rescans.
	docs = append(docs, map[string]any{"age": 30})
	qc.Invalidate()
	_, ok = qc.Get(adult)
	require.False(t, ok)

	second := scan(adult)
	assert.Len(t, second, len(first)+1)
	qc.Set(adult, second)
}
