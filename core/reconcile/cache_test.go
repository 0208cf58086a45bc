package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"codesync/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder(calls *int32) func(ctx context.Context) (*CodeIndex, error) {
	return func(ctx context.Context) (*CodeIndex, error) {
		atomic.AddInt32(calls, 1)
		return BuildIndex([]snapshot.TypeRecord{{Category: "Walls", TypeName: "Basic Wall", Code: "A1010"}}, nil)
	}
}

// TestIndexCache_Reuses tests that a fresh entry is served without rebuilding.
func TestIndexCache_Reuses(t *testing.T) {
	cache := NewIndexCache(time.Minute)
	var calls int32

	first, err := cache.GetOrBuild(context.Background(), CacheKey("a.json", "v1"), testBuilder(&calls))
	require.NoError(t, err)
	second, err := cache.GetOrBuild(context.Background(), CacheKey("a.json", "v1"), testBuilder(&calls))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls)
	assert.Equal(t, 1, cache.Len())
}

// TestIndexCache_NewVersion tests that a changed snapshot revision is rebuilt.
func TestIndexCache_NewVersion(t *testing.T) {
	cache := NewIndexCache(time.Minute)
	var calls int32

	_, err := cache.GetOrBuild(context.Background(), CacheKey("a.json", "v1"), testBuilder(&calls))
	require.NoError(t, err)
	_, err = cache.GetOrBuild(context.Background(), CacheKey("a.json", "v2"), testBuilder(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls)
}

// TestIndexCache_Expiry tests that entries older than the TTL are rebuilt.
func TestIndexCache_Expiry(t *testing.T) {
	cache := NewIndexCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }
	var calls int32

	_, err := cache.GetOrBuild(context.Background(), "k", testBuilder(&calls))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrBuild(context.Background(), "k", testBuilder(&calls))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)
}

func TestIndexCache_Disabled(t *testing.T) {
	cache := NewIndexCache(0)
	var calls int32

	for i := 0; i < 3; i++ {
		_, err := cache.GetOrBuild(context.Background(), "k", testBuilder(&calls))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls)
	assert.Zero(t, cache.Len())
}

func TestIndexCache_ErrorNotCached(t *testing.T) {
	cache := NewIndexCache(time.Minute)
	boom := errors.New("boom")

	_, err := cache.GetOrBuild(context.Background(), "k", func(ctx context.Context) (*CodeIndex, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, cache.Len())
}

func TestIndexCache_Invalidate(t *testing.T) {
	cache := NewIndexCache(time.Minute)
	var calls int32

	_, _ = cache.GetOrBuild(context.Background(), "k", testBuilder(&calls))
	cache.Invalidate("k")
	_, _ = cache.GetOrBuild(context.Background(), "k", testBuilder(&calls))
	assert.Equal(t, int32(2), calls)
}

// TestIndexCache_Concurrent tests that concurrent callers share one build.
func TestIndexCache_Concurrent(t *testing.T) {
	cache := NewIndexCache(time.Minute)
	var calls int32
	release := make(chan struct{})

	build := func(ctx context.Context) (*CodeIndex, error) {
		<-release
		return testBuilder(&calls)(ctx)
	}

	var wg sync.WaitGroup
	results := make([]*CodeIndex, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			index, err := cache.GetOrBuild(context.Background(), "k", build)
			assert.NoError(t, err)
			results[i] = index
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, index := range results {
		assert.Same(t, results[0], index)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}
