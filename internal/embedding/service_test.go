package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingClient simulates an embedding service that is always down.
type failingClient struct {
	dim   int
	calls int
}

func (c *failingClient) Embed(_ context.Context, texts []string) ([][]float64, error) {
	c.calls++
	return nil, &ClientError{Op: "request", Cause: errors.New("connection refused")}
}

func (c *failingClient) Dimension() int { return c.dim }
func (c *failingClient) Model() string  { return "failing" }

// countingClient wraps OfflineClient and counts provider calls.
type countingClient struct {
	*OfflineClient
	calls int
}

func (c *countingClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	c.calls++
	return c.OfflineClient.Embed(ctx, texts)
}

func newTestService(client Client) *Service {
	return NewService(client, NewMemoryCache(64, time.Minute), 16, 0)
}

func TestEmbed_EmptyTextReturnsZeroVector(t *testing.T) {
	svc := newTestService(NewOfflineClient(1536))

	vec := svc.Embed(context.Background(), "")
	require.Len(t, vec, 1536)
	assert.True(t, IsZero(vec))
}

func TestEmbed_ServiceFailureReturnsZeroVector(t *testing.T) {
	client := &failingClient{dim: 8}
	svc := newTestService(client)

	var reported error
	svc.OnFallback = func(err error) { reported = err }

	vec := svc.Embed(context.Background(), "algorithms")
	require.Len(t, vec, 8)
	assert.True(t, IsZero(vec))
	require.Error(t, reported)

	var clientErr *ClientError
	assert.ErrorAs(t, reported, &clientErr)
}

func TestEmbed_Deterministic(t *testing.T) {
	svc := newTestService(NewOfflineClient(64))

	a := svc.Embed(context.Background(), "graph algorithms")
	b := svc.Embed(context.Background(), "graph algorithms")
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-9)
}

func TestEmbedBatch_OrderMatchesInput(t *testing.T) {
	svc := newTestService(NewOfflineClient(64))
	texts := []string{"alpha", "beta", "gamma", "alpha"}

	vecs := svc.EmbedBatch(context.Background(), texts)
	require.Len(t, vecs, 4)

	solo := svc.Embed(context.Background(), "beta")
	assert.Equal(t, solo, vecs[1])
	// Duplicate inputs produce identical vectors
	assert.Equal(t, vecs[0], vecs[3])
}

func TestEmbedBatch_ChunksRespectBatchSize(t *testing.T) {
	client := &countingClient{OfflineClient: NewOfflineClient(16)}
	svc := NewService(client, NewMemoryCache(64, time.Minute), 2, 0)

	texts := []string{"a", "b", "c", "d", "e"}
	vecs := svc.EmbedBatch(context.Background(), texts)
	require.Len(t, vecs, 5)
	// 5 misses at batch size 2 -> 3 provider calls
	assert.Equal(t, 3, client.calls)
}

func TestEmbedBatch_UsesCache(t *testing.T) {
	client := &countingClient{OfflineClient: NewOfflineClient(16)}
	svc := NewService(client, NewMemoryCache(64, time.Minute), 16, 0)

	_ = svc.Embed(context.Background(), "caching")
	_ = svc.Embed(context.Background(), "caching")
	assert.Equal(t, 1, client.calls)
}

func TestEmbedBatch_FailuresAreNotCached(t *testing.T) {
	client := &failingClient{dim: 4}
	svc := newTestService(client)

	_ = svc.Embed(context.Background(), "retry me")
	_ = svc.Embed(context.Background(), "retry me")
	// A later recovery should not be masked by a cached zero vector
	assert.Equal(t, 2, client.calls)
}

func TestMemoryCache_EvictsOldestWhenFull(t *testing.T) {
	cache := NewMemoryCache(2, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "a", []float64{1})
	cache.Set(ctx, "b", []float64{2})
	cache.Set(ctx, "c", []float64{3})

	assert.Equal(t, 2, cache.Len())
	_, okA := cache.Get(ctx, "a")
	assert.False(t, okA, "oldest entry should have been evicted")
	_, okC := cache.Get(ctx, "c")
	assert.True(t, okC)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewMemoryCache(16, 10*time.Millisecond)
	ctx := context.Background()

	cache.Set(ctx, "k", []float64{1})
	_, ok := cache.Get(ctx, "k")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestCacheKey_DependsOnModelAndText(t *testing.T) {
	assert.Equal(t, CacheKey("m", "text"), CacheKey("m", "text"))
	assert.NotEqual(t, CacheKey("m", "text"), CacheKey("m2", "text"))
	assert.NotEqual(t, CacheKey("m", "text"), CacheKey("m", "other"))
}
