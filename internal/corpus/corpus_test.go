package corpus

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillpath/internal/embedding"
	"github.com/jonathan/skillpath/internal/types"
)

func newTestEmbedder() *embedding.Service {
	return embedding.NewService(
		embedding.NewOfflineClient(128),
		embedding.NewMemoryCache(256, time.Minute),
		16, 0,
	)
}

func newFailingEmbedder() *embedding.Service {
	return embedding.NewService(zeroClient{dim: 128}, embedding.NewMemoryCache(4, time.Minute), 16, 0)
}

// zeroClient always returns zero vectors, simulating a dead embedding service
// after the fail-closed mapping.
type zeroClient struct{ dim int }

func (c zeroClient) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range out {
		out[i] = embedding.ZeroVector(c.dim)
	}
	return out, nil
}

func (c zeroClient) Dimension() int { return c.dim }
func (c zeroClient) Model() string  { return "zero" }

func corpusPath(t *testing.T) string {
	t.Helper()
	return filepath.Join("..", "..", "testdata", "corpus.json")
}

func TestLoadResources_ValidFile(t *testing.T) {
	resources, err := LoadResources(corpusPath(t))
	require.NoError(t, err)
	require.NotEmpty(t, resources)

	first := resources[0]
	assert.Equal(t, "res_algo_course", first.ID)
	assert.Equal(t, types.ResourceCourse, first.Type)
	assert.Contains(t, first.SkillIDs, "algorithms")
}

func TestLoadResources_MissingFile(t *testing.T) {
	_, err := LoadResources(filepath.Join("testdata", "nope.json"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateResources_RejectsBadType(t *testing.T) {
	err := ValidateResources([]types.LearningResource{
		{ID: "r1", Title: "Bad", Type: "podcast", Rating: 3},
	})
	require.Error(t, err)
}

func TestValidateResources_RejectsDuplicateIDs(t *testing.T) {
	err := ValidateResources([]types.LearningResource{
		{ID: "r1", Title: "A", Type: types.ResourceArticle},
		{ID: "r1", Title: "B", Type: types.ResourceVideo},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestSearch_ReturnsRelevantCandidates(t *testing.T) {
	resources, err := LoadResources(corpusPath(t))
	require.NoError(t, err)

	idx := NewIndex(context.Background(), resources, newTestEmbedder())
	results := idx.Search(context.Background(), "algorithms", 10)
	require.NotEmpty(t, results)

	found := false
	for _, r := range results {
		for _, skill := range r.Resource.SkillIDs {
			if skill == "algorithms" {
				found = true
			}
		}
	}
	assert.True(t, found, "expected at least one candidate declaring the algorithms skill")
}

func TestSearch_DescendingSimilarity(t *testing.T) {
	resources, err := LoadResources(corpusPath(t))
	require.NoError(t, err)

	idx := NewIndex(context.Background(), resources, newTestEmbedder())
	results := idx.Search(context.Background(), "sql databases", 10)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestSearch_RespectsLimit(t *testing.T) {
	resources, err := LoadResources(corpusPath(t))
	require.NoError(t, err)

	idx := NewIndex(context.Background(), resources, newTestEmbedder())
	results := idx.Search(context.Background(), "algorithms", 2)
	assert.LessOrEqual(t, len(results), 2)
}

func TestSearch_DeadEmbeddingServiceReturnsEmpty(t *testing.T) {
	resources, err := LoadResources(corpusPath(t))
	require.NoError(t, err)

	idx := NewIndex(context.Background(), resources, newFailingEmbedder())
	results := idx.Search(context.Background(), "algorithms", 10)
	assert.Empty(t, results)
}

func TestSearch_DoesNotMutateCorpus(t *testing.T) {
	resources, err := LoadResources(corpusPath(t))
	require.NoError(t, err)

	before := make([]string, len(resources))
	for i, r := range resources {
		before[i] = r.ID
	}

	idx := NewIndex(context.Background(), resources, newTestEmbedder())
	_ = idx.Search(context.Background(), "system design", 3)
	_ = idx.Search(context.Background(), "sql", 3)

	for i, r := range resources {
		assert.Equal(t, before[i], r.ID)
	}
	assert.Equal(t, len(resources), idx.Len())
}
