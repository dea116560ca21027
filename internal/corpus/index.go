package corpus

import (
	"context"
	"sort"

	"github.com/jonathan/skillpath/internal/embedding"
	"github.com/jonathan/skillpath/internal/types"
)

// Scored is a corpus resource annotated with its raw retrieval similarity.
type Scored struct {
	Resource   types.LearningResource
	Similarity float64
}

// Index holds resource embeddings for nearest-neighbor search. Built once at
// startup; read-only afterward, so concurrent searches need no locking.
type Index struct {
	embedder  *embedding.Service
	resources []types.LearningResource
	vectors   [][]float64
}

// NewIndex embeds every resource's searchable text and builds the index.
// Resources whose embedding degraded to the zero vector stay in the index;
// they simply never score above zero similarity.
func NewIndex(ctx context.Context, resources []types.LearningResource, embedder *embedding.Service) *Index {
	texts := make([]string, len(resources))
	for i := range resources {
		texts[i] = resources[i].SearchText()
	}

	return &Index{
		embedder:  embedder,
		resources: resources,
		vectors:   embedder.EmbedBatch(ctx, texts),
	}
}

// Len returns the number of indexed resources.
func (idx *Index) Len() int { return len(idx.resources) }

// All returns every indexed resource annotated with the given similarity.
// Used as the retrieval fallback when semantic search degrades to nothing.
func (idx *Index) All(similarity float64) []Scored {
	scored := make([]Scored, len(idx.resources))
	for i := range idx.resources {
		scored[i] = Scored{Resource: idx.resources[i], Similarity: similarity}
	}
	return scored
}

// Search returns up to limit resources most similar to the query, descending
// by similarity. Recommendation is best-effort: an empty index or a query
// whose embedding degraded to zero yields an empty result, never an error.
func (idx *Index) Search(ctx context.Context, query string, limit int) []Scored {
	if idx.Len() == 0 || limit <= 0 {
		return nil
	}

	queryVec := idx.embedder.Embed(ctx, query)
	if embedding.IsZero(queryVec) {
		return nil
	}

	scored := make([]Scored, 0, idx.Len())
	for i := range idx.resources {
		scored = append(scored, Scored{
			Resource:   idx.resources[i],
			Similarity: embedding.Cosine(queryVec, idx.vectors[i]),
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Similarity > scored[b].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
