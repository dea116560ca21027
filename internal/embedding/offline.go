package embedding

import (
	"context"
	"hash/fnv"
	"strings"
)

// OfflineClient produces deterministic bag-of-words vectors by hashing
// lowercased tokens into a fixed dimension. It lets the pipeline run with no
// external service: similarity degrades to token overlap, which is enough
// for tests and for --offline mode.
type OfflineClient struct {
	dim int
}

// NewOfflineClient creates an offline embedder of the given dimension.
func NewOfflineClient(dim int) *OfflineClient {
	if dim <= 0 {
		dim = 256
	}
	return &OfflineClient{dim: dim}
}

// Dimension returns the configured vector dimensionality.
func (c *OfflineClient) Dimension() int { return c.dim }

// Model returns the synthetic model identifier for cache keying.
func (c *OfflineClient) Model() string { return "offline-bow" }

// Embed hashes each token of each text into a vector component. Identical
// text always produces an identical vector.
func (c *OfflineClient) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, c.dim)
		for _, token := range tokenize(text) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(token))
			vec[int(h.Sum32())%c.dim]++
		}
		out[i] = vec
	}
	return out, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
