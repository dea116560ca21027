package embedding

import (
	"context"
	"strings"
	"time"
)

// Service is the vector similarity helper used by the pipeline. Every
// operation fails closed: any provider error degrades to the zero vector so
// downstream ranking sees near-zero similarity instead of an error.
type Service struct {
	client    Client
	cache     Cache
	batchSize int
	delay     time.Duration

	// OnFallback, when set, is invoked with the reason each time an
	// embedding degrades to the zero vector.
	OnFallback func(err error)
}

// NewService wires a client and cache into a Service. The cache is required;
// inject a NewMemoryCache when nothing fancier is available.
func NewService(client Client, cache Cache, batchSize, batchDelayMs int) *Service {
	if batchSize <= 0 {
		batchSize = 16
	}
	return &Service{
		client:    client,
		cache:     cache,
		batchSize: batchSize,
		delay:     time.Duration(batchDelayMs) * time.Millisecond,
	}
}

// Dimension returns the vector dimensionality of the underlying client.
func (s *Service) Dimension() int { return s.client.Dimension() }

// Embed returns the embedding for text, or the zero vector for empty input
// or any provider failure. It never returns an error.
func (s *Service) Embed(ctx context.Context, text string) []float64 {
	vecs := s.EmbedBatch(ctx, []string{text})
	return vecs[0]
}

// EmbedBatch embeds texts in fixed-size chunks with a short pause between
// chunks to respect provider rate limits. Output order matches input order.
// Failed chunks yield zero vectors for their texts.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) [][]float64 {
	out := make([][]float64, len(texts))

	// Resolve cache hits and blank inputs first
	type pending struct {
		index int
		text  string
		key   string
	}
	var misses []pending
	for i, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			out[i] = ZeroVector(s.client.Dimension())
			continue
		}
		key := CacheKey(s.client.Model(), trimmed)
		if vec, ok := s.cache.Get(ctx, key); ok {
			out[i] = vec
			continue
		}
		misses = append(misses, pending{index: i, text: trimmed, key: key})
	}

	for start := 0; start < len(misses); start += s.batchSize {
		end := start + s.batchSize
		if end > len(misses) {
			end = len(misses)
		}
		chunk := misses[start:end]

		if start > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}

		chunkTexts := make([]string, len(chunk))
		for i, p := range chunk {
			chunkTexts[i] = p.text
		}

		vecs, err := s.client.Embed(ctx, chunkTexts)
		if err != nil || len(vecs) != len(chunk) {
			s.fallback(err)
			for _, p := range chunk {
				out[p.index] = ZeroVector(s.client.Dimension())
			}
			continue
		}

		for i, p := range chunk {
			out[p.index] = vecs[i]
			s.cache.Set(ctx, p.key, vecs[i])
		}
	}

	return out
}

func (s *Service) fallback(err error) {
	if s.OnFallback != nil && err != nil {
		s.OnFallback(err)
	}
}
