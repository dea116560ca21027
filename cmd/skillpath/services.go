package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/corpus"
	"github.com/jonathan/skillpath/internal/db"
	"github.com/jonathan/skillpath/internal/embedding"
	"github.com/jonathan/skillpath/internal/enhance"
	"github.com/jonathan/skillpath/internal/llm"
	"github.com/jonathan/skillpath/internal/observability"
	"github.com/jonathan/skillpath/internal/pipeline"
	"github.com/jonathan/skillpath/internal/types"
)

// applyEnv fills config fields from environment variables when flags and the
// config file left them empty.
func applyEnv(cfg *config.Config) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
}

// buildEmbedder constructs the embedding service: offline bag-of-words when
// requested, otherwise the HTTP embeddings client, with a memory cache and
// an optional Redis second tier.
func buildEmbedder(cfg *config.Config) (*embedding.Service, error) {
	tuning := cfg.Tuning

	var client embedding.Client
	if cfg.Offline {
		client = embedding.NewOfflineClient(tuning.EmbeddingDim)
	} else {
		httpClient, err := embedding.NewHTTPClient(cfg.EmbedAPIKey, tuning.EmbeddingDim)
		if err != nil {
			return nil, err
		}
		client = httpClient
	}

	ttl := time.Duration(tuning.CacheTTLMinutes) * time.Minute
	l1 := embedding.NewMemoryCache(tuning.CacheMaxEntries, ttl)

	var cache embedding.Cache = l1
	if cfg.RedisURL != "" {
		cache = embedding.NewTieredCache(l1, cfg.RedisURL, ttl)
	}

	svc := embedding.NewService(client, cache, tuning.BatchSize, tuning.BatchDelayMs)
	if cfg.Verbose {
		svc.OnFallback = func(err error) {
			fmt.Fprintf(os.Stderr, "Warning: embedding degraded to zero vector: %v\n", err)
		}
	}
	return svc, nil
}

// loadCorpus reads the resource corpus from the configured file, or from
// PostgreSQL when only a database is configured.
func loadCorpus(ctx context.Context, cfg *config.Config) ([]types.LearningResource, error) {
	if cfg.Corpus != "" {
		resources, err := corpus.LoadResources(cfg.Corpus)
		if err != nil {
			return nil, err
		}
		return resources, corpus.ValidateResources(resources)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("must provide --corpus or --database-url")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	resources, err := database.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, fmt.Errorf("database corpus is empty; run skillpath ingest first")
	}
	return resources, nil
}

// buildEnhancer returns the enhancement stage, or nil when enhancement is
// disabled or no API key is available.
func buildEnhancer(ctx context.Context, cfg *config.Config) (*enhance.Enhancer, func(), error) {
	if cfg.NoEnhance || cfg.Offline {
		return nil, func() {}, nil
	}
	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: GEMINI_API_KEY not set; using templated rationales")
		return nil, func() {}, nil
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return enhance.NewEnhancer(client), func() { _ = client.Close() }, nil
}

// buildPipeline assembles the full recommendation pipeline from config.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, func(), error) {
	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}

	resources, err := loadCorpus(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	enhancer, closeEnhancer, err := buildEnhancer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	idx := corpus.NewIndex(ctx, resources, embedder)
	pipe := pipeline.New(idx, enhancer, cfg.Tuning)

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		pipe.OnProgress = func(event pipeline.ProgressEvent) {
			printer.PrintStage(event.Stage, event.Message, event.Count)
		}
	}

	return pipe, closeEnhancer, nil
}
