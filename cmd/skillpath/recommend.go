package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillpath/internal/assessment"
	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/observability"
	"github.com/jonathan/skillpath/internal/pipeline"
	"github.com/jonathan/skillpath/internal/ranking"
	"github.com/jonathan/skillpath/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend learning resources for an assessment",
	Long:  "Run the full retrieval-ranking pipeline once: derive improvement areas, search the corpus, filter, rank, diversify, and optionally personalize the results.",
	RunE:  runRecommend,
}

var (
	recConfigFile     string
	recAssessmentFile string
	recJobFile        string
	recJobID          string
	recSkillsFile     string
	recCorpusFile     string
	recQuery          string
	recTypes          []string
	recDifficulty     string
	recTerm           string
	recK              int
	recOutputFile     string
	recAPIKey         string
	recEmbedAPIKey    string
	recDatabaseURL    string
	recRedisURL       string
	recOffline        bool
	recNoEnhance      bool
	recVerbose        bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recConfigFile, "config", "c", "", "Path to config JSON file")
	recommendCmd.Flags().StringVarP(&recAssessmentFile, "assessment", "a", "", "Path to assessment result JSON")
	recommendCmd.Flags().StringVarP(&recJobFile, "job", "j", "", "Path to job position JSON")
	recommendCmd.Flags().StringVar(&recJobID, "job-id", "", "Job position ID to load from the database")
	recommendCmd.Flags().StringVar(&recSkillsFile, "skills", "", "Optional skill catalog JSON for display names")
	recommendCmd.Flags().StringVar(&recCorpusFile, "corpus", "", "Path to learning resource corpus JSON")
	recommendCmd.Flags().StringVarP(&recQuery, "query", "q", "", "Free-text query appended to the constructed retrieval query")
	recommendCmd.Flags().StringSliceVarP(&recTypes, "types", "t", nil, "Resource type allow-list (e.g. course,video)")
	recommendCmd.Flags().StringVar(&recDifficulty, "difficulty", "", "Difficulty filter: beginner, intermediate or advanced")
	recommendCmd.Flags().StringVar(&recTerm, "term", "", "Time horizon hint: short, mid or long")
	recommendCmd.Flags().IntVarP(&recK, "top", "k", 0, "Number of resources to return (default from tuning)")
	recommendCmd.Flags().StringVarP(&recOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	recommendCmd.Flags().StringVar(&recAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	recommendCmd.Flags().StringVar(&recEmbedAPIKey, "embed-api-key", "", "Embedding service API key (overrides EMBEDDINGS_API_KEY env var)")
	recommendCmd.Flags().StringVar(&recDatabaseURL, "database-url", "", "PostgreSQL URL (overrides DATABASE_URL env var)")
	recommendCmd.Flags().StringVar(&recRedisURL, "redis-url", "", "Redis URL for the embedding cache (overrides REDIS_URL env var)")
	recommendCmd.Flags().BoolVar(&recOffline, "offline", false, "Use deterministic offline similarity instead of the embedding service")
	recommendCmd.Flags().BoolVar(&recNoEnhance, "no-enhance", false, "Skip the LLM personalization stage")
	recommendCmd.Flags().BoolVarP(&recVerbose, "verbose", "v", false, "Print pipeline progress and a formatted summary to stderr")

	rootCmd.AddCommand(recommendCmd)
}

// recommendConfig merges flags, the optional config file, and environment
// variables, flags winning.
func recommendConfig() (*config.Config, error) {
	cfg := &config.Config{
		Assessment:  recAssessmentFile,
		Job:         recJobFile,
		Corpus:      recCorpusFile,
		APIKey:      recAPIKey,
		EmbedAPIKey: recEmbedAPIKey,
		DatabaseURL: recDatabaseURL,
		RedisURL:    recRedisURL,
		Offline:     recOffline,
		NoEnhance:   recNoEnhance,
		Verbose:     recVerbose,
	}

	if recConfigFile != "" {
		fileCfg, err := config.LoadConfig(recConfigFile)
		if err != nil {
			return nil, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}

	applyEnv(cfg)
	cfg.Tuning = cfg.Tuning.MergeWithDefaults(config.DefaultTuning())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Assessment == "" {
		return nil, fmt.Errorf("must provide --assessment")
	}
	return cfg, nil
}

func runRecommend(_ *cobra.Command, _ []string) error {
	cfg, err := recommendConfig()
	if err != nil {
		return err
	}

	filter := ranking.Filter{
		Difficulty: recDifficulty,
		Term:       types.TermBucket(recTerm),
	}
	for _, rt := range recTypes {
		filter.ResourceTypes = append(filter.ResourceTypes, types.ResourceType(rt))
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	result, err := loadAssessment(cfg.Assessment)
	if err != nil {
		return err
	}
	job, err := resolveJob(ctx, cfg, recJobID)
	if err != nil {
		return err
	}
	catalog, err := loadSkillCatalog(recSkillsFile)
	if err != nil {
		return err
	}

	areas := assessment.NewInterpreter(cfg.Tuning, catalog).ImprovementAreas(result, job)

	pipe, closePipe, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePipe()

	ranked := pipe.Recommend(ctx, pipeline.Request{
		Job:     job,
		Areas:   areas,
		Query:   recQuery,
		Filter:  filter,
		K:       recK,
		Enhance: !cfg.NoEnhance,
	})

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintRankedResources(ranked)
	}

	if err := writeJSON(recOutputFile, ranked); err != nil {
		return err
	}
	if recOutputFile != "" {
		fmt.Fprintf(os.Stdout, "Recommended %d resources\n", len(ranked))
		fmt.Fprintf(os.Stdout, "Output: %s\n", recOutputFile)
	}
	return nil
}
