package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillpath/internal/assessment"
	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/db"
	"github.com/jonathan/skillpath/internal/observability"
	"github.com/jonathan/skillpath/internal/path"
	"github.com/jonathan/skillpath/internal/ranking"
	"github.com/jonathan/skillpath/internal/types"
)

var generatePathCmd = &cobra.Command{
	Use:   "generate-path",
	Short: "Generate a complete learning path",
	Long:  "Derive improvement areas from an assessment, recommend resources for each area concurrently, and group the resulting goals into short, mid and long term buckets.",
	RunE:  runGeneratePath,
}

var (
	genConfigFile     string
	genAssessmentFile string
	genJobFile        string
	genJobID          string
	genSkillsFile     string
	genCorpusFile     string
	genUserID         string
	genTypes          []string
	genDifficulty     string
	genOutputFile     string
	genAPIKey         string
	genEmbedAPIKey    string
	genDatabaseURL    string
	genRedisURL       string
	genSave           bool
	genOffline        bool
	genNoEnhance      bool
	genVerbose        bool
)

func init() {
	generatePathCmd.Flags().StringVarP(&genConfigFile, "config", "c", "", "Path to config JSON file")
	generatePathCmd.Flags().StringVarP(&genAssessmentFile, "assessment", "a", "", "Path to assessment result JSON")
	generatePathCmd.Flags().StringVarP(&genJobFile, "job", "j", "", "Path to job position JSON")
	generatePathCmd.Flags().StringVar(&genJobID, "job-id", "", "Job position ID to load from the database")
	generatePathCmd.Flags().StringVar(&genSkillsFile, "skills", "", "Optional skill catalog JSON for display names")
	generatePathCmd.Flags().StringVar(&genCorpusFile, "corpus", "", "Path to learning resource corpus JSON")
	generatePathCmd.Flags().StringVarP(&genUserID, "user-id", "u", "", "User identifier recorded on the generated path")
	generatePathCmd.Flags().StringSliceVarP(&genTypes, "types", "t", nil, "Resource type allow-list (e.g. course,video)")
	generatePathCmd.Flags().StringVar(&genDifficulty, "difficulty", "", "Difficulty filter: beginner, intermediate or advanced")
	generatePathCmd.Flags().StringVarP(&genOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	generatePathCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generatePathCmd.Flags().StringVar(&genEmbedAPIKey, "embed-api-key", "", "Embedding service API key (overrides EMBEDDINGS_API_KEY env var)")
	generatePathCmd.Flags().StringVar(&genDatabaseURL, "database-url", "", "PostgreSQL URL (overrides DATABASE_URL env var)")
	generatePathCmd.Flags().StringVar(&genRedisURL, "redis-url", "", "Redis URL for the embedding cache (overrides REDIS_URL env var)")
	generatePathCmd.Flags().BoolVar(&genSave, "save", false, "Persist the generated path to the database")
	generatePathCmd.Flags().BoolVar(&genOffline, "offline", false, "Use deterministic offline similarity instead of the embedding service")
	generatePathCmd.Flags().BoolVar(&genNoEnhance, "no-enhance", false, "Skip the LLM personalization stage")
	generatePathCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print pipeline progress and a formatted summary to stderr")

	rootCmd.AddCommand(generatePathCmd)
}

func generatePathConfig() (*config.Config, error) {
	cfg := &config.Config{
		Assessment:  genAssessmentFile,
		Job:         genJobFile,
		Corpus:      genCorpusFile,
		UserID:      genUserID,
		APIKey:      genAPIKey,
		EmbedAPIKey: genEmbedAPIKey,
		DatabaseURL: genDatabaseURL,
		RedisURL:    genRedisURL,
		Offline:     genOffline,
		NoEnhance:   genNoEnhance,
		Verbose:     genVerbose,
	}

	if genConfigFile != "" {
		fileCfg, err := config.LoadConfig(genConfigFile)
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

func runGeneratePath(_ *cobra.Command, _ []string) error {
	cfg, err := generatePathConfig()
	if err != nil {
		return err
	}

	filter := ranking.Filter{Difficulty: genDifficulty}
	for _, rt := range genTypes {
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
	job, err := resolveJob(ctx, cfg, genJobID)
	if err != nil {
		return err
	}
	catalog, err := loadSkillCatalog(genSkillsFile)
	if err != nil {
		return err
	}

	areas := assessment.NewInterpreter(cfg.Tuning, catalog).ImprovementAreas(result, job)

	pipe, closePipe, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePipe()

	assembler := path.NewAssembler(pipe, cfg.Tuning)
	learningPath := assembler.Generate(ctx, job, result, areas, path.Options{
		UserID:  cfg.UserID,
		Filter:  filter,
		Enhance: !cfg.NoEnhance,
	})

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintLearningPath(learningPath)
	}

	if err := writeJSON(genOutputFile, learningPath); err != nil {
		return err
	}
	if genOutputFile != "" {
		validateOutput("schemas/learning_path.schema.json", genOutputFile)
		fmt.Fprintf(os.Stdout, "Generated learning path %s with %d goals\n", learningPath.ID, learningPath.TotalGoals())
		fmt.Fprintf(os.Stdout, "Output: %s\n", genOutputFile)
	}

	if genSave {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--save requires --database-url or DATABASE_URL")
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		if err := database.SaveLearningPath(ctx, learningPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved learning path %s\n", learningPath.ID)
	}
	return nil
}
