package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/corpus"
	"github.com/jonathan/skillpath/internal/db"
	"github.com/jonathan/skillpath/internal/ingest"
	"github.com/jonathan/skillpath/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add learning resources to the corpus",
	Long:  "Ingest learning resources either from a corpus JSON file or by fetching a URL and extracting its metadata. Resources are written to an output corpus file or stored in PostgreSQL.",
	RunE:  runIngest,
}

var (
	ingestURL         string
	ingestCorpusFile  string
	ingestSkillIDs    []string
	ingestRating      float64
	ingestOutputFile  string
	ingestDatabaseURL string
)

func init() {
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "URL of a resource page to fetch and extract")
	ingestCmd.Flags().StringVar(&ingestCorpusFile, "corpus", "", "Path to a corpus JSON file to ingest")
	ingestCmd.Flags().StringSliceVar(&ingestSkillIDs, "skill-ids", nil, "Skill IDs to attach to a fetched resource")
	ingestCmd.Flags().Float64Var(&ingestRating, "rating", 0, "Rating [0,5] to attach to a fetched resource")
	ingestCmd.Flags().StringVarP(&ingestOutputFile, "out", "o", "", "Corpus file to append the resources to")
	ingestCmd.Flags().StringVar(&ingestDatabaseURL, "database-url", "", "PostgreSQL URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	if (ingestURL == "") == (ingestCorpusFile == "") {
		return fmt.Errorf("must provide exactly one of --url or --corpus")
	}

	cfg := &config.Config{DatabaseURL: ingestDatabaseURL}
	applyEnv(cfg)

	if ingestOutputFile == "" && cfg.DatabaseURL == "" {
		return fmt.Errorf("must provide --out or --database-url")
	}

	ctx := context.Background()

	var resources []types.LearningResource
	if ingestCorpusFile != "" {
		loaded, err := corpus.LoadResources(ingestCorpusFile)
		if err != nil {
			return err
		}
		resources = loaded
	} else {
		result, err := ingest.Fetch(ctx, ingestURL, nil)
		if err != nil {
			return err
		}
		res, err := ingest.ExtractResource(result.HTML, ingestURL)
		if err != nil {
			return err
		}
		res.SkillIDs = ingestSkillIDs
		res.Rating = ingestRating
		resources = []types.LearningResource{*res}
	}

	if err := corpus.ValidateResources(resources); err != nil {
		return err
	}

	if ingestOutputFile != "" {
		if err := appendToCorpusFile(ingestOutputFile, resources); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d resources to %s\n", len(resources), ingestOutputFile)
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		if err := database.UpsertResources(ctx, resources); err != nil {
			return err
		}
		total, err := database.CountResources(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Stored %d resources (corpus now holds %d)\n", len(resources), total)
	}

	return nil
}

// appendToCorpusFile merges resources into an existing corpus file, replacing
// entries with matching IDs, and writes the result back.
func appendToCorpusFile(path string, resources []types.LearningResource) error {
	existing := []types.LearningResource{}
	if _, err := os.Stat(path); err == nil {
		loaded, err := corpus.LoadResources(path)
		if err != nil {
			return err
		}
		existing = loaded
	}

	byID := make(map[string]int, len(existing))
	for i, res := range existing {
		byID[res.ID] = i
	}
	for _, res := range resources {
		if i, ok := byID[res.ID]; ok {
			existing[i] = res
			continue
		}
		existing = append(existing, res)
	}

	out := struct {
		Resources []types.LearningResource `json:"resources"`
	}{Resources: existing}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}
