package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillpath/internal/assessment"
	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/observability"
	"github.com/jonathan/skillpath/internal/schemas"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Derive prioritized improvement areas from an assessment",
	Long:  "Compare per-skill assessment scores against a job's skill weights and output the weak skills ordered by priority.",
	RunE:  runAssess,
}

var (
	assessAssessmentFile string
	assessJobFile        string
	assessJobID          string
	assessSkillsFile     string
	assessOutputFile     string
	assessDatabaseURL    string
	assessVerbose        bool
)

func init() {
	assessCmd.Flags().StringVarP(&assessAssessmentFile, "assessment", "a", "", "Path to assessment result JSON (required)")
	assessCmd.Flags().StringVarP(&assessJobFile, "job", "j", "", "Path to job position JSON")
	assessCmd.Flags().StringVar(&assessJobID, "job-id", "", "Job position ID to load from the database")
	assessCmd.Flags().StringVar(&assessSkillsFile, "skills", "", "Optional skill catalog JSON for display names")
	assessCmd.Flags().StringVarP(&assessOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	assessCmd.Flags().StringVar(&assessDatabaseURL, "database-url", "", "PostgreSQL URL (overrides DATABASE_URL env var)")
	assessCmd.Flags().BoolVarP(&assessVerbose, "verbose", "v", false, "Print a formatted summary to stderr")

	_ = assessCmd.MarkFlagRequired("assessment")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{
		Assessment:  assessAssessmentFile,
		Job:         assessJobFile,
		DatabaseURL: assessDatabaseURL,
		Verbose:     assessVerbose,
	}
	applyEnv(cfg)
	cfg.Tuning = cfg.Tuning.MergeWithDefaults(config.DefaultTuning())

	ctx := context.Background()

	result, err := loadAssessment(cfg.Assessment)
	if err != nil {
		return err
	}
	job, err := resolveJob(ctx, cfg, assessJobID)
	if err != nil {
		return err
	}
	catalog, err := loadSkillCatalog(assessSkillsFile)
	if err != nil {
		return err
	}

	interp := assessment.NewInterpreter(cfg.Tuning, catalog)
	areas := interp.ImprovementAreas(result, job)

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintImprovementAreas(areas)
	}

	if err := writeJSON(assessOutputFile, areas); err != nil {
		return err
	}

	if assessOutputFile != "" {
		validateOutput("schemas/improvement_areas.schema.json", assessOutputFile)
		fmt.Fprintf(os.Stdout, "Found %d improvement areas\n", len(areas))
		fmt.Fprintf(os.Stdout, "Output: %s\n", assessOutputFile)
	}
	return nil
}

// validateOutput checks a written artifact against its schema. Validation is
// advisory: failures print a warning and never fail the command.
func validateOutput(schemaRelPath, outputPath string) {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		return
	}
	if err := schemas.ValidateJSON(schemaPath, outputPath); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(os.Stderr, "Warning: output does not validate against schema: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "Warning: could not validate output against schema: %v\n", err)
	}
}
