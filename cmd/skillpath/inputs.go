package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/db"
	"github.com/jonathan/skillpath/internal/types"
)

// loadJobPosition reads a job position JSON file. Unknown keys are rejected
// so a mistyped weight key fails loudly instead of silently dropping skills.
func loadJobPosition(path string) (*types.JobPosition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var job types.JobPosition
	if err := dec.Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	if job.ID == "" || job.Title == "" {
		return nil, fmt.Errorf("job file must set id and title")
	}
	for skill, weight := range job.SkillWeights {
		if weight < 0 || weight > 1 {
			return nil, fmt.Errorf("skill weight for %s out of range [0,1]: %v", skill, weight)
		}
	}
	return &job, nil
}

// loadAssessment reads an assessment result JSON file.
func loadAssessment(path string) (*types.AssessmentResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assessment file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var result types.AssessmentResult
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse assessment JSON: %w", err)
	}
	if len(result.Scores) == 0 {
		return nil, fmt.Errorf("assessment file has no scores")
	}
	for skill, score := range result.Scores {
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("score for %s out of range [0,100]: %v", skill, score)
		}
	}
	return &result, nil
}

// loadSkillCatalog reads an optional skill catalog file used for display
// names and categories. An empty path yields an empty catalog.
func loadSkillCatalog(path string) ([]types.Skill, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills file: %w", err)
	}

	var catalog struct {
		Skills []types.Skill `json:"skills"`
	}
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse skills JSON: %w", err)
	}
	return catalog.Skills, nil
}

// resolveJob loads the job either from a file or, when a job ID and database
// URL are configured, from PostgreSQL.
func resolveJob(ctx context.Context, cfg *config.Config, jobID string) (*types.JobPosition, error) {
	if jobID != "" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("--job-id requires --database-url or DATABASE_URL")
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		return database.GetJobPosition(ctx, jobID)
	}

	if cfg.Job == "" {
		return nil, fmt.Errorf("must provide --job or --job-id")
	}
	return loadJobPosition(cfg.Job)
}

// writeJSON marshals v with indentation to path, or to stdout when path is
// empty.
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
