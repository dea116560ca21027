package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillpath/internal/types"
)

// UpsertJobPosition inserts or replaces a job position definition.
func (db *DB) UpsertJobPosition(ctx context.Context, job *types.JobPosition) error {
	weights, err := json.Marshal(job.SkillWeights)
	if err != nil {
		return fmt.Errorf("failed to marshal skill weights: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_positions (id, title, description, skill_weights, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		   title = $2, description = $3, skill_weights = $4, updated_at = NOW()`,
		job.ID, job.Title, job.Description, weights,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job position %s: %w", job.ID, err)
	}
	return nil
}

// GetJobPosition loads one job position by ID. Returns NotFoundError when
// no such job exists.
func (db *DB) GetJobPosition(ctx context.Context, id string) (*types.JobPosition, error) {
	var (
		job     types.JobPosition
		weights []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, skill_weights FROM job_positions WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Title, &job.Description, &weights)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "job position", ID: id}
		}
		return nil, fmt.Errorf("failed to get job position %s: %w", id, err)
	}

	if err := json.Unmarshal(weights, &job.SkillWeights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skill weights for %s: %w", id, err)
	}
	return &job, nil
}

// ListJobPositions returns all stored job positions ordered by ID.
func (db *DB) ListJobPositions(ctx context.Context) ([]types.JobPosition, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, skill_weights FROM job_positions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job positions: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobPosition
	for rows.Next() {
		var (
			job     types.JobPosition
			weights []byte
		)
		if err := rows.Scan(&job.ID, &job.Title, &job.Description, &weights); err != nil {
			return nil, fmt.Errorf("failed to scan job position: %w", err)
		}
		if err := json.Unmarshal(weights, &job.SkillWeights); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skill weights for %s: %w", job.ID, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
