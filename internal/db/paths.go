package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillpath/internal/types"
)

// SaveLearningPath stores a generated path as its full JSON document.
func (db *DB) SaveLearningPath(ctx context.Context, path *types.LearningPath) error {
	doc, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to marshal learning path: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO learning_paths (id, user_id, job_id, document, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		path.ID, path.UserID, path.Job.ID, doc, path.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save learning path %s: %w", path.ID, err)
	}
	return nil
}

// GetLearningPath loads one path by ID. Returns NotFoundError when no such
// path exists.
func (db *DB) GetLearningPath(ctx context.Context, id string) (*types.LearningPath, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM learning_paths WHERE id = $1`, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "learning path", ID: id}
		}
		return nil, fmt.Errorf("failed to get learning path %s: %w", id, err)
	}

	var path types.LearningPath
	if err := json.Unmarshal(doc, &path); err != nil {
		return nil, fmt.Errorf("failed to unmarshal learning path %s: %w", id, err)
	}
	return &path, nil
}

// ListLearningPaths returns the most recent paths for a user, newest first.
func (db *DB) ListLearningPaths(ctx context.Context, userID string, limit int) ([]types.LearningPath, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT document FROM learning_paths WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning paths: %w", err)
	}
	defer rows.Close()

	var paths []types.LearningPath
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan learning path: %w", err)
		}
		var path types.LearningPath
		if err := json.Unmarshal(doc, &path); err != nil {
			return nil, fmt.Errorf("failed to unmarshal learning path: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
