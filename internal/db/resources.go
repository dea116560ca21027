package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/skillpath/internal/types"
)

// UpsertResources stores a batch of learning resources in one transaction.
// Each resource is stored as its full JSON document keyed by ID, so corpus
// schema changes never require a table migration.
func (db *DB) UpsertResources(ctx context.Context, resources []types.LearningResource) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range resources {
		doc, err := json.Marshal(&resources[i])
		if err != nil {
			return fmt.Errorf("failed to marshal resource %s: %w", resources[i].ID, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO learning_resources (id, document, updated_at)
			 VALUES ($1, $2, NOW())
			 ON CONFLICT (id) DO UPDATE SET document = $2, updated_at = NOW()`,
			resources[i].ID, doc,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert resource %s: %w", resources[i].ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit resources: %w", err)
	}
	return nil
}

// ListResources loads the whole corpus, ordered by ID for deterministic
// index construction.
func (db *DB) ListResources(ctx context.Context) ([]types.LearningResource, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT document FROM learning_resources ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var resources []types.LearningResource
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		var res types.LearningResource
		if err := json.Unmarshal(doc, &res); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resource: %w", err)
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// CountResources returns the corpus size.
func (db *DB) CountResources(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM learning_resources`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	return n, nil
}
