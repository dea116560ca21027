//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillpath/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Clean up rows left behind by earlier failed runs
	_, _ = db.pool.Exec(ctx, "DELETE FROM learning_paths WHERE user_id LIKE 'it_%'")
	_, _ = db.pool.Exec(ctx, "DELETE FROM learning_resources WHERE id LIKE 'it_%'")
	_, _ = db.pool.Exec(ctx, "DELETE FROM job_positions WHERE id LIKE 'it_%'")

	return db
}

func TestIntegration_JobPosition_Roundtrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	job := &types.JobPosition{
		ID:    "it_backend_engineer",
		Title: "Backend Engineer",
		SkillWeights: map[string]float64{
			"algorithms": 0.8,
			"databases":  0.6,
		},
	}
	if err := db.UpsertJobPosition(ctx, job); err != nil {
		t.Fatalf("Failed to upsert job position: %v", err)
	}

	got, err := db.GetJobPosition(ctx, job.ID)
	if err != nil {
		t.Fatalf("Failed to get job position: %v", err)
	}
	if got.Title != job.Title {
		t.Errorf("Title = %q, want %q", got.Title, job.Title)
	}
	if got.SkillWeights["algorithms"] != 0.8 {
		t.Errorf("SkillWeights[algorithms] = %v, want 0.8", got.SkillWeights["algorithms"])
	}

	// Upsert replaces
	job.Title = "Senior Backend Engineer"
	if err := db.UpsertJobPosition(ctx, job); err != nil {
		t.Fatalf("Failed to re-upsert job position: %v", err)
	}
	got, err = db.GetJobPosition(ctx, job.ID)
	if err != nil {
		t.Fatalf("Failed to re-get job position: %v", err)
	}
	if got.Title != "Senior Backend Engineer" {
		t.Errorf("Title after upsert = %q", got.Title)
	}
}

func TestIntegration_JobPosition_NotFound(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	_, err := db.GetJobPosition(context.Background(), "it_missing")
	if err == nil {
		t.Fatal("Expected error for missing job position")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("Expected NotFoundError, got %T", err)
	}
}

func TestIntegration_Resources_Roundtrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	resources := []types.LearningResource{
		{ID: "it_res_1", Title: "Algorithms Course", Type: types.ResourceCourse, Rating: 4.5, SkillIDs: []string{"algorithms"}},
		{ID: "it_res_2", Title: "SQL Tutorial", Type: types.ResourceTutorial, Rating: 4.0, SkillIDs: []string{"databases"}},
	}
	if err := db.UpsertResources(ctx, resources); err != nil {
		t.Fatalf("Failed to upsert resources: %v", err)
	}

	got, err := db.ListResources(ctx)
	if err != nil {
		t.Fatalf("Failed to list resources: %v", err)
	}

	found := 0
	for _, r := range got {
		if r.ID == "it_res_1" || r.ID == "it_res_2" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("Found %d of 2 inserted resources", found)
	}
}

func TestIntegration_LearningPath_Roundtrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	path := &types.LearningPath{
		ID:        uuid.NewString(),
		UserID:    "it_user",
		Job:       types.JobPosition{ID: "it_backend_engineer", Title: "Backend Engineer"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Goals: map[types.TermBucket][]types.LearningGoal{
			types.TermShort: {{SkillID: "algorithms", DisplayName: "Algorithms", Priority: 0.9, Term: types.TermShort}},
		},
		Summary: "Your overall assessment is good (average score 62).",
	}
	if err := db.SaveLearningPath(ctx, path); err != nil {
		t.Fatalf("Failed to save learning path: %v", err)
	}

	got, err := db.GetLearningPath(ctx, path.ID)
	if err != nil {
		t.Fatalf("Failed to get learning path: %v", err)
	}
	if got.Summary != path.Summary {
		t.Errorf("Summary = %q, want %q", got.Summary, path.Summary)
	}
	if len(got.Goals[types.TermShort]) != 1 {
		t.Errorf("Short-term goals = %d, want 1", len(got.Goals[types.TermShort]))
	}

	paths, err := db.ListLearningPaths(ctx, "it_user", 10)
	if err != nil {
		t.Fatalf("Failed to list learning paths: %v", err)
	}
	if len(paths) == 0 {
		t.Error("Expected at least one listed path")
	}
}
