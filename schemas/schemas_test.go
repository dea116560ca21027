package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillpath/internal/schemas"
)

var schemaFiles = []string{
	"common.schema.json",
	"improvement_areas.schema.json",
	"learning_path.schema.json",
	"corpus.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_DeclareDraft(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))

			assert.Contains(t, schemaObj, "$schema")
			assert.Contains(t, schemaObj, "$id")
		})
	}
}

func TestImprovementAreasSchema_AcceptsValidDocument(t *testing.T) {
	doc := `[
		{"skill_id": "algorithms", "display_name": "Algorithms", "current_score": 40, "priority": 0.9},
		{"skill_id": "databases", "display_name": "Databases", "current_score": 55, "priority": 0.45}
	]`

	tmp := filepath.Join(t.TempDir(), "areas.json")
	require.NoError(t, os.WriteFile(tmp, []byte(doc), 0o644))

	err := schemas.ValidateJSON("improvement_areas.schema.json", tmp)
	assert.NoError(t, err)
}

func TestImprovementAreasSchema_RejectsOutOfRangePriority(t *testing.T) {
	doc := `[{"skill_id": "algorithms", "display_name": "Algorithms", "current_score": 40, "priority": 1.5}]`

	tmp := filepath.Join(t.TempDir(), "areas.json")
	require.NoError(t, os.WriteFile(tmp, []byte(doc), 0o644))

	err := schemas.ValidateJSON("improvement_areas.schema.json", tmp)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestLearningPathSchema_AcceptsValidDocument(t *testing.T) {
	doc := `{
		"id": "lp-1",
		"user_id": "u1",
		"job": {"id": "backend_engineer", "title": "Backend Engineer", "skill_weights": {"algorithms": 0.8}},
		"created_at": "2026-08-31T12:00:00Z",
		"goals": {
			"short": [
				{
					"skill_id": "algorithms",
					"display_name": "Algorithms",
					"priority": 0.9,
					"term": "short",
					"resources": [
						{
							"resource": {"id": "r1", "title": "Algorithms Course", "type": "course", "rating": 4.5},
							"similarity": 0.7,
							"skill_match": 0.5,
							"quality": 0.95,
							"score": 0.67,
							"enhancement": {"reason": "Targets your weakest skill."}
						}
					]
				}
			]
		},
		"summary": "Your overall assessment is good (average score 62)."
	}`

	tmp := filepath.Join(t.TempDir(), "path.json")
	require.NoError(t, os.WriteFile(tmp, []byte(doc), 0o644))

	err := schemas.ValidateJSON("learning_path.schema.json", tmp)
	assert.NoError(t, err)
}

func TestLearningPathSchema_RejectsUnknownResourceType(t *testing.T) {
	doc := `{
		"id": "lp-1",
		"job": {"id": "be", "title": "BE", "skill_weights": {}},
		"created_at": "2026-08-31T12:00:00Z",
		"goals": {
			"short": [
				{
					"skill_id": "algorithms",
					"display_name": "Algorithms",
					"priority": 0.9,
					"term": "short",
					"resources": [
						{
							"resource": {"id": "r1", "title": "X", "type": "podcast", "rating": 4.0},
							"similarity": 0.7, "skill_match": 0.5, "quality": 0.9, "score": 0.6
						}
					]
				}
			]
		},
		"summary": "s"
	}`

	tmp := filepath.Join(t.TempDir(), "path.json")
	require.NoError(t, os.WriteFile(tmp, []byte(doc), 0o644))

	err := schemas.ValidateJSON("learning_path.schema.json", tmp)
	require.Error(t, err)
}

func TestCorpusSchema_AcceptsRepositoryFixture(t *testing.T) {
	err := schemas.ValidateJSON("corpus.schema.json", filepath.Join("..", "testdata", "corpus.json"))
	assert.NoError(t, err)
}
