package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/types"
)

func newTestInterpreter() *Interpreter {
	return NewInterpreter(config.DefaultTuning(), nil)
}

func TestImprovementAreas_WeakRequiredSkillRanksFirst(t *testing.T) {
	job := &types.JobPosition{
		ID:    "backend_engineer",
		Title: "Backend Engineer",
		SkillWeights: map[string]float64{
			"algorithms": 0.8,
			"databases":  0.3,
		},
	}
	result := &types.AssessmentResult{
		Scores: map[string]float64{
			"algorithms": 40,
			"databases":  65,
		},
	}

	areas := newTestInterpreter().ImprovementAreas(result, job)
	require.NotEmpty(t, areas)

	first := areas[0]
	assert.Equal(t, "algorithms", first.SkillID)
	assert.Equal(t, 40.0, first.CurrentScore)
	// gap 30 at weight 0.8, normalized by the max possible gap of 70
	assert.InDelta(t, 30*0.8/70, first.Priority, 1e-9)
	assert.Positive(t, first.Priority)
}

func TestImprovementAreas_ExcludesCompetentSkills(t *testing.T) {
	job := &types.JobPosition{
		ID:           "job",
		SkillWeights: map[string]float64{"go": 1.0, "sql": 0.5},
	}
	result := &types.AssessmentResult{
		Scores: map[string]float64{"go": 85, "sql": 70, "testing": 30},
	}

	areas := newTestInterpreter().ImprovementAreas(result, job)
	for _, area := range areas {
		assert.Less(t, area.CurrentScore, 70.0, "skill %s should have been excluded", area.SkillID)
	}

	ids := make([]string, 0, len(areas))
	for _, area := range areas {
		ids = append(ids, area.SkillID)
	}
	assert.NotContains(t, ids, "go")
	assert.NotContains(t, ids, "sql")
	assert.Contains(t, ids, "testing")
}

func TestImprovementAreas_PrioritiesInUnitRange(t *testing.T) {
	job := &types.JobPosition{
		ID: "job",
		SkillWeights: map[string]float64{
			"a": 1.0, "b": 0.5, "c": 0.0,
		},
	}
	result := &types.AssessmentResult{
		Scores: map[string]float64{"a": 0, "b": 35, "d": 10},
	}

	areas := newTestInterpreter().ImprovementAreas(result, job)
	require.NotEmpty(t, areas)
	for _, area := range areas {
		assert.GreaterOrEqual(t, area.Priority, 0.0)
		assert.LessOrEqual(t, area.Priority, 1.0)
	}
}

func TestImprovementAreas_UnlistedSkillGetsGenericWeight(t *testing.T) {
	job := &types.JobPosition{
		ID:           "job",
		SkillWeights: map[string]float64{"go": 1.0},
	}
	result := &types.AssessmentResult{
		// Same score, but "go" carries weight 1.0 and "drawing" the generic 0.5
		Scores: map[string]float64{"go": 20, "drawing": 20},
	}

	areas := newTestInterpreter().ImprovementAreas(result, job)
	require.Len(t, areas, 2)
	assert.Equal(t, "go", areas[0].SkillID)
	assert.Equal(t, "drawing", areas[1].SkillID)
	assert.InDelta(t, areas[0].Priority*0.5, areas[1].Priority, 1e-9)
}

func TestImprovementAreas_UnassessedRequiredSkillCountsAsZero(t *testing.T) {
	job := &types.JobPosition{
		ID:           "job",
		SkillWeights: map[string]float64{"system_design": 0.9},
	}
	result := &types.AssessmentResult{Scores: map[string]float64{}}

	areas := newTestInterpreter().ImprovementAreas(result, job)
	require.Len(t, areas, 1)
	assert.Equal(t, "system_design", areas[0].SkillID)
	assert.Equal(t, 0.0, areas[0].CurrentScore)
	// Full gap (70) at weight 0.9
	assert.InDelta(t, 0.9, areas[0].Priority, 1e-9)
}

func TestImprovementAreas_TiesBrokenBySkillID(t *testing.T) {
	job := &types.JobPosition{
		ID:           "job",
		SkillWeights: map[string]float64{"zeta": 0.5, "alpha": 0.5},
	}
	result := &types.AssessmentResult{
		Scores: map[string]float64{"zeta": 30, "alpha": 30},
	}

	areas := newTestInterpreter().ImprovementAreas(result, job)
	require.Len(t, areas, 2)
	assert.Equal(t, "alpha", areas[0].SkillID)
	assert.Equal(t, "zeta", areas[1].SkillID)
}

func TestDisplayName(t *testing.T) {
	catalog := []types.Skill{{ID: "sys_design", Name: "System Design"}}
	interp := NewInterpreter(config.DefaultTuning(), catalog)

	tests := []struct {
		id   string
		want string
	}{
		{"sys_design", "System Design"},
		{"machine_learning", "Machine Learning"},
		{"sql", "SQL"},
		{"rest-api", "Rest API"},
		{"golang", "Go"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, interp.DisplayName(tt.id), "id %q", tt.id)
	}
}
