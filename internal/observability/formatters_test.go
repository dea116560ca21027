package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillpath/internal/types"
)

func TestPrintImprovementAreas(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintImprovementAreas([]types.ImprovementArea{
		{SkillID: "algorithms", DisplayName: "Algorithms", CurrentScore: 40, Priority: 0.9},
		{SkillID: "databases", DisplayName: "Databases", CurrentScore: 55, Priority: 0.45},
	})
	output := buf.String()

	assert.Contains(t, output, "IMPROVEMENT AREAS")
	assert.Contains(t, output, "Algorithms")
	assert.Contains(t, output, "score 40")
	assert.Contains(t, output, "priority 0.90")
	assert.Contains(t, output, "Databases")
}

func TestPrintImprovementAreas_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintImprovementAreas(nil)

	assert.Empty(t, buf.String())
}

func TestPrintImprovementAreas_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	areas := make([]types.ImprovementArea, 8)
	for i := range areas {
		areas[i] = types.ImprovementArea{SkillID: "s", DisplayName: "Skill"}
	}
	p.PrintImprovementAreas(areas)

	assert.Contains(t, buf.String(), "and 3 more")
}

func TestPrintRankedResources(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedResources([]types.RankedResource{
		{
			Resource:   types.LearningResource{Title: "Algorithms Course", Type: types.ResourceCourse},
			Similarity: 0.7,
			SkillMatch: 0.43,
			Quality:    0.95,
			Score:      0.642,
			Enhancement: &types.Enhancement{
				Reason: "Targets your weakest skill.",
			},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "RANKED RESOURCES")
	assert.Contains(t, output, "Algorithms Course")
	assert.Contains(t, output, "score 0.642")
	assert.Contains(t, output, "Targets your weakest skill.")
}

func TestPrintLearningPath(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLearningPath(&types.LearningPath{
		Job: types.JobPosition{Title: "Backend Engineer"},
		Goals: map[types.TermBucket][]types.LearningGoal{
			types.TermShort: {{SkillID: "algorithms", DisplayName: "Algorithms", Term: types.TermShort}},
			types.TermLong:  {{SkillID: "system_design", DisplayName: "System Design", Term: types.TermLong}},
		},
		Summary: "Your overall assessment is good (average score 62).",
	})
	output := buf.String()

	assert.Contains(t, output, "LEARNING PATH")
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "1 short, 0 mid, 1 long")
	assert.Contains(t, output, "[short] Algorithms")
	assert.Contains(t, output, "[long] System Design")
}

func TestPrintLearningPath_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLearningPath(nil)

	assert.Empty(t, buf.String())
}

func TestPrintStage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStage("retrieve", "candidates retrieved", 10)
	p.PrintStage("query", "built", 0)

	assert.Contains(t, buf.String(), "retrieve")
	assert.Contains(t, buf.String(), "(10)")
	assert.NotContains(t, buf.String(), "(0)")
}
