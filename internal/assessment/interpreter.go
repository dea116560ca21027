// Package assessment turns raw per-skill assessment scores into a ranked
// list of improvement areas for a target job.
package assessment

import (
	"sort"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/types"
)

// Interpreter derives improvement areas from an assessment and a job position.
type Interpreter struct {
	tuning  config.Tuning
	catalog map[string]types.Skill
}

// NewInterpreter creates an Interpreter. The skill catalog is optional and
// only used to resolve display names; a nil or partial catalog falls back to
// humanized skill IDs.
func NewInterpreter(tuning config.Tuning, catalog []types.Skill) *Interpreter {
	byID := make(map[string]types.Skill, len(catalog))
	for _, s := range catalog {
		byID[s.ID] = s
	}
	return &Interpreter{
		tuning:  tuning.MergeWithDefaults(config.DefaultTuning()),
		catalog: byID,
	}
}

// ImprovementAreas returns the skills below target proficiency for the job,
// ordered by descending priority. Priority is (gap x job weight) normalized
// to [0,1]. Skills at or above the competence threshold are excluded. Skills
// the job requires but the assessment never scored count as fully unproven
// (current score 0). Ties are broken by skill ID for determinism.
func (i *Interpreter) ImprovementAreas(result *types.AssessmentResult, job *types.JobPosition) []types.ImprovementArea {
	// Union of job-required and assessed skills
	skillIDs := make(map[string]bool)
	for id := range job.SkillWeights {
		skillIDs[id] = true
	}
	if result != nil {
		for id := range result.Scores {
			skillIDs[id] = true
		}
	}

	// Maximum possible gap x weight, used to normalize priorities
	maxRaw := i.tuning.TargetLevel * 1.0

	areas := make([]types.ImprovementArea, 0, len(skillIDs))
	for id := range skillIDs {
		score := 0.0
		if result != nil {
			score = result.Scores[id]
		}
		if score >= i.tuning.CompetenceThreshold {
			continue
		}

		gap := i.tuning.TargetLevel - score
		if gap < 0 {
			gap = 0
		}

		weight := job.Weight(id, i.tuning.GenericWeight)
		priority := 0.0
		if maxRaw > 0 {
			priority = gap * weight / maxRaw
		}
		if priority > 1 {
			priority = 1
		}
		if priority < 0 {
			priority = 0
		}

		areas = append(areas, types.ImprovementArea{
			SkillID:      id,
			DisplayName:  i.DisplayName(id),
			CurrentScore: score,
			Priority:     priority,
		})
	}

	sort.Slice(areas, func(a, b int) bool {
		if areas[a].Priority != areas[b].Priority {
			return areas[a].Priority > areas[b].Priority
		}
		return areas[a].SkillID < areas[b].SkillID
	})

	return areas
}
