package ranking

import (
	"sort"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/corpus"
	"github.com/jonathan/skillpath/internal/types"
)

// Rank computes composite scores for the surviving candidates and sorts them
// descending. The sort is stable, so candidates with equal scores keep their
// retrieval order.
func Rank(
	candidates []corpus.Scored,
	job *types.JobPosition,
	areas []types.ImprovementArea,
	tuning config.Tuning,
) []types.RankedResource {
	tuning = tuning.MergeWithDefaults(config.DefaultTuning())
	if job == nil {
		job = &types.JobPosition{}
	}

	priorityBySkill := make(map[string]float64, len(areas))
	for _, area := range areas {
		priorityBySkill[area.SkillID] = area.Priority
	}

	ranked := make([]types.RankedResource, 0, len(candidates))
	for _, cand := range candidates {
		base := clamp01(cand.Similarity)
		skillMatch := skillMatchScore(cand.Resource, job, priorityBySkill, tuning)
		quality := qualityScore(cand.Resource.Rating)

		ranked = append(ranked, types.RankedResource{
			Resource:   cand.Resource,
			Similarity: base,
			SkillMatch: skillMatch,
			Quality:    quality,
			Score: tuning.SimilarityWeight*base +
				tuning.SkillMatchWeight*skillMatch +
				tuning.QualityWeight*quality,
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	return ranked
}

// skillMatchScore sums, over the resource's declared skills, a contribution
// for being job-required and a contribution for being a current weak area.
// Both can apply to the same skill. Capped at 1 so the composite stays a
// convex combination of unit-range terms.
func skillMatchScore(
	res types.LearningResource,
	job *types.JobPosition,
	priorityBySkill map[string]float64,
	tuning config.Tuning,
) float64 {
	score := 0.0
	for _, skillID := range res.SkillIDs {
		if w, ok := job.SkillWeights[skillID]; ok {
			score += tuning.JobSkillFactor * w
		}
		if p, ok := priorityBySkill[skillID]; ok {
			score += tuning.WeakAreaFactor * p
		}
	}
	return clamp01(score)
}

// qualityScore maps a 0-5 rating into [0.5,1]. Unrated resources floor at
// 0.5 so a missing rating never sinks an otherwise relevant result.
func qualityScore(rating float64) float64 {
	q := rating/5.0*0.5 + 0.5
	if q > 1 {
		q = 1
	}
	return q
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
