package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/types"
)

func rankedItem(id string, rt types.ResourceType, skills []string, score float64) types.RankedResource {
	return types.RankedResource{
		Resource: types.LearningResource{ID: id, Title: id, Type: rt, SkillIDs: skills},
		Score:    score,
	}
}

func TestDiversify_CapsResourceType(t *testing.T) {
	var ranked []types.RankedResource
	for i := 0; i < 6; i++ {
		ranked = append(ranked, rankedItem(
			fmt.Sprintf("video_%d", i), types.ResourceVideo,
			[]string{fmt.Sprintf("skill_%d", i)}, 1.0-float64(i)*0.1,
		))
	}

	kept := Diversify(ranked, config.DefaultTuning())
	count := 0
	for _, rr := range kept {
		if rr.Resource.Type == types.ResourceVideo {
			count++
		}
	}
	assert.LessOrEqual(t, count, 3)
}

func TestDiversify_CapsSkillCoverage(t *testing.T) {
	var ranked []types.RankedResource
	rts := []types.ResourceType{
		types.ResourceArticle, types.ResourceVideo, types.ResourceCourse,
		types.ResourceBook, types.ResourceTutorial, types.ResourceProject,
	}
	for i := 0; i < 6; i++ {
		ranked = append(ranked, rankedItem(
			fmt.Sprintf("r_%d", i), rts[i], []string{"algorithms"}, 1.0-float64(i)*0.1,
		))
	}

	kept := Diversify(ranked, config.DefaultTuning())
	covering := 0
	for _, rr := range kept {
		for _, s := range rr.Resource.SkillIDs {
			if s == "algorithms" {
				covering++
			}
		}
	}
	// Backfill may exceed the cap only to reach the minimum floor of 3
	assert.LessOrEqual(t, covering, 3)
}

func TestDiversify_KeepsDescendingScoreOrder(t *testing.T) {
	var ranked []types.RankedResource
	for i := 0; i < 8; i++ {
		rt := types.ResourceVideo
		if i%2 == 0 {
			rt = types.ResourceArticle
		}
		ranked = append(ranked, rankedItem(
			fmt.Sprintf("r_%d", i), rt, []string{fmt.Sprintf("s_%d", i/2)}, 1.0-float64(i)*0.05,
		))
	}

	kept := Diversify(ranked, config.DefaultTuning())
	for i := 1; i < len(kept); i++ {
		assert.GreaterOrEqual(t, kept[i-1].Score, kept[i].Score)
	}
}

func TestDiversify_BackfillReachesMinimum(t *testing.T) {
	// Five resources, all the same type and skill: caps alone keep only
	// min(TypeCap, SkillCap) = 2, which is below the floor of 3.
	var ranked []types.RankedResource
	for i := 0; i < 5; i++ {
		ranked = append(ranked, rankedItem(
			fmt.Sprintf("r_%d", i), types.ResourceVideo, []string{"algorithms"}, 1.0-float64(i)*0.1,
		))
	}

	kept := Diversify(ranked, config.DefaultTuning())
	assert.GreaterOrEqual(t, len(kept), 3)
	assert.LessOrEqual(t, len(kept), len(ranked))

	for i := 1; i < len(kept); i++ {
		assert.GreaterOrEqual(t, kept[i-1].Score, kept[i].Score)
	}
}

func TestDiversify_NoBackfillWhenEnoughSurvive(t *testing.T) {
	ranked := []types.RankedResource{
		rankedItem("a", types.ResourceArticle, []string{"s1"}, 0.9),
		rankedItem("b", types.ResourceVideo, []string{"s2"}, 0.8),
		rankedItem("c", types.ResourceCourse, []string{"s3"}, 0.7),
		rankedItem("d", types.ResourceBook, []string{"s4"}, 0.6),
	}

	kept := Diversify(ranked, config.DefaultTuning())
	require.Len(t, kept, 4)
}

func TestDiversify_EmptyInput(t *testing.T) {
	assert.Empty(t, Diversify(nil, config.DefaultTuning()))
}
