package ranking

import (
	"sort"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/types"
)

// Diversify walks the ranked list in order, greedily keeping a candidate
// unless it would push any single resource type past TypeCap or any single
// covered skill past SkillCap. If fewer than MinDiversified survive and more
// candidates exist, the caps are relaxed and the list is backfilled from the
// original ranking (skipping items already chosen) until half of the
// pre-diversity count is reached, never exceeding the original count.
//
// Kept items stay in ranking order, so the sorted invariant holds after
// diversification.
func Diversify(ranked []types.RankedResource, tuning config.Tuning) []types.RankedResource {
	tuning = tuning.MergeWithDefaults(config.DefaultTuning())

	typeCounts := make(map[types.ResourceType]int)
	skillCounts := make(map[string]int)
	chosen := make(map[string]bool, len(ranked))

	kept := make([]types.RankedResource, 0, len(ranked))
	for _, rr := range ranked {
		if exceedsCaps(rr.Resource, typeCounts, skillCounts, tuning) {
			continue
		}
		typeCounts[rr.Resource.Type]++
		for _, skillID := range rr.Resource.SkillIDs {
			skillCounts[skillID]++
		}
		chosen[rr.Resource.ID] = true
		kept = append(kept, rr)
	}

	if len(kept) >= tuning.MinDiversified || len(kept) == len(ranked) {
		return kept
	}

	// Backfill floor: half of the candidates that entered diversification,
	// bounded by the original count.
	target := (len(ranked) + 1) / 2
	if target < tuning.MinDiversified {
		target = tuning.MinDiversified
	}
	if target > len(ranked) {
		target = len(ranked)
	}

	for _, rr := range ranked {
		if len(kept) >= target {
			break
		}
		if chosen[rr.Resource.ID] {
			continue
		}
		chosen[rr.Resource.ID] = true
		kept = append(kept, rr)
	}

	// Backfilled items land at the end; restore descending score order.
	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].Score > kept[b].Score
	})

	return kept
}

func exceedsCaps(
	res types.LearningResource,
	typeCounts map[types.ResourceType]int,
	skillCounts map[string]int,
	tuning config.Tuning,
) bool {
	if typeCounts[res.Type]+1 > tuning.TypeCap {
		return true
	}
	for _, skillID := range res.SkillIDs {
		if skillCounts[skillID]+1 > tuning.SkillCap {
			return true
		}
	}
	return false
}
