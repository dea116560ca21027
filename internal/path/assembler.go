// Package path assembles ranked recommendations into a learning path
// grouped by time horizon.
package path

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/pipeline"
	"github.com/jonathan/skillpath/internal/ranking"
	"github.com/jonathan/skillpath/internal/types"
)

// Assembler turns improvement areas into a complete learning path by
// invoking the recommendation pipeline once per area.
type Assembler struct {
	pipe   *pipeline.Pipeline
	tuning config.Tuning
}

// NewAssembler creates an Assembler over a pipeline.
func NewAssembler(pipe *pipeline.Pipeline, tuning config.Tuning) *Assembler {
	return &Assembler{
		pipe:   pipe,
		tuning: tuning.MergeWithDefaults(config.DefaultTuning()),
	}
}

// Options adjusts one Generate call.
type Options struct {
	UserID  string
	Filter  ranking.Filter
	Enhance bool
}

// Generate builds the learning path for the given job, assessment, and
// improvement areas. Per-area pipeline invocations are independent and run
// concurrently, bounded by the configured worker limit. Generate always
// returns a path; areas whose retrieval degraded simply carry fewer (or
// zero) resources.
func (a *Assembler) Generate(ctx context.Context, job *types.JobPosition, result *types.AssessmentResult, areas []types.ImprovementArea, opts Options) *types.LearningPath {
	goals := make([]types.LearningGoal, len(areas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.tuning.Concurrency)
	for i := range areas {
		g.Go(func() error {
			area := areas[i]
			resources := a.pipe.Recommend(gctx, pipeline.Request{
				Job:     job,
				Areas:   areas,
				Focus:   &area,
				Filter:  opts.Filter,
				K:       a.tuning.MaxPerGoal,
				Enhance: opts.Enhance,
			})
			goals[i] = types.LearningGoal{
				SkillID:     area.SkillID,
				DisplayName: area.DisplayName,
				Priority:    area.Priority,
				Term:        a.bucket(area.Priority),
				Resources:   resources,
			}
			return nil
		})
	}
	// Workers never return errors; recommendation is best-effort throughout.
	_ = g.Wait()

	grouped := map[types.TermBucket][]types.LearningGoal{}
	for _, goal := range goals {
		grouped[goal.Term] = append(grouped[goal.Term], goal)
	}
	for term := range grouped {
		bucket := grouped[term]
		sort.SliceStable(bucket, func(x, y int) bool {
			if bucket[x].Priority != bucket[y].Priority {
				return bucket[x].Priority > bucket[y].Priority
			}
			return bucket[x].SkillID < bucket[y].SkillID
		})
	}

	return &types.LearningPath{
		ID:        uuid.NewString(),
		UserID:    opts.UserID,
		Job:       *job,
		CreatedAt: time.Now().UTC(),
		Goals:     grouped,
		Summary:   Summarize(result, grouped),
	}
}

// bucket maps a priority to its term bucket using the configured thresholds.
func (a *Assembler) bucket(priority float64) types.TermBucket {
	switch {
	case priority >= a.tuning.ShortTermThreshold:
		return types.TermShort
	case priority >= a.tuning.MidTermThreshold:
		return types.TermMid
	default:
		return types.TermLong
	}
}

// Summarize produces the templated human-readable summary. It depends only
// on the assessment and the goal grouping, so it is available even when
// every retrieval stage degraded.
func Summarize(result *types.AssessmentResult, goals map[types.TermBucket][]types.LearningGoal) string {
	overall := 0.0
	if result != nil {
		overall = result.OverallScore()
	}

	tier := "needs focused work"
	switch {
	case overall >= 80:
		tier = "excellent"
	case overall >= 60:
		tier = "good"
	}

	return fmt.Sprintf(
		"Your overall assessment is %s (average score %.0f). Your learning path contains %d short-term, %d mid-term and %d long-term goals.",
		tier, overall,
		len(goals[types.TermShort]), len(goals[types.TermMid]), len(goals[types.TermLong]),
	)
}
