// Package types provides type definitions for structured data used throughout the skillpath system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// TermBucket is the coarse time horizon a learning goal is scheduled into
type TermBucket string

// Term buckets, ordered nearest first
const (
	TermShort TermBucket = "short"
	TermMid   TermBucket = "mid"
	TermLong  TermBucket = "long"
)

// LearningGoal represents one improvement area together with its recommended
// resources, ordered by descending ranking score.
type LearningGoal struct {
	SkillID     string           `json:"skill_id"`
	DisplayName string           `json:"display_name"`
	Priority    float64          `json:"priority"`
	Term        TermBucket       `json:"term"`
	Resources   []RankedResource `json:"resources"`
}

// LearningPath represents the final recommendation output for one request.
// Created once per request and never mutated afterward.
type LearningPath struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id,omitempty"`
	Job       JobPosition `json:"job"`
	CreatedAt time.Time   `json:"created_at"`
	// Goals grouped by term bucket; each bucket sorted by descending priority.
	Goals   map[TermBucket][]LearningGoal `json:"goals"`
	Summary string                        `json:"summary"`
}

// GoalCount returns the number of goals in the given bucket.
func (p *LearningPath) GoalCount(term TermBucket) int {
	return len(p.Goals[term])
}

// TotalGoals returns the number of goals across all buckets.
func (p *LearningPath) TotalGoals() int {
	total := 0
	for _, goals := range p.Goals {
		total += len(goals)
	}
	return total
}
