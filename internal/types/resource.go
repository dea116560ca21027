// Package types provides type definitions for structured data used throughout the skillpath system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResourceType classifies a learning resource
type ResourceType string

// Supported resource types
const (
	ResourceArticle   ResourceType = "article"
	ResourceVideo     ResourceType = "video"
	ResourceCourse    ResourceType = "course"
	ResourceTutorial  ResourceType = "tutorial"
	ResourceProject   ResourceType = "project"
	ResourceBook      ResourceType = "book"
	ResourceCommunity ResourceType = "community"
	ResourceTool      ResourceType = "tool"
	ResourceOther     ResourceType = "other"
)

// Difficulty levels for learning resources
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Time commitment levels for learning resources
const (
	TimeShort  = "short"
	TimeMedium = "medium"
	TimeLong   = "long"
)

// LearningResource represents one entry of the static learning corpus.
// Loaded at startup; read-only during a request.
type LearningResource struct {
	ID          string       `json:"id" validate:"required"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description,omitempty"`
	Type        ResourceType `json:"type" validate:"required,oneof=article video course tutorial project book community tool other"`
	URL         string       `json:"url,omitempty" validate:"omitempty,url"`
	Difficulty  string       `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Commitment  string       `json:"time_commitment,omitempty" validate:"omitempty,oneof=short medium long"`
	Tags        []string     `json:"tags,omitempty"`
	SkillIDs    []string     `json:"skill_ids,omitempty"`
	Rating      float64      `json:"rating" validate:"gte=0,lte=5"`
	// RelevantJobIDs restricts the resource to specific jobs. An empty list
	// means universally applicable.
	RelevantJobIDs []string `json:"relevant_job_ids,omitempty"`
}

// SearchText returns the text used to embed the resource for semantic search.
func (r *LearningResource) SearchText() string {
	parts := []string{r.Title}
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	if len(r.Tags) > 0 {
		parts = append(parts, strings.Join(r.Tags, " "))
	}
	if len(r.SkillIDs) > 0 {
		parts = append(parts, strings.Join(r.SkillIDs, " "))
	}
	return strings.Join(parts, " ")
}

// Enhancement holds the optional LLM-generated personalization for a ranked
// resource. All fields fall back to templated text when generation fails.
type Enhancement struct {
	Reason          string `json:"reason"`
	ExpectedOutcome string `json:"expected_outcome,omitempty"`
	EstimatedTime   string `json:"estimated_time,omitempty"`
}

// RankedResource represents a learning resource with computed ranking scores.
// Ephemeral, created per query.
type RankedResource struct {
	Resource LearningResource `json:"resource"`
	// Similarity is the raw semantic similarity from retrieval.
	Similarity float64 `json:"similarity"`
	// SkillMatch reflects overlap with job-required skills and current weak areas.
	SkillMatch float64 `json:"skill_match"`
	// Quality is derived from the resource rating, floored at 0.5.
	Quality float64 `json:"quality"`
	// Score is the composite ranking score, a convex combination of the
	// three sub-scores above.
	Score       float64      `json:"score"`
	Enhancement *Enhancement `json:"enhancement,omitempty"`
}
