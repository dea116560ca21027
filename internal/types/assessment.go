// Package types provides type definitions for structured data used throughout the skillpath system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AssessmentResult represents per-skill interview assessment scores.
// Scores map skill ID to a current score in [0,100]. Supplied fresh for
// each request; never persisted by the recommendation subsystem.
type AssessmentResult struct {
	Scores   map[string]float64 `json:"scores" validate:"required,dive,gte=0,lte=100"`
	Feedback map[string]string  `json:"feedback,omitempty"`
}

// ImprovementArea represents a skill identified as below target proficiency
// for a job, with an urgency score. Derived per-request by the assessment
// interpreter and discarded after the response.
type ImprovementArea struct {
	SkillID      string  `json:"skill_id"`
	DisplayName  string  `json:"display_name"`
	CurrentScore float64 `json:"current_score"`
	// Priority is normalized to [0,1]; higher means more urgent.
	Priority float64 `json:"priority"`
}

// OverallScore returns the average of all assessment scores, or 0 when the
// assessment is empty.
func (a *AssessmentResult) OverallScore() float64 {
	if len(a.Scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range a.Scores {
		total += s
	}
	return total / float64(len(a.Scores))
}
