// Package types provides type definitions for structured data used throughout the skillpath system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Skill represents a single skill in the reference catalog
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	RelatedIDs  []string `json:"related_ids,omitempty"`
	Description string   `json:"description,omitempty"`
}

// JobPosition represents a target job with weighted skill requirements.
// SkillWeights maps skill ID to an importance weight in [0,1].
// Administrator-curated; read-only to the recommendation pipeline.
type JobPosition struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	SkillWeights map[string]float64 `json:"skill_weights" validate:"required,dive,gte=0,lte=1"`
}

// Weight returns the importance weight for a skill, or genericWeight when
// the job does not mention it. Unknown skills are treated as generically
// relevant rather than irrelevant.
func (j *JobPosition) Weight(skillID string, genericWeight float64) float64 {
	if w, ok := j.SkillWeights[skillID]; ok {
		return w
	}
	return genericWeight
}
