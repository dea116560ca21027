// Package config provides configuration loading and validation for the CLI.
package config

import "fmt"

// Tuning holds the scoring and selection knobs of the recommendation pipeline.
// The defaults mirror the tuning the system shipped with; none of them are
// derived from first principles, which is exactly why they are configuration
// rather than constants.
type Tuning struct {
	// Assessment interpretation
	CompetenceThreshold float64 `json:"competence_threshold,omitempty"` // scores at or above are not improvement areas
	TargetLevel         float64 `json:"target_level,omitempty"`         // assumed required level when the job doesn't say
	GenericWeight       float64 `json:"generic_weight,omitempty"`       // weight for skills the job doesn't mention

	// Term bucket thresholds on priority
	ShortTermThreshold float64 `json:"short_term_threshold,omitempty"`
	MidTermThreshold   float64 `json:"mid_term_threshold,omitempty"`

	// Composite ranking weights; must sum to 1
	SimilarityWeight float64 `json:"similarity_weight,omitempty"`
	SkillMatchWeight float64 `json:"skill_match_weight,omitempty"`
	QualityWeight    float64 `json:"quality_weight,omitempty"`

	// Per-skill contribution inside the skill-match sub-score
	JobSkillFactor  float64 `json:"job_skill_factor,omitempty"`  // applied to the job's required weight
	WeakAreaFactor  float64 `json:"weak_area_factor,omitempty"`  // applied to the improvement priority
	DefaultBase     float64 `json:"default_base,omitempty"`      // similarity used when retrieval produced none
	TypeCap         int     `json:"type_cap,omitempty"`          // max resources of one type after diversification
	SkillCap        int     `json:"skill_cap,omitempty"`         // max resources covering one skill
	MinDiversified  int     `json:"min_diversified,omitempty"`   // floor below which backfill kicks in
	MaxPerGoal      int     `json:"max_per_goal,omitempty"`      // resource cap per learning goal
	RetrievalFactor int     `json:"retrieval_factor,omitempty"`  // candidates fetched = factor * k
	EmbeddingDim    int     `json:"embedding_dim,omitempty"`     // dimensionality of embedding vectors
	BatchSize       int     `json:"batch_size,omitempty"`        // texts per embedding request
	BatchDelayMs    int     `json:"batch_delay_ms,omitempty"`    // pause between embedding batches
	Concurrency     int     `json:"concurrency,omitempty"`       // parallel per-skill pipeline runs
	CacheMaxEntries int     `json:"cache_max_entries,omitempty"` // embedding cache capacity
	CacheTTLMinutes int     `json:"cache_ttl_minutes,omitempty"` // embedding cache entry lifetime
}

// DefaultTuning returns the tuning the pipeline ships with.
func DefaultTuning() Tuning {
	return Tuning{
		CompetenceThreshold: 70,
		TargetLevel:         70,
		GenericWeight:       0.5,
		ShortTermThreshold:  0.8,
		MidTermThreshold:    0.5,
		SimilarityWeight:    0.4,
		SkillMatchWeight:    0.4,
		QualityWeight:       0.2,
		JobSkillFactor:      0.2,
		WeakAreaFactor:      0.3,
		DefaultBase:         0.5,
		TypeCap:             3,
		SkillCap:            2,
		MinDiversified:      3,
		MaxPerGoal:          5,
		RetrievalFactor:     2,
		EmbeddingDim:        1536,
		BatchSize:           16,
		BatchDelayMs:        200,
		Concurrency:         3,
		CacheMaxEntries:     4096,
		CacheTTLMinutes:     60,
	}
}

// MergeWithDefaults fills zero-valued fields from defaults.
func (t Tuning) MergeWithDefaults(defaults Tuning) Tuning {
	if (defaults == Tuning{}) {
		defaults = DefaultTuning()
	}
	result := t
	if result.CompetenceThreshold == 0 {
		result.CompetenceThreshold = defaults.CompetenceThreshold
	}
	if result.TargetLevel == 0 {
		result.TargetLevel = defaults.TargetLevel
	}
	if result.GenericWeight == 0 {
		result.GenericWeight = defaults.GenericWeight
	}
	if result.ShortTermThreshold == 0 {
		result.ShortTermThreshold = defaults.ShortTermThreshold
	}
	if result.MidTermThreshold == 0 {
		result.MidTermThreshold = defaults.MidTermThreshold
	}
	if result.SimilarityWeight == 0 {
		result.SimilarityWeight = defaults.SimilarityWeight
	}
	if result.SkillMatchWeight == 0 {
		result.SkillMatchWeight = defaults.SkillMatchWeight
	}
	if result.QualityWeight == 0 {
		result.QualityWeight = defaults.QualityWeight
	}
	if result.JobSkillFactor == 0 {
		result.JobSkillFactor = defaults.JobSkillFactor
	}
	if result.WeakAreaFactor == 0 {
		result.WeakAreaFactor = defaults.WeakAreaFactor
	}
	if result.DefaultBase == 0 {
		result.DefaultBase = defaults.DefaultBase
	}
	if result.TypeCap == 0 {
		result.TypeCap = defaults.TypeCap
	}
	if result.SkillCap == 0 {
		result.SkillCap = defaults.SkillCap
	}
	if result.MinDiversified == 0 {
		result.MinDiversified = defaults.MinDiversified
	}
	if result.MaxPerGoal == 0 {
		result.MaxPerGoal = defaults.MaxPerGoal
	}
	if result.RetrievalFactor == 0 {
		result.RetrievalFactor = defaults.RetrievalFactor
	}
	if result.EmbeddingDim == 0 {
		result.EmbeddingDim = defaults.EmbeddingDim
	}
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.BatchDelayMs == 0 {
		result.BatchDelayMs = defaults.BatchDelayMs
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.CacheMaxEntries == 0 {
		result.CacheMaxEntries = defaults.CacheMaxEntries
	}
	if result.CacheTTLMinutes == 0 {
		result.CacheTTLMinutes = defaults.CacheTTLMinutes
	}
	return result
}

// Validate checks ranges and that the composite weights form a convex combination.
func (t Tuning) Validate() error {
	merged := t.MergeWithDefaults(DefaultTuning())

	if merged.CompetenceThreshold < 0 || merged.CompetenceThreshold > 100 {
		return fmt.Errorf("tuning error: 'competence_threshold' must be in [0,100]")
	}
	if merged.TargetLevel < 0 || merged.TargetLevel > 100 {
		return fmt.Errorf("tuning error: 'target_level' must be in [0,100]")
	}
	if merged.GenericWeight < 0 || merged.GenericWeight > 1 {
		return fmt.Errorf("tuning error: 'generic_weight' must be in [0,1]")
	}
	if merged.MidTermThreshold > merged.ShortTermThreshold {
		return fmt.Errorf("tuning error: 'mid_term_threshold' must not exceed 'short_term_threshold'")
	}

	sum := merged.SimilarityWeight + merged.SkillMatchWeight + merged.QualityWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("tuning error: composite weights must sum to 1, got %.3f", sum)
	}

	for name, v := range map[string]int{
		"type_cap":         merged.TypeCap,
		"skill_cap":        merged.SkillCap,
		"max_per_goal":     merged.MaxPerGoal,
		"embedding_dim":    merged.EmbeddingDim,
		"batch_size":       merged.BatchSize,
		"concurrency":      merged.Concurrency,
		"retrieval_factor": merged.RetrievalFactor,
	} {
		if v <= 0 {
			return fmt.Errorf("tuning error: '%s' must be positive", name)
		}
	}

	return nil
}
