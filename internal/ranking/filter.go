// Package ranking provides the filtering, weighted re-ranking and diversity
// re-selection stages of the recommendation pipeline.
package ranking

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/skillpath/internal/corpus"
	"github.com/jonathan/skillpath/internal/types"
)

// Filter restricts which retrieved candidates survive into ranking.
// Fields are explicit and typed; decoding rejects unknown keys so a
// misspelled filter fails loudly instead of silently matching everything.
type Filter struct {
	// ResourceTypes is an allow-list; empty means all types pass.
	ResourceTypes []types.ResourceType `json:"resource_types,omitempty"`
	// Difficulty restricts to one difficulty level; empty passes all.
	Difficulty string `json:"difficulty,omitempty"`
	// Term is the requested time horizon. It shapes the retrieval query but
	// is not a hard filter.
	Term types.TermBucket `json:"term,omitempty"`
}

// ParseFilter decodes a Filter from JSON, rejecting unknown keys.
func ParseFilter(data []byte) (Filter, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var f Filter
	if err := dec.Decode(&f); err != nil {
		return Filter{}, fmt.Errorf("failed to parse filter JSON: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// Validate checks enum fields against their known values.
func (f Filter) Validate() error {
	valid := map[types.ResourceType]bool{
		types.ResourceArticle: true, types.ResourceVideo: true,
		types.ResourceCourse: true, types.ResourceTutorial: true,
		types.ResourceProject: true, types.ResourceBook: true,
		types.ResourceCommunity: true, types.ResourceTool: true,
		types.ResourceOther: true,
	}
	for _, rt := range f.ResourceTypes {
		if !valid[rt] {
			return fmt.Errorf("filter error: unknown resource type %q", rt)
		}
	}

	switch f.Difficulty {
	case "", types.DifficultyBeginner, types.DifficultyIntermediate, types.DifficultyAdvanced:
	default:
		return fmt.Errorf("filter error: unknown difficulty %q", f.Difficulty)
	}

	switch f.Term {
	case "", types.TermShort, types.TermMid, types.TermLong:
	default:
		return fmt.Errorf("filter error: unknown term %q", f.Term)
	}

	return nil
}

func (f Filter) allowsType(rt types.ResourceType) bool {
	if len(f.ResourceTypes) == 0 {
		return true
	}
	for _, allowed := range f.ResourceTypes {
		if allowed == rt {
			return true
		}
	}
	return false
}

// Apply drops candidates that fail the type allow-list, the difficulty
// filter, or declare a job-relevance list that does not include jobID.
// Resources with an empty job-relevance list are universally applicable and
// always pass that check.
func (f Filter) Apply(candidates []corpus.Scored, jobID string) []corpus.Scored {
	kept := make([]corpus.Scored, 0, len(candidates))
	for _, cand := range candidates {
		res := cand.Resource

		if !f.allowsType(res.Type) {
			continue
		}
		if f.Difficulty != "" && res.Difficulty != "" && res.Difficulty != f.Difficulty {
			continue
		}
		if len(res.RelevantJobIDs) > 0 && !containsString(res.RelevantJobIDs, jobID) {
			continue
		}
		kept = append(kept, cand)
	}
	return kept
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
