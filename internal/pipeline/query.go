// Package pipeline provides the high-level orchestration for the
// retrieval-ranking recommendation process.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/skillpath/internal/types"
)

// termHints maps a requested time horizon to a natural-language retrieval hint.
var termHints = map[types.TermBucket]string{
	types.TermShort: "quick resources for short-term improvement",
	types.TermMid:   "structured resources for mid-term skill building",
	types.TermLong:  "in-depth resources for long-term mastery",
}

// BuildQuery assembles the retrieval query in fixed order: job title, weak
// skills with scores, the caller's free-text query, a time-horizon hint, and
// a resource-type hint. Empty components are omitted.
func BuildQuery(job *types.JobPosition, areas []types.ImprovementArea, freeText string, term types.TermBucket, resourceTypes []types.ResourceType) string {
	var parts []string

	if job != nil && job.Title != "" {
		parts = append(parts, job.Title)
	}

	if len(areas) > 0 {
		skills := make([]string, 0, len(areas))
		for _, area := range areas {
			skills = append(skills, fmt.Sprintf("%s (score %.0f)", area.DisplayName, area.CurrentScore))
		}
		parts = append(parts, strings.Join(skills, ", "))
	}

	if freeText = strings.TrimSpace(freeText); freeText != "" {
		parts = append(parts, freeText)
	}

	if hint, ok := termHints[term]; ok {
		parts = append(parts, hint)
	}

	if len(resourceTypes) > 0 {
		names := make([]string, len(resourceTypes))
		for i, rt := range resourceTypes {
			names[i] = string(rt)
		}
		parts = append(parts, "resource types: "+strings.Join(names, ", "))
	}

	return strings.Join(parts, " ")
}
