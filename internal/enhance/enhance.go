// Package enhance adds LLM-generated personalization to ranked resources.
// Enhancement is cosmetic: any failure substitutes a templated rationale and
// never fails the request.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/skillpath/internal/llm"
	"github.com/jonathan/skillpath/internal/prompts"
	"github.com/jonathan/skillpath/internal/types"
)

// weakAreasInPrompt caps how many improvement areas condition the prompt.
const weakAreasInPrompt = 3

// enhanceResponse represents the expected JSON response from the LLM.
type enhanceResponse struct {
	Reason          string `json:"reason"`
	ExpectedOutcome string `json:"expected_outcome"`
	EstimatedTime   string `json:"estimated_time"`
}

// Enhancer generates personalized rationales for recommended resources.
// A nil client disables generation entirely; every resource then gets the
// fallback rationale.
type Enhancer struct {
	client llm.Client
}

// NewEnhancer creates an Enhancer. client may be nil.
func NewEnhancer(client llm.Client) *Enhancer {
	return &Enhancer{client: client}
}

// Apply fills the Enhancement field of every resource in place. Failures of
// individual generations degrade to the fallback; the slice is always fully
// populated when Apply returns.
func (e *Enhancer) Apply(ctx context.Context, resources []types.RankedResource, job *types.JobPosition, areas []types.ImprovementArea) []types.RankedResource {
	for i := range resources {
		enhancement, err := e.enhanceOne(ctx, &resources[i].Resource, job, areas)
		if err != nil {
			enhancement = FallbackEnhancement(&resources[i].Resource)
		}
		resources[i].Enhancement = enhancement
	}
	return resources
}

func (e *Enhancer) enhanceOne(ctx context.Context, res *types.LearningResource, job *types.JobPosition, areas []types.ImprovementArea) (*types.Enhancement, error) {
	if e.client == nil {
		return nil, fmt.Errorf("no LLM client configured")
	}

	prompt, err := buildPrompt(res, job, areas)
	if err != nil {
		return nil, err
	}

	jsonResp, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	jsonResp = llm.CleanJSONBlock(jsonResp)

	var response enhanceResponse
	if err := json.Unmarshal([]byte(jsonResp), &response); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w (content: %s)", err, jsonResp)
	}
	if strings.TrimSpace(response.Reason) == "" {
		return nil, fmt.Errorf("LLM response missing reason")
	}

	return &types.Enhancement{
		Reason:          response.Reason,
		ExpectedOutcome: response.ExpectedOutcome,
		EstimatedTime:   response.EstimatedTime,
	}, nil
}

// FallbackEnhancement returns the generic rationale used whenever
// generation is unavailable or produces unusable output.
func FallbackEnhancement(res *types.LearningResource) *types.Enhancement {
	return &types.Enhancement{
		Reason:        "This resource covers knowledge related to your job and can help improve your skills.",
		EstimatedTime: fallbackTime(res.Commitment),
	}
}

func fallbackTime(commitment string) string {
	switch commitment {
	case types.TimeShort:
		return "a few hours"
	case types.TimeMedium:
		return "about a week"
	case types.TimeLong:
		return "several weeks"
	default:
		return ""
	}
}

// buildPrompt constructs the personalization prompt for one resource.
func buildPrompt(res *types.LearningResource, job *types.JobPosition, areas []types.ImprovementArea) (string, error) {
	template, err := prompts.Get("enhance.json", "personalize-resource")
	if err != nil {
		return "", err
	}

	if job == nil {
		job = &types.JobPosition{}
	}

	weak := make([]string, 0, weakAreasInPrompt)
	for i, area := range areas {
		if i >= weakAreasInPrompt {
			break
		}
		weak = append(weak, fmt.Sprintf("%s (score %.0f)", area.DisplayName, area.CurrentScore))
	}
	weakStr := strings.Join(weak, ", ")
	if weakStr == "" {
		weakStr = "none identified"
	}

	return prompts.Format(template, map[string]string{
		"JobTitle":    job.Title,
		"WeakAreas":   weakStr,
		"Title":       res.Title,
		"Type":        string(res.Type),
		"Description": res.Description,
	}), nil
}
