package pipeline

import (
	"context"

	"github.com/jonathan/skillpath/internal/config"
	"github.com/jonathan/skillpath/internal/corpus"
	"github.com/jonathan/skillpath/internal/enhance"
	"github.com/jonathan/skillpath/internal/ranking"
	"github.com/jonathan/skillpath/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Request holds the inputs for one retrieval-ranking invocation.
type Request struct {
	Job *types.JobPosition
	// Areas are all current improvement areas; they drive the skill-match
	// sub-score.
	Areas []types.ImprovementArea
	// Focus, when set, is the single improvement area the query targets.
	// Nil means the query covers all areas.
	Focus *types.ImprovementArea
	// Query is optional free text appended to the constructed query.
	Query  string
	Filter ranking.Filter
	// K is the desired result count; the pipeline retrieves more and trims
	// back after diversification.
	K int
	// Enhance enables the LLM personalization stage.
	Enhance bool
}

// Pipeline runs the staged recommendation algorithm: query construction,
// candidate retrieval, filtering, weighted ranking, diversification, and
// optional enhancement. Every stage degrades rather than fails; Recommend
// never returns an error.
type Pipeline struct {
	index    *corpus.Index
	enhancer *enhance.Enhancer
	tuning   config.Tuning

	// OnProgress, when set, receives stage-by-stage updates.
	OnProgress ProgressCallback
}

// New builds a Pipeline over an index. enhancer may be nil to disable the
// enhancement stage regardless of per-request settings.
func New(index *corpus.Index, enhancer *enhance.Enhancer, tuning config.Tuning) *Pipeline {
	return &Pipeline{
		index:    index,
		enhancer: enhancer,
		tuning:   tuning.MergeWithDefaults(config.DefaultTuning()),
	}
}

// Recommend executes all stages for one request and returns at most K ranked
// resources. A degraded retrieval (dead embedding service, empty index)
// still produces a best-effort result.
func (p *Pipeline) Recommend(ctx context.Context, req Request) []types.RankedResource {
	if req.K <= 0 {
		req.K = p.tuning.MaxPerGoal
	}

	queryAreas := req.Areas
	if req.Focus != nil {
		queryAreas = []types.ImprovementArea{*req.Focus}
	}
	query := BuildQuery(req.Job, queryAreas, req.Query, req.Filter.Term, req.Filter.ResourceTypes)
	p.progress("query", query, 0)

	// Retrieve with headroom for the filtering stages
	limit := p.tuning.RetrievalFactor * req.K
	candidates := p.index.Search(ctx, query, limit)
	if len(candidates) == 0 {
		// Semantic search degraded to nothing; fall back to scoring the
		// whole corpus with a neutral similarity so the request still
		// gets best-effort recommendations.
		candidates = p.index.All(p.tuning.DefaultBase)
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
	}
	p.progress("retrieve", "candidates retrieved", len(candidates))

	jobID := ""
	if req.Job != nil {
		jobID = req.Job.ID
	}
	candidates = req.Filter.Apply(candidates, jobID)
	p.progress("filter", "candidates after filtering", len(candidates))

	ranked := ranking.Rank(candidates, req.Job, req.Areas, p.tuning)
	ranked = ranking.Diversify(ranked, p.tuning)
	if len(ranked) > req.K {
		ranked = ranked[:req.K]
	}
	p.progress("rank", "resources selected", len(ranked))

	if req.Enhance && p.enhancer != nil {
		ranked = p.enhancer.Apply(ctx, ranked, req.Job, req.Areas)
		p.progress("enhance", "resources personalized", len(ranked))
	}

	return ranked
}

func (p *Pipeline) progress(stage, message string, count int) {
	if p.OnProgress != nil {
		p.OnProgress(ProgressEvent{Stage: stage, Message: message, Count: count})
	}
}
