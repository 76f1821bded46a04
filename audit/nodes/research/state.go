// Package researchnode holds the per-tool research pipeline nodes wired
// together by the researcher service graph.
package researchnode

import (
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

// GraphInput is one per-tool research request.
type GraphInput struct {
	Tool      contractx.Tool
	DateRange contractx.DateRange
	Depth     contractx.ResearchDepth
}

// GraphState flows through the pipeline. Cached is set on a cache hit and
// short-circuits everything else; Result is the outcome produced by the
// registry or web path and is what gets persisted.
type GraphState struct {
	Tool      contractx.Tool
	DateRange contractx.DateRange
	Depth     contractx.ResearchDepth

	Cached *contractx.ResearchResult
	Result *contractx.ResearchResult
}
