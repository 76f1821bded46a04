package researchnode

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
	parserx "github.com/tanpawarit/stackaudit/audit/parser"
	promptx "github.com/tanpawarit/stackaudit/audit/prompt"
)

// WebResearch invokes the external research capability and parses what came
// back. Capability failures become structured failure results, never errors.
// A non-success result left by the API branch is replaced here.
func WebResearch(
	ctx context.Context,
	in *GraphState,
	capability contractx.ResearchCapability,
	timeout time.Duration,
	now func() time.Time,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Result != nil && in.Result.Success {
		return in, nil
	}

	startYear, endYear := in.DateRange.Years()
	brief := promptx.ResearchBrief(promptx.BriefParams{
		ToolName:  in.Tool.Name,
		ToolType:  in.Tool.Type,
		StartYear: startYear,
		EndYear:   endYear,
		Depth:     in.Depth,
	})

	invokeCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		invokeCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Info().Str("tool", in.Tool.Name).Str("depth", string(in.Depth)).Msg("researching via web")
	raw, err := capability.Invoke(invokeCtx, brief)
	if err != nil {
		log.Warn().Err(err).Str("tool", in.Tool.Name).Msg("web research failed")
		failure := contractx.Failure(in.Tool.Name, fmt.Sprintf("%v: %v", contractx.ErrCapabilityInvoke, err), now())
		failure.Source = contractx.SourceWebSearch
		failure.ToolType = in.Tool.Type
		in.Result = &failure
		return in, nil
	}

	updates := parserx.ParseUpdates(raw)
	log.Info().Str("tool", in.Tool.Name).Int("updates", len(updates)).Msg("web research complete")

	in.Result = &contractx.ResearchResult{
		Success:       true,
		Source:        contractx.SourceWebSearch,
		ToolName:      in.Tool.Name,
		ToolType:      in.Tool.Type,
		DateRange:     in.DateRange.String(),
		ResearchDepth: in.Depth,
		Updates:       updates,
		RawOutput:     raw,
		Timestamp:     now(),
	}
	return in, nil
}
