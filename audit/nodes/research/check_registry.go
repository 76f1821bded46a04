package researchnode

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
	registryx "github.com/tanpawarit/stackaudit/audit/registry"
)

const apiPlaceholderNote = "API integration not yet implemented - use web research"

// CheckRegistry consults the endpoint table. An endpoint without auth yields
// a terminal API-sourced result. Any non-success outcome of the API branch
// (auth required, blank endpoint) is logged and the flow falls through to
// web research.
func CheckRegistry(in *GraphState, reg *registryx.Registry, now func() time.Time) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	desc, ok := reg.Lookup(in.Tool.Name)
	if !ok {
		log.Debug().Str("tool", in.Tool.Name).Msg("no API endpoint in registry, using web research")
		return in, nil
	}

	if desc.Endpoint == "" {
		log.Warn().Str("tool", in.Tool.Name).Msg("registry entry has no endpoint, falling back to web research")
		in.Result = apiFailure(in, "No API endpoint available", now())
		return in, nil
	}
	if desc.AuthRequired {
		log.Warn().Str("tool", in.Tool.Name).Str("endpoint", desc.Endpoint).
			Msg("API endpoint requires authentication, falling back to web research")
		failure := apiFailure(in, "Authentication required but credentials not configured", now())
		failure.NeedsSetup = true
		in.Result = failure
		return in, nil
	}

	in.Result = &contractx.ResearchResult{
		Success:       true,
		Source:        contractx.SourceAPI,
		ToolName:      in.Tool.Name,
		ToolType:      in.Tool.Type,
		DateRange:     in.DateRange.String(),
		ResearchDepth: in.Depth,
		Updates:       []contractx.UpdateRecord{},
		Endpoint:      desc.Endpoint,
		Note:          apiPlaceholderNote,
		Timestamp:     now(),
	}
	return in, nil
}

func apiFailure(in *GraphState, errMsg string, at time.Time) *contractx.ResearchResult {
	failure := contractx.Failure(in.Tool.Name, errMsg, at)
	failure.Source = contractx.SourceAPI
	failure.ToolType = in.Tool.Type
	return &failure
}
