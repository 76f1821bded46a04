package researcher

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
	researchnode "github.com/tanpawarit/stackaudit/audit/nodes/research"
)

// compileResearchToolGraph builds the per-tool pipeline:
// validate -> cache check -> (hit: return cached) -> registry check ->
// (terminal API success: persist) -> web research -> persist.
func (s *Service) compileResearchToolGraph(
	ctx context.Context,
) (compose.Runnable[researchnode.GraphInput, contractx.ResearchResult], error) {
	graph := compose.NewGraph[researchnode.GraphInput, contractx.ResearchResult]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in researchnode.GraphInput) (*researchnode.GraphState, error) {
			return researchnode.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("check_cache",
		compose.InvokableLambda(func(ctx context.Context, in *researchnode.GraphState) (*researchnode.GraphState, error) {
			return researchnode.CheckCache(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node check_cache: %w", err)
	}

	if err := graph.AddLambdaNode("return_cached",
		compose.InvokableLambda(func(ctx context.Context, in *researchnode.GraphState) (contractx.ResearchResult, error) {
			return researchnode.FinalizeCached(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node return_cached: %w", err)
	}

	if err := graph.AddLambdaNode("check_registry",
		compose.InvokableLambda(func(ctx context.Context, in *researchnode.GraphState) (*researchnode.GraphState, error) {
			return researchnode.CheckRegistry(in, s.registry, s.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node check_registry: %w", err)
	}

	if err := graph.AddLambdaNode("web_research",
		compose.InvokableLambda(func(ctx context.Context, in *researchnode.GraphState) (*researchnode.GraphState, error) {
			return researchnode.WebResearch(ctx, in, s.capability, s.timeout, s.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node web_research: %w", err)
	}

	if err := graph.AddLambdaNode("persist_result",
		compose.InvokableLambda(func(ctx context.Context, in *researchnode.GraphState) (contractx.ResearchResult, error) {
			return researchnode.PersistResult(ctx, in, s.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node persist_result: %w", err)
	}

	cacheBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *researchnode.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			if in.Cached != nil {
				return "return_cached", nil
			}
			return "check_registry", nil
		},
		map[string]bool{
			"return_cached":  true,
			"check_registry": true,
		},
	)

	registryBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *researchnode.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			if in.Result != nil && in.Result.Success {
				return "persist_result", nil
			}
			return "web_research", nil
		},
		map[string]bool{
			"persist_result": true,
			"web_research":   true,
		},
	)

	if err := graph.AddEdge(compose.START, "validate_request"); err != nil {
		return nil, fmt.Errorf("add edge start->validate: %w", err)
	}
	if err := graph.AddEdge("validate_request", "check_cache"); err != nil {
		return nil, fmt.Errorf("add edge validate->check_cache: %w", err)
	}
	if err := graph.AddBranch("check_cache", cacheBranch); err != nil {
		return nil, fmt.Errorf("add cache branch: %w", err)
	}
	if err := graph.AddEdge("return_cached", compose.END); err != nil {
		return nil, fmt.Errorf("add edge return_cached->end: %w", err)
	}
	if err := graph.AddBranch("check_registry", registryBranch); err != nil {
		return nil, fmt.Errorf("add registry branch: %w", err)
	}
	if err := graph.AddEdge("web_research", "persist_result"); err != nil {
		return nil, fmt.Errorf("add edge web_research->persist: %w", err)
	}
	if err := graph.AddEdge("persist_result", compose.END); err != nil {
		return nil, fmt.Errorf("add edge persist->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("researcher.tool_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile research tool graph: %w", err)
	}
	return runner, nil
}
