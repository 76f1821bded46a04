package researcher

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
	promptx "github.com/tanpawarit/stackaudit/audit/prompt"
)

var _ contractx.ResearchCapability = (*ModelCapability)(nil)

// ModelCapability backs the research capability with a chat model behind a
// web-browsing-enabled provider. The brief goes in as the user message under
// the researcher persona; whatever text comes back is handed to the parser
// untouched.
type ModelCapability struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

func NewModelCapability(ctx context.Context, chatModel einomodel.BaseChatModel) (*ModelCapability, error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(promptx.Persona()),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add research prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add research model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add research edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add research edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add research edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("researcher.capability_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile research capability graph: %w", err)
	}

	return &ModelCapability{runner: runner}, nil
}

func (c *ModelCapability) Invoke(ctx context.Context, brief string) (string, error) {
	msg, err := c.runner.Invoke(ctx, map[string]any{
		"input": brief,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrCapabilityInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: model returned empty content", contractx.ErrCapabilityInvoke)
	}
	return msg.Content, nil
}
