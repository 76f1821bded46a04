package researchnode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

const defaultToolType = "business_software"

func ValidateRequest(in GraphInput) (*GraphState, error) {
	name := strings.TrimSpace(in.Tool.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tool name is required", contractx.ErrValidation)
	}
	if err := in.DateRange.Validate(); err != nil {
		return nil, err
	}

	toolType := strings.TrimSpace(in.Tool.Type)
	if toolType == "" {
		toolType = defaultToolType
	}
	depth := in.Depth
	if depth == "" {
		depth = contractx.DepthMedium
	}

	return &GraphState{
		Tool:      contractx.Tool{Name: name, Type: toolType},
		DateRange: in.DateRange,
		Depth:     depth,
	}, nil
}
