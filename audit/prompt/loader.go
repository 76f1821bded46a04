package prompt

import (
	_ "embed"
	"strings"

	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

var (
	//go:embed template/research.txt
	researchRaw string

	//go:embed template/persona.txt
	personaRaw string
)

// Persona is the system-level framing for the research capability.
func Persona() string {
	return strings.TrimSpace(personaRaw)
}

// BriefParams parameterize one research brief.
type BriefParams struct {
	ToolName  string
	ToolType  string
	StartYear string
	EndYear   string
	Depth     contractx.ResearchDepth
}

// ResearchBrief renders the research brief for one tool. The brief is the
// only channel of control over the external capability.
func ResearchBrief(p BriefParams) string {
	replacer := strings.NewReplacer(
		"{tool_name}", p.ToolName,
		"{tool_type}", p.ToolType,
		"{year_start}", p.StartYear,
		"{year_end}", p.EndYear,
		"{research_depth}", string(p.Depth),
	)
	return replacer.Replace(strings.TrimSpace(researchRaw))
}
