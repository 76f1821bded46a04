package contract

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies which research path produced a result.
type Source string

const (
	SourceAPI         Source = "api"
	SourceWebSearch   Source = "web_search"
	SourceWebResearch Source = "web_research"
)

// ResearchDepth is an advisory hint forwarded to the research capability.
// It does not change parsing or caching behavior.
type ResearchDepth string

const (
	DepthQuick  ResearchDepth = "quick"
	DepthMedium ResearchDepth = "medium"
	DepthDeep   ResearchDepth = "deep"
)

// Tool is one piece of software in the client stack under audit.
type Tool struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DateRange is the research window, both endpoints ISO 8601 (YYYY-MM-DD).
// Cache matching uses exact equality of both endpoints, never interval
// overlap.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const dateLayout = "2006-01-02"

func (d DateRange) Validate() error {
	start, err := time.Parse(dateLayout, strings.TrimSpace(d.Start))
	if err != nil {
		return fmt.Errorf("%w: start date %q is not YYYY-MM-DD", ErrValidation, d.Start)
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(d.End))
	if err != nil {
		return fmt.Errorf("%w: end date %q is not YYYY-MM-DD", ErrValidation, d.End)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: date range end %s precedes start %s", ErrValidation, d.End, d.Start)
	}
	return nil
}

func (d DateRange) String() string {
	return d.Start + " to " + d.End
}

// Years returns the calendar years of both endpoints, used to parameterize
// the research brief.
func (d DateRange) Years() (string, string) {
	return yearOf(d.Start), yearOf(d.End)
}

func yearOf(date string) string {
	if i := strings.IndexByte(date, '-'); i > 0 {
		return date[:i]
	}
	return date
}

// UpdateRecord is one discovered vendor feature or change. FeatureName is
// the only required field; the parser drops sections without one.
type UpdateRecord struct {
	FeatureName              string `json:"feature_name"`
	ReleaseDate              string `json:"release_date,omitempty"`
	Description              string `json:"description,omitempty"`
	SourceURL                string `json:"source_url,omitempty"`
	AutomationValue          string `json:"automation_value,omitempty"`
	BusinessImpact           string `json:"business_impact,omitempty"`
	Category                 string `json:"category,omitempty"`
	ImplementationDifficulty string `json:"implementation_difficulty,omitempty"`
}

// ResearchResult is the unit of caching: one research outcome for one tool
// over one date range. Success=false implies a non-empty Error and an empty
// Updates slice.
type ResearchResult struct {
	Success       bool           `json:"success"`
	Source        Source         `json:"source,omitempty"`
	ToolName      string         `json:"tool_name"`
	ToolType      string         `json:"tool_type,omitempty"`
	DateRange     string         `json:"date_range,omitempty"`
	ResearchDepth ResearchDepth  `json:"research_depth,omitempty"`
	Updates       []UpdateRecord `json:"updates"`
	Endpoint      string         `json:"endpoint,omitempty"`
	NeedsSetup    bool           `json:"needs_setup,omitempty"`
	Note          string         `json:"note,omitempty"`
	Error         string         `json:"error,omitempty"`
	RawOutput     string         `json:"raw_output,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Failure builds a structured failure result. Updates stays empty so no
// partial data from a failed attempt is ever surfaced.
func Failure(toolName string, errMsg string, at time.Time) ResearchResult {
	return ResearchResult{
		Success:   false,
		ToolName:  toolName,
		Updates:   []UpdateRecord{},
		Error:     errMsg,
		Timestamp: at,
	}
}

// StackResult aggregates per-tool results for one audit run.
type StackResult struct {
	TotalTools int                       `json:"total_tools"`
	Successful int                       `json:"successful"`
	Failed     int                       `json:"failed"`
	Results    map[string]ResearchResult `json:"results"`
	DateRange  string                    `json:"date_range"`
	Timestamp  time.Time                 `json:"timestamp"`
}
