// Package researcher runs the per-tool and per-stack research protocols:
// cache first, registry second, web research last, with every outcome
// written back to the cache.
package researcher

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	cachex "github.com/tanpawarit/stackaudit/audit/cache"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
	researchnode "github.com/tanpawarit/stackaudit/audit/nodes/research"
	registryx "github.com/tanpawarit/stackaudit/audit/registry"
)

const (
	defaultPacingDelay     = time.Second
	defaultResearchTimeout = 5 * time.Minute
)

type Config struct {
	// PacingDelay is the pause between tools in a stack run, a deliberate
	// rate-limit courtesy toward the research capability.
	PacingDelay time.Duration `envconfig:"PACING_DELAY" split_words:"true" default:"1s"`
	// ResearchTimeout bounds one capability invocation.
	ResearchTimeout time.Duration `envconfig:"RESEARCH_TIMEOUT" split_words:"true" default:"5m"`
}

type Service struct {
	store      cachex.Store
	registry   *registryx.Registry
	capability contractx.ResearchCapability

	graphRunner compose.Runnable[researchnode.GraphInput, contractx.ResearchResult]

	pacing  time.Duration
	timeout time.Duration
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// ServiceOption customizes Service, mainly for tests.
type ServiceOption func(*Service)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) ServiceOption {
	return func(s *Service) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

func New(
	store cachex.Store,
	registry *registryx.Registry,
	capability contractx.ResearchCapability,
	cfg Config,
	opts ...ServiceOption,
) (*Service, error) {
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	if registry == nil {
		return nil, errors.New("endpoint registry is required")
	}
	if capability == nil {
		return nil, errors.New("research capability is required")
	}

	pacing := cfg.PacingDelay
	if pacing <= 0 {
		pacing = defaultPacingDelay
	}
	timeout := cfg.ResearchTimeout
	if timeout <= 0 {
		timeout = defaultResearchTimeout
	}

	s := &Service{
		store:      store,
		registry:   registry,
		capability: capability,
		pacing:     pacing,
		timeout:    timeout,
		now:        time.Now,
		sleep:      sleepWithContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	graphRunner, err := s.compileResearchToolGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// ResearchTool produces one ResearchResult for one tool over one date range.
// Operational failures come back as data (Success=false); the returned error
// is reserved for request validation.
func (s *Service) ResearchTool(
	ctx context.Context,
	tool contractx.Tool,
	dr contractx.DateRange,
	depth contractx.ResearchDepth,
) (contractx.ResearchResult, error) {
	return s.graphRunner.Invoke(ctx, researchnode.GraphInput{
		Tool:      tool,
		DateRange: dr,
		Depth:     depth,
	})
}

// ResearchStack researches every tool sequentially with a pacing delay in
// between. One tool failing never aborts the run; it is recorded in the
// aggregate and iteration continues.
func (s *Service) ResearchStack(
	ctx context.Context,
	tools []contractx.Tool,
	dr contractx.DateRange,
	depth contractx.ResearchDepth,
) (contractx.StackResult, error) {
	if err := dr.Validate(); err != nil {
		return contractx.StackResult{}, err
	}

	log.Info().Int("tools", len(tools)).Str("range", dr.String()).Str("depth", string(depth)).
		Msg("starting stack research")

	results := make(map[string]contractx.ResearchResult, len(tools))
	for i, tool := range tools {
		if i > 0 {
			if err := s.sleep(ctx, s.pacing); err != nil {
				return s.aggregate(len(tools), results, dr), err
			}
		}

		result, err := s.ResearchTool(ctx, tool, dr, depth)
		if err != nil {
			log.Warn().Err(err).Str("tool", tool.Name).Msg("tool research rejected")
			result = contractx.Failure(tool.Name, err.Error(), s.now())
		}
		results[tool.Name] = result
	}

	return s.aggregate(len(tools), results, dr), nil
}

func (s *Service) aggregate(total int, results map[string]contractx.ResearchResult, dr contractx.DateRange) contractx.StackResult {
	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	return contractx.StackResult{
		TotalTools: total,
		Successful: successful,
		Failed:     len(results) - successful,
		Results:    results,
		DateRange:  dr.String(),
		Timestamp:  s.now(),
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
