package researchnode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	cachex "github.com/tanpawarit/stackaudit/audit/cache"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

// CheckCache loads a prior result for (tool, range). Cache trouble of any
// kind reads as a miss; research proceeds.
func CheckCache(ctx context.Context, in *GraphState, store cachex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	cached, err := store.Load(ctx, in.Tool.Name, in.DateRange)
	if err != nil {
		if !errors.Is(err, cachex.ErrCacheMiss) {
			log.Warn().Err(err).Str("tool", in.Tool.Name).Msg("cache load failed, researching fresh")
		}
		return in, nil
	}

	log.Info().Str("tool", in.Tool.Name).Str("range", in.DateRange.String()).Msg("using cached research results")
	in.Cached = cached
	return in, nil
}
