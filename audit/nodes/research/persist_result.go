package researchnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	cachex "github.com/tanpawarit/stackaudit/audit/cache"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

// PersistResult caches whichever result the pipeline produced, success or
// failure, then hands it upward. Cache write failures are logged and
// swallowed; caching never aborts research.
func PersistResult(ctx context.Context, in *GraphState, store cachex.Store) (contractx.ResearchResult, error) {
	if in == nil || in.Result == nil {
		return contractx.ResearchResult{}, fmt.Errorf("%w: research pipeline produced no result", contractx.ErrValidation)
	}

	if err := store.Save(ctx, in.Tool.Name, in.DateRange, in.Result); err != nil {
		log.Warn().Err(err).Str("tool", in.Tool.Name).Msg("cache save failed")
	}
	return *in.Result, nil
}
