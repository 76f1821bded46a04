package researchnode

import (
	"fmt"

	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

// FinalizeCached returns a cache hit as-is. The entry is already persisted,
// so it skips the cache write that every freshly produced result gets.
func FinalizeCached(in *GraphState) (contractx.ResearchResult, error) {
	if in == nil || in.Cached == nil {
		return contractx.ResearchResult{}, fmt.Errorf("%w: no cached result to return", contractx.ErrValidation)
	}
	return *in.Cached, nil
}
