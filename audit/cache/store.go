package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

var ErrCacheMiss = errors.New("research cache entry not found")

const defaultFreshness = 30 * 24 * time.Hour

// Store is the research-result cache contract. Load returns ErrCacheMiss for
// every form of absence: no entry, corrupt entry, stale entry, or an entry
// recorded for a different date range.
type Store interface {
	Load(ctx context.Context, toolName string, dr contractx.DateRange) (*contractx.ResearchResult, error)
	Save(ctx context.Context, toolName string, dr contractx.DateRange, result *contractx.ResearchResult) error
}

// Key normalizes tool identity and date range into a cache key. Names that
// differ only in case or whitespace collide to the same key.
func Key(toolName string, dr contractx.DateRange) string {
	parts := append(strings.Fields(strings.ToLower(toolName)), dr.Start, dr.End)
	return strings.Join(parts, "_")
}

// document is the persisted shape of one cache entry, shared by the file and
// Postgres stores.
type document struct {
	CacheKey  string                   `json:"cache_key"`
	ToolName  string                   `json:"tool_name"`
	DateRange []string                 `json:"date_range"`
	CachedAt  time.Time                `json:"cached_at"`
	Results   contractx.ResearchResult `json:"results"`
}

func newDocument(toolName string, dr contractx.DateRange, result *contractx.ResearchResult, at time.Time) document {
	return document{
		CacheKey:  Key(toolName, dr),
		ToolName:  toolName,
		DateRange: []string{dr.Start, dr.End},
		CachedAt:  at.UTC(),
		Results:   *result,
	}
}

// fresh reports whether the entry is usable for the requested range: younger
// than the freshness window and recorded for exactly that range.
func (d document) fresh(dr contractx.DateRange, now time.Time, window time.Duration) bool {
	if now.Sub(d.CachedAt) >= window {
		return false
	}
	if len(d.DateRange) != 2 {
		return false
	}
	return d.DateRange[0] == dr.Start && d.DateRange[1] == dr.End
}
