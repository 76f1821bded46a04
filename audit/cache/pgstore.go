package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

// PGStore keeps cache entries in Postgres, one row per normalized key, so
// several audit operators can share a research cache. It honors the same
// freshness and range-match rules as FileStore.
type PGStore struct {
	db        *bun.DB
	freshness time.Duration
	now       func() time.Time
}

var _ Store = (*PGStore)(nil)

type PGConfig struct {
	DSN           string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout       time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
	FreshnessDays int           `envconfig:"FRESHNESS_DAYS" split_words:"true" default:"30"`
}

type cacheRow struct {
	bun.BaseModel `bun:"table:research_cache"`

	CacheKey  string          `bun:"cache_key,pk"`
	ToolName  string          `bun:"tool_name,notnull"`
	StartDate string          `bun:"start_date,notnull"`
	EndDate   string          `bun:"end_date,notnull"`
	CachedAt  time.Time       `bun:"cached_at,notnull"`
	Results   json.RawMessage `bun:"results,type:jsonb,notnull"`
}

// PGStoreOption customizes PGStore.
type PGStoreOption func(*PGStore)

func WithPGFreshness(window time.Duration) PGStoreOption {
	return func(s *PGStore) {
		if window > 0 {
			s.freshness = window
		}
	}
}

func WithPGClock(now func() time.Time) PGStoreOption {
	return func(s *PGStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewPGStore(cfg PGConfig, opts ...PGStoreOption) (*PGStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))

	store := &PGStore{
		db:        bun.NewDB(sqldb, pgdialect.New()),
		freshness: defaultFreshness,
		now:       time.Now,
	}
	if cfg.FreshnessDays > 0 {
		store.freshness = time.Duration(cfg.FreshnessDays) * 24 * time.Hour
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// EnsureSchema creates the cache table if it does not exist yet.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*cacheRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create research_cache table: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context, toolName string, dr contractx.DateRange) (*contractx.ResearchResult, error) {
	row := new(cacheRow)
	err := s.db.NewSelect().
		Model(row).
		Where("cache_key = ?", Key(toolName, dr)).
		Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn().Err(err).Str("tool", toolName).Msg("cache select failed, treating as miss")
		}
		return nil, ErrCacheMiss
	}

	if s.now().Sub(row.CachedAt) >= s.freshness {
		return nil, ErrCacheMiss
	}
	if row.StartDate != dr.Start || row.EndDate != dr.End {
		return nil, ErrCacheMiss
	}

	var result contractx.ResearchResult
	if err := json.Unmarshal(row.Results, &result); err != nil {
		log.Warn().Err(err).Str("tool", toolName).Msg("corrupt cache row, treating as miss")
		return nil, ErrCacheMiss
	}
	return &result, nil
}

func (s *PGStore) Save(ctx context.Context, toolName string, dr contractx.DateRange, result *contractx.ResearchResult) error {
	if result == nil {
		return errors.New("research result is nil")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal cache row: %w", err)
	}

	row := &cacheRow{
		CacheKey:  Key(toolName, dr),
		ToolName:  toolName,
		StartDate: dr.Start,
		EndDate:   dr.End,
		CachedAt:  s.now().UTC(),
		Results:   payload,
	}

	if _, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (cache_key) DO UPDATE").
		Set("tool_name = EXCLUDED.tool_name").
		Set("start_date = EXCLUDED.start_date").
		Set("end_date = EXCLUDED.end_date").
		Set("cached_at = EXCLUDED.cached_at").
		Set("results = EXCLUDED.results").
		Exec(ctx); err != nil {
		return fmt.Errorf("upsert cache row: %w", err)
	}
	return nil
}

func (s *PGStore) Close() error {
	return s.db.Close()
}
