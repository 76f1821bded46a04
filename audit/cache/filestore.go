package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

var _ Store = (*FileStore)(nil)

// StoreOption customizes FileStore.
type StoreOption func(*FileStore)

// WithFreshness overrides the freshness window. Entries at least this old
// are treated as absent on read.
func WithFreshness(window time.Duration) StoreOption {
	return func(s *FileStore) {
		if window > 0 {
			s.freshness = window
		}
	}
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// FileStore persists one JSON document per normalized (tool, date range) key
// under a cache directory. Caching is best-effort: corrupt or unreadable
// entries read as misses and are never fatal.
type FileStore struct {
	dir       string
	freshness time.Duration
	now       func() time.Time
}

type FileStoreConfig struct {
	Dir           string `envconfig:"DIR" split_words:"true" default:"data/research_cache"`
	FreshnessDays int    `envconfig:"FRESHNESS_DAYS" split_words:"true" default:"30"`
}

func NewFileStore(dir string, opts ...StoreOption) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	store := &FileStore{
		dir:       dir,
		freshness: defaultFreshness,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

func NewFileStoreFromConfig(cfg FileStoreConfig, opts ...StoreOption) (*FileStore, error) {
	if cfg.FreshnessDays > 0 {
		opts = append([]StoreOption{WithFreshness(time.Duration(cfg.FreshnessDays) * 24 * time.Hour)}, opts...)
	}
	return NewFileStore(cfg.Dir, opts...)
}

func (s *FileStore) Load(ctx context.Context, toolName string, dr contractx.DateRange) (*contractx.ResearchResult, error) {
	path := s.path(toolName, dr)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("cache_file", path).Msg("cache read failed, treating as miss")
		}
		return nil, ErrCacheMiss
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warn().Err(err).Str("cache_file", path).Msg("corrupt cache entry, treating as miss")
		return nil, ErrCacheMiss
	}

	if !doc.fresh(dr, s.now(), s.freshness) {
		return nil, ErrCacheMiss
	}

	result := doc.Results
	return &result, nil
}

func (s *FileStore) Save(ctx context.Context, toolName string, dr contractx.DateRange, result *contractx.ResearchResult) error {
	if result == nil {
		return errors.New("research result is nil")
	}

	doc := newDocument(toolName, dr, result, s.now())
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	path := s.path(toolName, dr)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (s *FileStore) path(toolName string, dr contractx.DateRange) string {
	return filepath.Join(s.dir, Key(toolName, dr)+".json")
}
