package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

var testRange = contractx.DateRange{Start: "2023-01-01", End: "2024-01-01"}

func newTestStore(t *testing.T, now *time.Time, opts ...StoreOption) *FileStore {
	t.Helper()

	opts = append(opts, WithClock(func() time.Time { return *now }))
	store, err := NewFileStore(t.TempDir(), opts...)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func sampleResult(toolName string) *contractx.ResearchResult {
	return &contractx.ResearchResult{
		Success:  true,
		Source:   contractx.SourceWebSearch,
		ToolName: toolName,
		Updates: []contractx.UpdateRecord{
			{FeatureName: "Webhook Support", ReleaseDate: "2024-03"},
		},
		Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)
	ctx := context.Background()

	if err := store.Save(ctx, "Acme CRM", testRange, sampleResult("Acme CRM")); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "Acme CRM", testRange)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Success || len(got.Updates) != 1 || got.Updates[0].FeatureName != "Webhook Support" {
		t.Fatalf("unexpected cached result: %+v", got)
	}
}

func TestFileStoreKeyNormalization(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)
	ctx := context.Background()

	if err := store.Save(ctx, "Acme CRM", testRange, sampleResult("Acme CRM")); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Case and whitespace differences collide onto the same entry.
	for _, name := range []string{"acme crm", "ACME  CRM", " Acme   Crm "} {
		if _, err := store.Load(ctx, name, testRange); err != nil {
			t.Fatalf("load %q: %v", name, err)
		}
	}

	if Key("Acme CRM", testRange) != Key("acme  crm", testRange) {
		t.Fatal("normalized keys must collide")
	}
}

func TestFileStoreFreshnessWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now, WithFreshness(30*24*time.Hour))
	ctx := context.Background()

	if err := store.Save(ctx, "Acme CRM", testRange, sampleResult("Acme CRM")); err != nil {
		t.Fatalf("save: %v", err)
	}

	now = now.Add(29 * 24 * time.Hour)
	if _, err := store.Load(ctx, "Acme CRM", testRange); err != nil {
		t.Fatalf("entry younger than window must hit: %v", err)
	}

	now = now.Add(24 * time.Hour)
	if _, err := store.Load(ctx, "Acme CRM", testRange); err != ErrCacheMiss {
		t.Fatalf("entry at window age must miss, got %v", err)
	}
}

func TestFileStoreDateRangeMustMatchExactly(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)
	ctx := context.Background()

	if err := store.Save(ctx, "Acme CRM", testRange, sampleResult("Acme CRM")); err != nil {
		t.Fatalf("save: %v", err)
	}

	other := contractx.DateRange{Start: "2023-01-01", End: "2024-06-01"}
	if _, err := store.Load(ctx, "Acme CRM", other); err != ErrCacheMiss {
		t.Fatalf("different range must miss, got %v", err)
	}
}

func TestFileStoreCorruptEntryIsAMiss(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	store, err := NewFileStore(dir, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	path := filepath.Join(dir, Key("Acme CRM", testRange)+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := store.Load(context.Background(), "Acme CRM", testRange); err != ErrCacheMiss {
		t.Fatalf("corrupt entry must miss, got %v", err)
	}
}

func TestFileStoreOverwritesSameKey(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)
	ctx := context.Background()

	if err := store.Save(ctx, "Acme CRM", testRange, sampleResult("Acme CRM")); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := sampleResult("Acme CRM")
	second.Updates = []contractx.UpdateRecord{{FeatureName: "OAuth"}}
	if err := store.Save(ctx, "acme crm", testRange, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := store.Load(ctx, "Acme CRM", testRange)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Updates) != 1 || got.Updates[0].FeatureName != "OAuth" {
		t.Fatalf("expected overwritten entry, got %+v", got.Updates)
	}
}

func TestFileStoreMissingEntry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)

	if _, err := store.Load(context.Background(), "Never Researched", testRange); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}
