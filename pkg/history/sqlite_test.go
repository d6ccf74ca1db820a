package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSaveAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []*Record{
		{Chain: "calc", Input: `{"input":"5 times 2.1"}`, Output: "10.5", Timestamp: time.Now().Add(-time.Minute)},
		{Chain: "calc", Input: `{"input":"1 plus 2"}`, Error: "validation failed", FallbackUsed: true, Timestamp: time.Now()},
		{Chain: "other", Input: `{}`, Output: "x", Timestamp: time.Now()},
	}
	for _, record := range records {
		if err := store.Save(ctx, record); err != nil {
			t.Fatalf("failed to save record: %v", err)
		}
		if record.ID == 0 {
			t.Error("record ID should be set after save")
		}
	}

	recent, err := store.Recent(ctx, "calc", 10)
	if err != nil {
		t.Fatalf("failed to query records: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records for chain, got %d", len(recent))
	}

	// Newest first
	if !recent[0].FallbackUsed {
		t.Error("newest record should be the fallback one")
	}
	if recent[1].Output != "10.5" {
		t.Errorf("unexpected output: %q", recent[1].Output)
	}
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Save(ctx, &Record{Chain: "calc", Input: "{}"}); err != nil {
			t.Fatalf("failed to save record: %v", err)
		}
	}

	recent, err := store.Recent(ctx, "calc", 3)
	if err != nil {
		t.Fatalf("failed to query records: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("expected 3 records, got %d", len(recent))
	}
}
