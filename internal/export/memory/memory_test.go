package memory

import (
	"context"
	"testing"

	"aurum/internal/core"
	"aurum/internal/storage"

	"github.com/shopspring/decimal"
)

func TestMemoryStoreAppend(t *testing.T) {
	s := New()

	snap := storage.NetWorthSnapshot{
		ID:               "snap-1",
		Owner:            "user-1",
		SnapshotDate:     core.NewDate(2025, 6, 1),
		TotalAssets:      decimal.RequireFromString("1000"),
		TotalLiabilities: decimal.RequireFromString("400"),
		NetWorth:         decimal.RequireFromString("600"),
	}

	ref, err := s.Append(context.Background(), snap)
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	got := s.Snapshots()
	if len(got) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(got))
	}
	if !got[0].NetWorth.Equal(snap.NetWorth) {
		t.Errorf("stored net worth = %s, want %s", got[0].NetWorth, snap.NetWorth)
	}
}
