package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"aurum/internal/amqp"
	"aurum/internal/core"
	"aurum/internal/export"
	"aurum/internal/storage"

	"github.com/google/uuid"
)

// SnapshotStore is the slice of storage the snapshot worker needs.
type SnapshotStore interface {
	ListAssets(ctx context.Context, owner string) ([]core.Asset, error)
	ListLiabilities(ctx context.Context, owner string) ([]core.Liability, error)
	InsertSnapshot(ctx context.Context, s storage.NetWorthSnapshot) error
}

// SnapshotProcessor records a net worth snapshot whenever an owner's ledger
// changes, and optionally mirrors it to an external sheet.
type SnapshotProcessor struct {
	store  SnapshotStore
	mirror export.SnapshotWriter
	now    func() time.Time
}

func NewSnapshotProcessor(store SnapshotStore, mirror export.SnapshotWriter) *SnapshotProcessor {
	return &SnapshotProcessor{
		store:  store,
		mirror: mirror,
		now:    time.Now,
	}
}

// HandleLedgerEvent recomputes the owner's net worth and persists it. The
// mirror write is best effort; a mirror failure does not requeue the event.
func (p *SnapshotProcessor) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	if p.store == nil {
		return fmt.Errorf("processor not properly initialized")
	}

	assets, err := p.store.ListAssets(ctx, msg.Owner)
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}
	liabilities, err := p.store.ListLiabilities(ctx, msg.Owner)
	if err != nil {
		return fmt.Errorf("list liabilities: %w", err)
	}

	summary := core.NetWorth(assets, liabilities)
	snapshot := storage.NetWorthSnapshot{
		ID:               uuid.NewString(),
		Owner:            msg.Owner,
		SnapshotDate:     core.DateOf(p.now()),
		TotalAssets:      summary.TotalAssets,
		TotalLiabilities: summary.TotalLiabilities,
		NetWorth:         summary.NetWorth,
	}

	if err := p.store.InsertSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if p.mirror != nil {
		if _, err := p.mirror.Append(ctx, snapshot); err != nil {
			slog.WarnContext(ctx, "Failed to mirror snapshot",
				"owner", msg.Owner,
				"error", err)
		}
	}

	return nil
}
