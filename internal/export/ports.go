package export

import (
	"context"

	"aurum/internal/storage"
)

// Ports for outbound mirror adapters.
type (
	// SnapshotWriter mirrors a net worth snapshot to an external ledger.
	SnapshotWriter interface {
		Append(ctx context.Context, s storage.NetWorthSnapshot) (rowRef string, err error)
	}
)
