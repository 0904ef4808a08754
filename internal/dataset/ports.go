// Package dataset defines the ports between the derived-metrics engine
// and whatever holds the operations data.
package dataset

import (
	"context"

	"opsboard/internal/core"
)

// SnapshotReader loads the full dataset snapshot the query layer works
// over. Implementations must return a snapshot the caller can hold
// without seeing later mutations.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context) (core.Snapshot, error)
}
