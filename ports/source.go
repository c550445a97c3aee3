package ports

import (
	"context"

	"fairlens/domain/dataset"
)

// DatasetSource yields an immutable dataset snapshot from some tabular
// store. The core pipeline only ever sees the snapshot, never the store.
type DatasetSource interface {
	Snapshot(ctx context.Context) (*dataset.Dataset, error)
}
