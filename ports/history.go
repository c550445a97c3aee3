package ports

import (
	"context"

	"fairlens/domain/fairness"
)

// HistorySink appends one summary row per analysis invocation and lists
// recent rows for reporting surfaces.
type HistorySink interface {
	Append(ctx context.Context, summary fairness.Summary) error
	Recent(ctx context.Context, limit int) ([]fairness.Summary, error)
}
