package records

import (
	"context"

	"github.com/salesops-hq/backend/internal/db"
	"github.com/salesops-hq/backend/internal/models"
)

// StoreSource serves snapshots from the local activities table, versioned by
// the store's import counter so re-imports invalidate memoized reports.
type StoreSource struct {
	Store *db.Store
}

func (s StoreSource) Snapshot(ctx context.Context) ([]models.RawActivity, string, error) {
	rows, err := s.Store.ActivitySnapshot(ctx)
	if err != nil {
		return nil, "", err
	}
	version, err := s.Store.SnapshotVersion(ctx)
	if err != nil {
		return nil, "", err
	}
	return rows, version, nil
}
