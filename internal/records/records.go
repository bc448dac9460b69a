package records

import (
	"context"

	"github.com/salesops-hq/backend/internal/models"
)

// Source supplies the raw activity snapshot metrics are computed over. The
// version string changes whenever the underlying record set changes, so the
// composer memo can be keyed on it. One Snapshot call returns one stable
// slice; callers never observe partial updates mid-computation.
type Source interface {
	Snapshot(ctx context.Context) ([]models.RawActivity, string, error)
}
