package identity

import (
	"context"
	"errors"

	"github.com/salesops-hq/backend/internal/models"
)

var ErrUnauthorized = errors.New("identity: token not recognized")

// Provider resolves a session token into the viewer context metrics requests
// run under. The session service itself lives outside this backend.
type Provider interface {
	Resolve(ctx context.Context, token string) (models.Viewer, error)
}
