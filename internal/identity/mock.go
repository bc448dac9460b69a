package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/salesops-hq/backend/internal/models"
	"github.com/salesops-hq/backend/internal/utils"
)

// MockProvider derives a deterministic viewer from the token so local
// development works without a session service. A token of the form
// "role:reference" maps directly; anything else hashes into one of the four
// roles.
type MockProvider struct{}

func (MockProvider) Resolve(ctx context.Context, token string) (models.Viewer, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Viewer{}, ErrUnauthorized
	}

	if role, ref, ok := strings.Cut(token, ":"); ok && ref != "" {
		if known(role) {
			return models.Viewer{Role: role, ReferenceID: ref}, nil
		}
		return models.Viewer{}, ErrUnauthorized
	}

	roles := []string{models.RoleSuperAdmin, models.RoleManager, models.RoleTSM, models.RoleTSA}
	// Index with unsigned arithmetic: hashes above MaxInt64 would wrap
	// negative through an int conversion.
	h := utils.HashStringToUint64(token)
	return models.Viewer{
		Role:        roles[h%uint64(len(roles))],
		ReferenceID: fmt.Sprintf("ref-%04d", h%10000),
	}, nil
}

func known(role string) bool {
	switch role {
	case models.RoleSuperAdmin, models.RoleSpecialAccess, models.RoleManager, models.RoleTSM, models.RoleTSA:
		return true
	}
	return false
}
