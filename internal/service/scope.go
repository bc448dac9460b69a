package service

import (
	"github.com/salesops-hq/backend/internal/models"
)

// VisibleTo returns the subset of activities the viewer is allowed to see.
// The hierarchy is derived from the records themselves: a Manager owns every
// record whose manager field carries the Manager's reference id, and so on
// down through TSM and TSA. Unknown roles see nothing.
func VisibleTo(viewer models.Viewer, activities []models.Activity) []models.Activity {
	keep := scopePredicate(viewer)
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func scopePredicate(viewer models.Viewer) func(models.Activity) bool {
	switch viewer.Role {
	case models.RoleSuperAdmin, models.RoleSpecialAccess:
		return func(models.Activity) bool { return true }
	case models.RoleManager:
		return func(a models.Activity) bool { return a.ManagerID == viewer.ReferenceID }
	case models.RoleTSM:
		return func(a models.Activity) bool { return a.TSMID == viewer.ReferenceID }
	case models.RoleTSA:
		return func(a models.Activity) bool { return a.OwnerID == viewer.ReferenceID }
	default:
		// Deny by default. A role we do not recognize must not widen
		// visibility.
		return func(models.Activity) bool { return false }
	}
}
