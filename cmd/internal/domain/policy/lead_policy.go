package policy

import "bizdirectory/cmd/internal/domain/entity"

// CanAccessLead decides who may read a lead, based only on the current
// owner of its business:
//
// - claimed business: only the owner.
//
// - unclaimed business: only admins.
//
// Admins do not see leads of claimed businesses.
func CanAccessLead(actorID int64, actorRole entity.Role, business *entity.Business) bool {
	if business == nil {
		return false
	}

	if !business.IsClaimed() {
		return actorRole == entity.RoleAdmin
	}
	return business.IsOwnedBy(actorID)
}
