package entity

// Permission is a custom type for bitwise flags
type Permission int64

const (
	// PermissionAdministrator grants god-mode.
	// Admins pass every moderation check and see leads of unclaimed listings.
	PermissionAdministrator Permission = 1 << iota

	// PermissionModerateClaims allows approving, rejecting and reverting
	// ownership claims.
	PermissionModerateClaims

	// PermissionModerateReviews allows approving, rejecting and deleting reviews.
	PermissionModerateReviews

	// PermissionManageFeatured allows deciding on featured listing requests.
	PermissionManageFeatured

	// PermissionManageBusinesses allows creating listings directly,
	// moderating public submissions and bulk deleting listings.
	PermissionManageBusinesses
)

// Has checks if the permission bitmask contains ALL bits
// requested in 'target'. It ignores Administrator status.
// Logic: (p & target) == target
func (p Permission) Has(target Permission) bool {
	return (p & target) == target
}

// HasAny returns true if the user has ANY of the target permissions
func (p Permission) HasAny(target Permission) bool {
	return (p & target) > 0
}

// Add appends a permission to the bitmask
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove clears a permission from the bitmask
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// HasEffective checks if the permission bitmask contains the target bits
// OR if the permission includes Administrator
func (p Permission) HasEffective(target Permission) bool {
	return p.Has(PermissionAdministrator) || p.Has(target)
}
