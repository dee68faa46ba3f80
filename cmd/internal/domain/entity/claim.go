package entity

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// Active statuses block a second claim by the same user on the same business.
func (s ClaimStatus) Active() bool {
	return s == ClaimPending || s == ClaimApproved
}

func IsValidClaimStatus(s string) bool {
	switch ClaimStatus(s) {
	case ClaimPending, ClaimApproved, ClaimRejected:
		return true
	}
	return false
}

// OwnershipClaim is a user's request to become the owner of a listing.
type OwnershipClaim struct {
	ID           int64       `gorm:"primaryKey"`
	UserID       int64       `gorm:"not null;index"`
	BusinessID   string      `gorm:"not null;type:varchar(64);index"`
	Status       ClaimStatus `gorm:"not null;type:varchar(16);default:'pending';index"`
	Message      string      `gorm:"not null;type:text"`
	AdminMessage string      `gorm:"not null;type:text;default:''"`
	EvidenceKey  string      `gorm:"not null;default:''"`
	ReviewedBy   *int64
	ReviewedAt   *int64
	CreatedAt    int64 `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt    int64 `gorm:"not null;autoUpdateTime:milli"`
}

func (OwnershipClaim) TableName() string {
	return "ownership_claims"
}
