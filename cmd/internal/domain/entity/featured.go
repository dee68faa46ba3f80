package entity

type FeaturedStatus string

const (
	FeaturedPending  FeaturedStatus = "pending"
	FeaturedApproved FeaturedStatus = "approved"
	FeaturedRejected FeaturedStatus = "rejected"
)

// FeaturedRequest asks the platform to promote an owned listing.
type FeaturedRequest struct {
	ID           int64          `gorm:"primaryKey"`
	BusinessID   string         `gorm:"not null;type:varchar(64);index"`
	UserID       int64          `gorm:"not null;index"`
	Status       FeaturedStatus `gorm:"not null;type:varchar(16);default:'pending';index"`
	Message      string         `gorm:"not null;type:text;default:''"`
	AdminMessage string         `gorm:"not null;type:text;default:''"`
	ReviewedBy   *int64
	ReviewedAt   *int64
	CreatedAt    int64 `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt    int64 `gorm:"not null;autoUpdateTime:milli"`
}

func (FeaturedRequest) TableName() string {
	return "featured_requests"
}
