package entity

import "errors"

// ErrDuplicate is returned by repositories when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

type ListingStatus string

const (
	ListingPending  ListingStatus = "pending"
	ListingApproved ListingStatus = "approved"
	ListingRejected ListingStatus = "rejected"
)

// Business is a directory listing. A nil OwnerID means the listing is
// platform owned (unclaimed).
type Business struct {
	ID            string        `gorm:"primaryKey;type:varchar(64)"`
	Title         string        `gorm:"not null"`
	CategoryID    *int64        `gorm:"index"`
	Address       string        `gorm:"not null;default:''"`
	City          string        `gorm:"not null;default:'';index"`
	State         string        `gorm:"not null;default:''"`
	PostalCode    string        `gorm:"not null;default:''"`
	Country       string        `gorm:"not null;default:''"`
	Phone         string        `gorm:"not null;default:''"`
	Website       string        `gorm:"not null;default:''"`
	Description   string        `gorm:"not null;default:''"`
	OwnerID       *int64        `gorm:"index"`
	Featured      bool          `gorm:"not null;default:false"`
	Rating        float64       `gorm:"not null;default:0"`
	ReviewsCount  int64         `gorm:"not null;default:0"`
	Status        ListingStatus `gorm:"not null;type:varchar(16);default:'approved';index"`
	SubmittedByID *int64
	CreatedAt     int64 `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt     int64 `gorm:"not null;autoUpdateTime:milli"`

	Category *Category `gorm:"foreignKey:CategoryID;references:ID"`
}

func (Business) TableName() string {
	return "businesses"
}

func (b *Business) IsClaimed() bool {
	return b.OwnerID != nil
}

func (b *Business) IsOwnedBy(userID int64) bool {
	return b.OwnerID != nil && *b.OwnerID == userID
}

type Category struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Slug string `gorm:"not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}
