package entity

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is left either by a registered user (UserID set) or anonymously
// with an author name and email.
type Review struct {
	ID              int64        `gorm:"primaryKey"`
	BusinessID      string       `gorm:"not null;type:varchar(64);index"`
	UserID          *int64       `gorm:"index"`
	AuthorName      string       `gorm:"not null;default:''"`
	AuthorEmail     string       `gorm:"not null;default:''"`
	Rating          int          `gorm:"not null"`
	Title           string       `gorm:"not null;default:''"`
	Comment         string       `gorm:"not null;type:text;default:''"`
	Status          ReviewStatus `gorm:"not null;type:varchar(16);default:'pending';index"`
	ModeratedBy     *int64
	ModerationNotes string `gorm:"not null;default:''"`
	ModeratedAt     *int64
	CreatedAt       int64 `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt       int64 `gorm:"not null;autoUpdateTime:milli"`
}

func (Review) TableName() string {
	return "reviews"
}

// RatingStats is the aggregate over the approved reviews of one business.
type RatingStats struct {
	Average float64
	Count   int64
}
