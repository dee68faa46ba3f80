package entity

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
	LeadClosed    LeadStatus = "closed"
)

// IsValidLeadStatus checks membership only. Any status may follow any other.
func IsValidLeadStatus(s string) bool {
	switch LeadStatus(s) {
	case LeadNew, LeadContacted, LeadQualified, LeadConverted, LeadClosed:
		return true
	}
	return false
}

// Lead is an inquiry sent to a listing. Who may read it is derived from
// the listing's current owner, never stored here.
type Lead struct {
	ID          int64      `gorm:"primaryKey"`
	BusinessID  string     `gorm:"not null;type:varchar(64);index"`
	SenderName  string     `gorm:"not null"`
	SenderEmail string     `gorm:"not null"`
	SenderPhone string     `gorm:"not null;default:''"`
	Message     string     `gorm:"not null;type:text"`
	Status      LeadStatus `gorm:"not null;type:varchar(16);default:'new';index"`
	CreatedAt   int64      `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt   int64      `gorm:"not null;autoUpdateTime:milli"`
}

func (Lead) TableName() string {
	return "leads"
}
