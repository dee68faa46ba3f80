package entity

// AuditLog records a moderation decision with before/after snapshots.
type AuditLog struct {
	ID           int64  `gorm:"primaryKey"`
	ActorID      int64  `gorm:"not null;index"`
	Action       string `gorm:"not null;type:varchar(64);index"`
	ResourceType string `gorm:"not null;type:varchar(32)"`
	ResourceID   string `gorm:"not null;type:varchar(64);index"`
	BeforeJSON   string `gorm:"type:text"`
	AfterJSON    string `gorm:"type:text"`
	IPAddress    string `gorm:"type:varchar(64)"`
	CreatedAt    int64  `gorm:"not null;autoCreateTime:milli"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
