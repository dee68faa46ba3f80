package entity

const (
	HeartbeatPeriodMillis    = int64(60 * 1000)
	HeartbeatToleranceMillis = int64(10 * 1000)
)

// Connection is a live API Gateway websocket session bound to a user.
type Connection struct {
	ConnectionID    string `gorm:"primaryKey;autoIncrement:false"`
	UserID          int64  `gorm:"not null;index"`
	ExpiresAt       int64  `gorm:"not null"`
	LastHeartbeatAt int64  `gorm:"not null;index"`
	CreatedAt       int64  `gorm:"not null;autoCreateTime:milli"`
}

func (Connection) TableName() string {
	return "connections"
}

// Stale reports whether the session token expired or the client stopped
// sending heartbeats.
func (c *Connection) Stale(now int64) bool {
	if c.ExpiresAt > 0 && c.ExpiresAt <= now {
		return true
	}
	return now-c.LastHeartbeatAt > HeartbeatPeriodMillis+HeartbeatToleranceMillis
}
