package entity

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the general basic structure of all users across the platform
type User struct {
	ID          int64      `gorm:"primaryKey"`
	Username    string     `gorm:"not null"`
	Email       string     `gorm:"not null;uniqueIndex"`
	Permissions Permission `gorm:"not null;type:bigint;default:0"`
	Active      bool       `gorm:"not null;default:true"`
	Suspended   bool       `gorm:"not null;default:false"`
	CreatedAt   int64      `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt   int64      `gorm:"not null;autoUpdateTime:milli"`
}

func (User) TableName() string {
	return "users"
}

// Role is derived from the permission bitmask, there is no role column.
func (u *User) Role() Role {
	if u.Permissions.Has(PermissionAdministrator) {
		return RoleAdmin
	}
	return RoleUser
}

func (u *User) IsAdmin() bool {
	return u.Role() == RoleAdmin
}
