package models

import "time"

// SystemRole is the closed set of privilege tags. Authorization decisions
// branch on this value only, never on the human-editable role name.
type SystemRole string

const (
	RoleSuperAdmin SystemRole = "SUPER_ADMIN"
	RoleAdmin      SystemRole = "ADMIN"
	RoleUser       SystemRole = "USER"
)

type RegistrationStatus string

const (
	StatusActive RegistrationStatus = "ACTIVE"
)

type User struct {
	ID                 uint               `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username           string             `gorm:"size:30;uniqueIndex;not null"  json:"username"`
	Email              string             `gorm:"uniqueIndex;not null"          json:"email"`
	PasswordHash       string             `gorm:"size:80;not null"              json:"-"`
	RegistrationStatus RegistrationStatus `gorm:"not null"                      json:"registration_status"`
	Created            time.Time          `gorm:"not null;autoCreateTime"       json:"created"`
	Updated            time.Time          `gorm:"not null;autoUpdateTime"       json:"updated"`
	LastLogin          *time.Time         `json:"last_login,omitempty"`
	Deleted            bool               `gorm:"not null;default:false"        json:"-"`
	Roles              []Role             `gorm:"many2many:users_roles"         json:"roles"`
}

type Role struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Name is display text and may be edited; SystemRole is fixed at
	// creation and is the only field privilege checks read.
	Name       string     `gorm:"uniqueIndex;not null"          json:"name"`
	SystemRole SystemRole `gorm:"column:user_system_role;not null;->;<-:create" json:"system_role"`
	Active     bool       `gorm:"default:true"                  json:"active"`
	CreatedBy  string     `json:"created_by,omitempty"`
}

// RefreshToken holds the single live refresh token of a user. Token values
// are opaque random strings; Created marks the last issue or rotation.
type RefreshToken struct {
	ID      uint      `gorm:"primaryKey"            json:"id"`
	Token   string    `gorm:"uniqueIndex;not null"  json:"token"`
	UserID  uint      `gorm:"uniqueIndex;not null"  json:"user_id"`
	Created time.Time `gorm:"not null"              json:"created"`
}

type Post struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string    `gorm:"uniqueIndex;not null"     json:"title"`
	Content string    `gorm:"not null"                 json:"content"`
	UserID  uint      `gorm:"index;not null"           json:"user_id"`
	Likes   int       `gorm:"default:0"                json:"likes"`
	Created time.Time `gorm:"not null;autoCreateTime"  json:"created"`
	Updated time.Time `gorm:"not null;autoUpdateTime"  json:"updated"`
	Deleted bool      `gorm:"not null;default:false"   json:"-"`
}

type Comment struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID  uint      `gorm:"index;not null"           json:"post_id"`
	UserID  uint      `gorm:"index;not null"           json:"user_id"`
	Content string    `gorm:"not null"                 json:"content"`
	Created time.Time `gorm:"not null;autoCreateTime"  json:"created"`
	Updated time.Time `gorm:"not null;autoUpdateTime"  json:"updated"`
	Deleted bool      `gorm:"not null;default:false"   json:"-"`
}

// SystemRoles projects the fixed privilege tags out of a role set.
func SystemRoles(roles []Role) []SystemRole {
	out := make([]SystemRole, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.SystemRole)
	}
	return out
}
