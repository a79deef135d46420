package model

import "time"

// Role classifies a registered user. The empty string means a role has not
// been assigned yet.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// KnownRole reports whether r is one of the assignable roles.
func KnownRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// User represents a registrant in the directory. Email is the external
// identity key; all cross-store references use it by value.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Image     string    `json:"image,omitempty" gorm:"size:512"`
	Role      Role      `json:"role,omitempty" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
