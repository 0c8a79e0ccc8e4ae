package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles accepted at registration.
const (
	RoleStudent  = "student"
	RoleEmployee = "employee"
)

// User is an account identity. Profile data lives in StudentProfile or
// EmployeeProfile depending on the role.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	Password  string    `json:"-"` // bcrypt hash
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate generates a new UUID for the user if ID is not yet set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
