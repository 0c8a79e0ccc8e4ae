package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentProfile is a reporting student, linked 1:1 to a User account.
type StudentProfile struct {
	ID         string `gorm:"primaryKey" json:"id"`
	UserID     string `gorm:"uniqueIndex" json:"userId"`
	RollNumber string `gorm:"uniqueIndex" json:"rollNumber"`
	Name       string `json:"name"`
	Email      string `gorm:"uniqueIndex" json:"email"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate generates a new UUID for the profile if ID is not yet set.
func (s *StudentProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
