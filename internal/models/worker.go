package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // for pq.StringArray
	"gorm.io/gorm"
)

// EmployeeProfile is a maintenance worker. It is linked 1:1 to a User account
// and owns an append-only work log.
type EmployeeProfile struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	UserID       string         `gorm:"uniqueIndex" json:"userId"`
	Name         string         `json:"name"`
	PhoneNumber  string         `gorm:"uniqueIndex" json:"phoneNumber"`
	AreaAssigned string         `gorm:"index" json:"areaAssigned"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills,omitempty"`

	WorkDone []WorkLogEntry `gorm:"foreignKey:EmployeeID" json:"workDone,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate generates a new UUID for the profile if ID is not yet set.
func (e *EmployeeProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}

// WorkLogEntry is one record in a worker's log. Entries are append-only:
// storage exposes no update or delete for them, and exactly one entry is
// written when a complaint reaches completed.
type WorkLogEntry struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EmployeeID       string     `gorm:"index" json:"-"`
	Description      string     `json:"description"`
	CompletedAt      time.Time  `json:"completedAt"`
	CleanlinessScore *float64   `json:"cleanlinessScore,omitempty"`
	ComplaintID      *string    `gorm:"index" json:"complaintId,omitempty"`
	CreatedAt        time.Time  `json:"-"`
}
