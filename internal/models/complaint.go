package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintStatus is the lifecycle state of a complaint.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusAssigned   ComplaintStatus = "assigned"
	StatusInProgress ComplaintStatus = "inProgress" // reserved, unused in the canonical flow
	StatusCompleted  ComplaintStatus = "completed"
)

// Urgency levels accepted on submission.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ValidUrgency reports whether s is one of the accepted urgency levels.
func ValidUrgency(s string) bool {
	switch Urgency(s) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	default:
		return false
	}
}

// Complaint is a reported dirty-location record.
//
// CleanlinessScore and ResolvedAt are set together, exactly once, in the same
// write that moves Status to completed. Only the work-completion flow performs
// that write.
type Complaint struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Area        string          `json:"area"`
	StudentID   string          `json:"studentId"` // reporting student's roll number
	Urgency     Urgency         `json:"urgency"`
	Description string          `json:"description"`
	Status      ComplaintStatus `json:"status"`

	BeforeImageURL string `json:"beforeImageUrl,omitempty"`
	BeforeImageID  string `json:"-"`

	AfterImageURL *string `json:"afterImageUrl,omitempty"`
	AfterImageID  *string `json:"-"`

	CleanlinessScore *float64   `json:"cleanlinessScore,omitempty"`
	ResolvedAt       *time.Time `json:"resolvedAt,omitempty"`

	AssignedTo *string `gorm:"index" json:"assignedTo,omitempty"` // EmployeeProfile ID

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate fills in the ID and defaults before the record is inserted.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	if c.Urgency == "" {
		c.Urgency = UrgencyLow
	}
	return
}
