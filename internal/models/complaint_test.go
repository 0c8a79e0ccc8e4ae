package models_test

import (
	"testing"

	"cleanspot/backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

// TestComplaintBeforeCreate_Defaults verifies the hook fills ID, status and
// urgency when they are unset.
func TestComplaintBeforeCreate_Defaults(t *testing.T) {
	complaint := &models.Complaint{
		Area:      "Block A",
		StudentID: "CS21B001",
	}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, complaint.ID)
	_, parseErr := uuid.Parse(complaint.ID)
	assert.NoError(t, parseErr, "Complaint ID must be a valid UUID string")
	assert.Equal(t, models.StatusPending, complaint.Status)
	assert.Equal(t, models.UrgencyLow, complaint.Urgency)
}

// TestComplaintBeforeCreate_PreservesExistingValues verifies the hook never
// overwrites fields set by the caller.
func TestComplaintBeforeCreate_PreservesExistingValues(t *testing.T) {
	existingID := uuid.New().String()
	complaint := &models.Complaint{
		ID:        existingID,
		Area:      "Hostel 3",
		StudentID: "CS21B002",
		Status:    models.StatusAssigned,
		Urgency:   models.UrgencyHigh,
	}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, complaint.ID)
	assert.Equal(t, models.StatusAssigned, complaint.Status)
	assert.Equal(t, models.UrgencyHigh, complaint.Urgency)
}

func TestValidUrgency(t *testing.T) {
	assert.True(t, models.ValidUrgency("low"))
	assert.True(t, models.ValidUrgency("medium"))
	assert.True(t, models.ValidUrgency("high"))
	assert.False(t, models.ValidUrgency("urgent"))
	assert.False(t, models.ValidUrgency(""))
}

// TestEmployeeProfileBeforeCreate verifies UUID generation and that Skills
// round-trips as a PostgreSQL text array.
func TestEmployeeProfileBeforeCreate(t *testing.T) {
	profile := &models.EmployeeProfile{
		UserID:       uuid.New().String(),
		Name:         "Ravi",
		PhoneNumber:  "9999000011",
		AreaAssigned: "Block A",
		Skills:       pq.StringArray{"sweeping", "mopping"},
	}

	err := profile.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Contains(t, profile.Skills, "sweeping")
	assert.Contains(t, profile.Skills, "mopping")
}

func TestUserBeforeCreate_GeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		user := &models.User{Username: "u", Password: "p", Role: models.RoleStudent}
		assert.NoError(t, user.BeforeCreate(nil))
		assert.NotContains(t, seen, user.ID)
		seen[user.ID] = true
	}
}
