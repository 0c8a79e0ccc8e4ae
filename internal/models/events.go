package models

import "time"

// Complaint event types broadcast to dashboard feeds.
const (
	EventSubmitted      = "submitted"
	EventAssigned       = "assigned"
	EventCompleted      = "completed"
	EventAnalysisFailed = "analysisFailed"
)

// ComplaintEvent is the payload published on the complaint event channel and
// pushed to connected dashboard clients.
type ComplaintEvent struct {
	Type             string          `json:"type"`
	ComplaintID      string          `json:"complaintId"`
	Area             string          `json:"area"`
	Status           ComplaintStatus `json:"status"`
	CleanlinessScore *float64        `json:"cleanlinessScore,omitempty"`
	At               time.Time       `json:"at"`
}
