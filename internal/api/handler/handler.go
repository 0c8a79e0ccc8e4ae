package handler

import (
	"context"
	"time"

	"cleanspot/backend/internal/complaint"
	"cleanspot/backend/internal/feed"
	"cleanspot/backend/internal/imagestore"
	"cleanspot/backend/internal/models"
	"cleanspot/backend/internal/storage"
)

// ComplaintService is the slice of the complaint service the HTTP layer uses.
type ComplaintService interface {
	SubmitComplaint(ctx context.Context, sub complaint.ComplaintSubmission) (*models.Complaint, error)
	ClaimComplaint(ctx context.Context, workerUserID string) (*models.Complaint, error)
	SubmitWork(ctx context.Context, workerUserID string, sub complaint.WorkSubmission) (*complaint.WorkResult, error)
}

// Handler carries the dependencies of all HTTP endpoints.
type Handler struct {
	Complaints ComplaintService
	Storage    storage.Storage
	Images     imagestore.Store
	Scorer     complaint.Analyzer
	Hub        *feed.Hub

	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewHandler(complaints ComplaintService, s storage.Storage, images imagestore.Store, scorer complaint.Analyzer, hub *feed.Hub, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		Complaints: complaints,
		Storage:    s,
		Images:     images,
		Scorer:     scorer,
		Hub:        hub,
		JWTSecret:  []byte(jwtSecret),
		TokenTTL:   tokenTTL,
	}
}
