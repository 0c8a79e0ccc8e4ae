// Package complaint provides the core logic for the complaint lifecycle:
// student submissions, worker assignment, and the asynchronous,
// externally-verified work-completion pipeline.
package complaint

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"cleanspot/backend/internal/imagestore"
	"cleanspot/backend/internal/models"
	"cleanspot/backend/internal/scorer"
	"cleanspot/backend/internal/storage"

	"github.com/google/uuid"
)

// Analyzer is the analysis process gateway as the orchestrator sees it: one
// blocking call per attempt, one outcome.
type Analyzer interface {
	Analyze(ctx context.Context, imageURL string) scorer.Outcome
}

// Notifier receives ops notifications. Implementations must be safe to call
// from request handlers; a nil Notifier disables notifications.
type Notifier interface {
	WorkCompleted(complaintID, area string, score float64)
	AnalysisFailed(complaintID, workerID, stage, detail string)
}

// Service handles the business logic for complaints.
type Service struct {
	Storage      storage.Storage
	Images       imagestore.Store
	Scorer       Analyzer
	Notifier     Notifier // optional
	UploadFolder string
}

// NewService creates a new complaint service.
func NewService(s storage.Storage, images imagestore.Store, an Analyzer, uploadFolder string) *Service {
	return &Service{Storage: s, Images: images, Scorer: an, UploadFolder: uploadFolder}
}

// ComplaintSubmission is a student's report of a dirty location.
type ComplaintSubmission struct {
	Area        string
	RollNumber  string
	Urgency     string
	Description string
	BeforeImage io.Reader // optional
}

// SubmitComplaint creates a pending complaint, uploading the before-image
// first when one is attached so a failed upload leaves no record behind.
func (s *Service) SubmitComplaint(ctx context.Context, sub ComplaintSubmission) (*models.Complaint, error) {
	if sub.Area == "" {
		return nil, validationErr("Area field is required.")
	}
	if sub.RollNumber == "" {
		return nil, validationErr("Roll Number field is required.")
	}
	if sub.Urgency != "" && !models.ValidUrgency(sub.Urgency) {
		return nil, validationErr("Urgency must be low, medium or high.")
	}

	complaint := &models.Complaint{
		ID:          uuid.New().String(),
		Area:        sub.Area,
		StudentID:   sub.RollNumber,
		Urgency:     models.Urgency(sub.Urgency),
		Description: sub.Description,
	}

	if sub.BeforeImage != nil {
		name := "before-" + complaint.ID
		up, err := s.Images.Store(ctx, sub.BeforeImage, s.UploadFolder+"/before", name)
		if err != nil {
			return nil, uploadErr(err)
		}
		complaint.BeforeImageURL = up.URL
		complaint.BeforeImageID = up.StorageID
	}

	if err := s.Storage.CreateComplaint(complaint); err != nil {
		return nil, persistenceErr(err)
	}

	s.publish(models.ComplaintEvent{
		Type:        models.EventSubmitted,
		ComplaintID: complaint.ID,
		Area:        complaint.Area,
		Status:      complaint.Status,
		At:          time.Now().UTC(),
	})
	return complaint, nil
}

// ClaimComplaint assigns the next pending complaint in the worker's area to
// them. It returns (nil, nil) when the area has no pending complaints.
func (s *Service) ClaimComplaint(ctx context.Context, workerUserID string) (*models.Complaint, error) {
	worker, err := s.Storage.FindWorkerByUserID(workerUserID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if worker == nil {
		return nil, notFoundErr("Employee profile not found.")
	}

	complaint, err := s.Storage.OldestPendingInArea(worker.AreaAssigned)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if complaint == nil {
		return nil, nil
	}

	complaint.Status = models.StatusAssigned
	complaint.AssignedTo = &worker.ID
	if err := s.Storage.SaveComplaint(complaint); err != nil {
		return nil, persistenceErr(err)
	}

	log.Printf("INFO: complaint %s assigned to worker %s (area %s)", complaint.ID, worker.ID, worker.AreaAssigned)
	s.publish(models.ComplaintEvent{
		Type:        models.EventAssigned,
		ComplaintID: complaint.ID,
		Area:        complaint.Area,
		Status:      complaint.Status,
		At:          time.Now().UTC(),
	})
	return complaint, nil
}

// WorkSubmission is a worker's claim that a complaint has been resolved,
// backed by an after-image.
type WorkSubmission struct {
	ComplaintID string
	Description string
	Image       io.Reader
}

// WorkResult is the success response of a work submission.
type WorkResult struct {
	ComplaintID      string    `json:"complaintId"`
	CleanlinessScore float64   `json:"cleanlinessScore"`
	ResolvedAt       time.Time `json:"resolvedAt"`
}

// SubmitWork runs the work-completion pipeline for one submission: validate
// ownership, upload the after-image, score it via the external analyzer, and
// commit the terminal state. Exactly one of the result and the error is
// non-nil; nothing here is retried automatically.
//
// If analysis fails after the upload succeeded, the uploaded image is kept
// (tagged provisional for the sweeper) and the complaint stays assigned; the
// caller resubmits, and the deterministic storage key gets a fresh sequence
// suffix.
func (s *Service) SubmitWork(ctx context.Context, workerUserID string, sub WorkSubmission) (*WorkResult, error) {
	if sub.ComplaintID == "" || sub.Description == "" {
		return nil, validationErr("Complaint ID and description are required.")
	}
	if sub.Image == nil {
		return nil, validationErr("After image file is required.")
	}

	worker, err := s.Storage.FindWorkerByUserID(workerUserID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if worker == nil {
		return nil, notFoundErr("Employee profile not found.")
	}

	complaint, err := s.Storage.FindComplaintByID(sub.ComplaintID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if complaint == nil {
		return nil, notFoundErr("Complaint not found.")
	}
	if complaint.AssignedTo == nil || *complaint.AssignedTo != worker.ID {
		return nil, notOwnerErr("You are not assigned to this complaint.")
	}

	// UPLOADING. The storage key is derived from complaint, area and worker
	// plus a monotonically increasing suffix, so resubmissions never collide
	// with the committed asset.
	seq, err := s.Storage.NextUploadSeq(complaint.ID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	name := fmt.Sprintf("after-%s-%s-%s-%d", complaint.ID, slug(complaint.Area), worker.ID, seq)
	up, err := s.Images.Store(ctx, sub.Image, s.UploadFolder+"/after", name)
	if err != nil {
		log.Printf("ERROR: upload failed for complaint %s (worker %s): %v", complaint.ID, worker.ID, err)
		return nil, uploadErr(err)
	}
	if err := s.Storage.MarkProvisionalUpload(up.StorageID, time.Now()); err != nil {
		// The upload itself succeeded; a missing provisional tag only
		// means the sweeper cannot find this asset later.
		log.Printf("WARNING: failed to tag provisional upload %s: %v", up.StorageID, err)
	}

	// ANALYZING. The uploaded image is not rolled back on failure; the
	// complaint's status and score are not advanced either.
	outcome := s.Scorer.Analyze(ctx, up.URL)
	switch outcome.Kind {
	case scorer.LaunchFailure:
		log.Printf("ERROR: scorer launch failed for complaint %s (worker %s): %v", complaint.ID, worker.ID, outcome.Err)
		s.reportAnalysisFailed(complaint, worker.ID, "launch", outcome.Err.Error())
		return nil, unavailableErr(outcome.Err)
	case scorer.ProcessFailure:
		detail := fmt.Sprintf("scorer exited with code %d", outcome.ExitCode)
		log.Printf("ERROR: analysis failed for complaint %s (worker %s): %s", complaint.ID, worker.ID, detail)
		s.reportAnalysisFailed(complaint, worker.ID, "process", detail)
		return nil, analysisErr("Image analysis failed.", detail)
	case scorer.ParseFailure:
		log.Printf("ERROR: unparsable scorer output for complaint %s (worker %s): %v", complaint.ID, worker.ID, outcome.Err)
		s.reportAnalysisFailed(complaint, worker.ID, "parse", outcome.RawOutput)
		return nil, analysisErr("Image analysis produced no score.", outcome.RawOutput)
	}

	// COMMITTING. The conditional write re-verifies ownership and status, so
	// a stale read or a concurrent completion affects zero rows instead of
	// double-completing.
	now := time.Now().UTC()
	committed, err := s.Storage.CompleteComplaint(complaint.ID, worker.ID, up.URL, up.StorageID, outcome.Score, now)
	if err != nil {
		return nil, persistenceErr(err)
	}
	if !committed {
		return nil, notOwnerErr("Complaint is no longer assigned to you.")
	}

	score := outcome.Score
	entry := &models.WorkLogEntry{
		EmployeeID:       worker.ID,
		Description:      sub.Description,
		CompletedAt:      now,
		CleanlinessScore: &score,
		ComplaintID:      &complaint.ID,
	}
	if err := s.Storage.AppendWorkLog(entry); err != nil {
		// The complaint is already completed; the missing log entry is
		// reconciled manually from the complaint's terminal fields.
		log.Printf("ERROR: work log append missing for complaint %s (worker %s): %v", complaint.ID, worker.ID, err)
	}

	if err := s.Storage.ClearProvisionalUpload(up.StorageID); err != nil {
		log.Printf("WARNING: failed to clear provisional tag %s: %v", up.StorageID, err)
	}

	s.publish(models.ComplaintEvent{
		Type:             models.EventCompleted,
		ComplaintID:      complaint.ID,
		Area:             complaint.Area,
		Status:           models.StatusCompleted,
		CleanlinessScore: &score,
		At:               now,
	})
	if s.Notifier != nil {
		s.Notifier.WorkCompleted(complaint.ID, complaint.Area, outcome.Score)
	}
	log.Printf("INFO: complaint %s completed by worker %s, cleanliness %.2f%%", complaint.ID, worker.ID, outcome.Score)

	return &WorkResult{ComplaintID: complaint.ID, CleanlinessScore: outcome.Score, ResolvedAt: now}, nil
}

// reportAnalysisFailed fans a failed scoring attempt out to the dashboards
// and the ops notifier. The complaint itself stays assigned.
func (s *Service) reportAnalysisFailed(complaint *models.Complaint, workerID, stage, detail string) {
	s.publish(models.ComplaintEvent{
		Type:        models.EventAnalysisFailed,
		ComplaintID: complaint.ID,
		Area:        complaint.Area,
		Status:      complaint.Status,
		At:          time.Now().UTC(),
	})
	if s.Notifier != nil {
		s.Notifier.AnalysisFailed(complaint.ID, workerID, stage, detail)
	}
}

func (s *Service) publish(event models.ComplaintEvent) {
	if err := s.Storage.PublishComplaintEvent(event); err != nil {
		log.Printf("WARNING: failed to publish %s event for complaint %s: %v", event.Type, event.ComplaintID, err)
	}
}

// slug flattens an area name into a storage-key-safe token.
func slug(area string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(area) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
