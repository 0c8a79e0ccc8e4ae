package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"cleanspot/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence contract consumed by the services. Complaint
// terminal fields are only ever written through CompleteComplaint.
type Storage interface {
	CreateUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	DeleteUserByID(id string) error
	CreateStudentProfile(profile *models.StudentProfile) error
	CreateEmployeeProfile(profile *models.EmployeeProfile) error
	FindStudentByUserID(userID string) (*models.StudentProfile, error)
	FindWorkerByUserID(userID string) (*models.EmployeeProfile, error)

	CreateComplaint(complaint *models.Complaint) error
	FindComplaintByID(id string) (*models.Complaint, error)
	SaveComplaint(complaint *models.Complaint) error
	OldestPendingInArea(area string) (*models.Complaint, error)
	ListPendingInArea(area string) ([]models.Complaint, error)
	ListComplaintsByStudent(rollNumber string) ([]models.Complaint, error)
	ListComplaintsByWorker(workerID string) ([]models.Complaint, error)
	CompleteComplaint(id, workerID, afterURL, afterID string, score float64, resolvedAt time.Time) (bool, error)
	AppendWorkLog(entry *models.WorkLogEntry) error

	NextUploadSeq(complaintID string) (int64, error)
	MarkProvisionalUpload(storageID string, at time.Time) error
	ClearProvisionalUpload(storageID string) error
	ProvisionalUploadsOlderThan(cutoff time.Time) ([]string, error)

	PublishComplaintEvent(event models.ComplaintEvent) error
}

// Service implements Storage on PostgreSQL (records) and Redis (upload
// bookkeeping and the event channel).
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateComplaint inserts a new complaint (status defaults to pending).
func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	if err := s.DB.Create(complaint).Error; err != nil {
		log.Printf("ERROR: Failed to save complaint for area %s: %v", complaint.Area, err)
		return err
	}
	return nil
}

// FindComplaintByID returns nil without an error when no record exists.
func (s *Service) FindComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.First(&complaint, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// SaveComplaint persists the complaint as-is. The assignment flow uses it;
// the completion flow must go through CompleteComplaint instead.
func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	return s.DB.Save(complaint).Error
}

// OldestPendingInArea picks the next complaint for a worker claiming work:
// highest urgency first, oldest first within the same urgency.
func (s *Service) OldestPendingInArea(area string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.Where("area = ? AND status = ?", area, models.StatusPending).
		Order("CASE urgency WHEN 'high' THEN 2 WHEN 'medium' THEN 1 ELSE 0 END DESC").
		Order("created_at asc").
		First(&complaint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ListPendingInArea returns pending complaints in claim order. An empty area
// matches every area.
func (s *Service) ListPendingInArea(area string) ([]models.Complaint, error) {
	q := s.DB.Where("status = ?", models.StatusPending)
	if area != "" {
		q = q.Where("area = ?", area)
	}
	var complaints []models.Complaint
	err := q.Order("CASE urgency WHEN 'high' THEN 2 WHEN 'medium' THEN 1 ELSE 0 END DESC").
		Order("created_at asc").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Service) ListComplaintsByStudent(rollNumber string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("student_id = ?", rollNumber).
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for student %s: %v", rollNumber, err)
		return nil, err
	}
	return complaints, nil
}

func (s *Service) ListComplaintsByWorker(workerID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("assigned_to = ?", workerID).
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for worker %s: %v", workerID, err)
		return nil, err
	}
	return complaints, nil
}

// CompleteComplaint performs the terminal write: after-image handle, score,
// resolvedAt and the status transition land in one conditional UPDATE. The
// WHERE clause re-checks ownership and that the status is still assigned, so
// a concurrent completion (or a stale read) affects zero rows and reports
// committed=false instead of double-completing.
func (s *Service) CompleteComplaint(id, workerID, afterURL, afterID string, score float64, resolvedAt time.Time) (bool, error) {
	res := s.DB.Model(&models.Complaint{}).
		Where("id = ? AND assigned_to = ? AND status = ?", id, workerID, models.StatusAssigned).
		Updates(map[string]interface{}{
			"status":            models.StatusCompleted,
			"after_image_url":   afterURL,
			"after_image_id":    afterID,
			"cleanliness_score": score,
			"resolved_at":       resolvedAt,
		})
	if res.Error != nil {
		log.Printf("ERROR: Failed to complete complaint %s: %v", id, res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AppendWorkLog adds one entry to a worker's log. The log is append-only:
// there is intentionally no update or delete counterpart.
func (s *Service) AppendWorkLog(entry *models.WorkLogEntry) error {
	if err := s.DB.Create(entry).Error; err != nil {
		log.Printf("ERROR: Failed to append work log for worker %s: %v", entry.EmployeeID, err)
		return err
	}
	return nil
}
