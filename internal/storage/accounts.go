package storage

import (
	"errors"

	"cleanspot/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// FindUserByUsername returns nil without an error when no account exists.
func (s *Service) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUserByID removes an account. Registration uses it to roll back the
// user row when profile creation fails.
func (s *Service) DeleteUserByID(id string) error {
	return s.DB.Delete(&models.User{}, "id = ?", id).Error
}

func (s *Service) CreateStudentProfile(profile *models.StudentProfile) error {
	return s.DB.Create(profile).Error
}

func (s *Service) CreateEmployeeProfile(profile *models.EmployeeProfile) error {
	return s.DB.Create(profile).Error
}

func (s *Service) FindStudentByUserID(userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := s.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindWorkerByUserID loads the employee profile together with its work log.
func (s *Service) FindWorkerByUserID(userID string) (*models.EmployeeProfile, error) {
	var profile models.EmployeeProfile
	err := s.DB.Preload("WorkDone").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
