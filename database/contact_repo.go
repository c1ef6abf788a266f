package database

import (
	"github.com/google/uuid"
	"github.com/studionord/backend/models"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// Add inserts a new contact submission into the database
func (r *ContactRepo) Add(submission *models.ContactSubmission) error {
	return r.db.Create(submission).Error
}

// FindAll returns all contact submissions, newest first
func (r *ContactRepo) FindAll() ([]*models.ContactSubmission, error) {
	var submissions []*models.ContactSubmission
	err := r.db.Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

// Delete removes one contact submission by id
func (r *ContactRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.ContactSubmission{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
