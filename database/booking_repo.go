package database

import (
	"github.com/google/uuid"
	"github.com/studionord/backend/models"
	"gorm.io/gorm"
)

type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db}
}

// Add inserts a new booking into the database
func (r *BookingRepo) Add(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// FindAll returns all bookings, newest first
func (r *BookingRepo) FindAll() ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

// Delete removes one booking by id
func (r *BookingRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMany removes the given bookings. Each delete is attempted even when
// an earlier one fails; ids that matched no row are reported alongside real
// store errors so the caller can surface a precise per-id picture.
func (r *BookingRepo) DeleteMany(ids []uuid.UUID) (deleted int, failed map[uuid.UUID]string) {
	failed = make(map[uuid.UUID]string)
	for _, id := range ids {
		if err := r.Delete(id); err != nil {
			failed[id] = err.Error()
			continue
		}
		deleted++
	}
	return deleted, failed
}
