package database

import (
	"github.com/studionord/backend/models"
	"gorm.io/gorm"
)

type HeroSlotRepo struct {
	db *gorm.DB
}

func NewHeroSlotRepo(db *gorm.DB) *HeroSlotRepo {
	return &HeroSlotRepo{db}
}

// FindAll returns the current hero configuration ordered by slot position
func (r *HeroSlotRepo) FindAll() ([]*models.HeroSlot, error) {
	var slots []*models.HeroSlot
	err := r.db.Preload("Project").Order("position ASC").Find(&slots).Error
	return slots, err
}

// ReplaceAll swaps the entire hero configuration for the given set. Delete
// and reinsert run in one transaction so readers never observe an empty
// configuration between the two phases.
func (r *HeroSlotRepo) ReplaceAll(slots []*models.HeroSlot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.HeroSlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(slots).Error
	})
}

// DeleteAll clears the hero configuration
func (r *HeroSlotRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&models.HeroSlot{}).Error
}
