package database

import (
	"time"

	"github.com/studionord/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultCategories is the fixed seed set. Slugs are the conflict target for
// the idempotent upsert in InitializeDefaults.
var defaultCategories = []models.ServiceCategory{
	{Slug: "branding", Name: "Branding & Identity"},
	{Slug: "web-design", Name: "Web Design & Development"},
	{Slug: "interior", Name: "Interior & Spatial Design"},
	{Slug: "motion", Name: "Motion & 3D"},
}

type ServiceCategoryRepo struct {
	db *gorm.DB
}

func NewServiceCategoryRepo(db *gorm.DB) *ServiceCategoryRepo {
	return &ServiceCategoryRepo{db}
}

// FindAll returns every service category ordered by slug
func (r *ServiceCategoryRepo) FindAll() ([]*models.ServiceCategory, error) {
	var categories []*models.ServiceCategory
	err := r.db.Order("slug ASC").Find(&categories).Error
	return categories, err
}

// FindBySlug returns a category by its slug
func (r *ServiceCategoryRepo) FindBySlug(slug string) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	err := r.db.First(&category, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SetImages replaces the category's showcase references in a single row
// update and refreshes its update timestamp. Length validation happens at
// the handler; this is the last line of defense.
func (r *ServiceCategoryRepo) SetImages(slug string, images []string) error {
	if len(images) > models.MaxCategoryImages {
		return gorm.ErrInvalidData
	}
	res := r.db.Model(&models.ServiceCategory{}).
		Where("slug = ?", slug).
		Updates(map[string]any{
			"images":     images,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// InitializeDefaults seeds the fixed category set. It is idempotent: if any
// rows exist it is a no-op, and the insert itself upserts on slug so a racing
// second invocation never duplicates rows.
func (r *ServiceCategoryRepo) InitializeDefaults() error {
	var count int64
	if err := r.db.Model(&models.ServiceCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := make([]models.ServiceCategory, len(defaultCategories))
	copy(seed, defaultCategories)
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&seed).Error
}
