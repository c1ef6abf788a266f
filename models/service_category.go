package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxCategoryImages caps the showcase references a category may hold.
const MaxCategoryImages = 3

// ServiceCategory is one of the pre-seeded studio service areas. Images holds
// up to MaxCategoryImages project identifiers used for the category showcase
// and is replaced wholesale on every update.
type ServiceCategory struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_service_categories_slug"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Images    []string  `json:"images" db:"images" gorm:"type:jsonb;serializer:json"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
