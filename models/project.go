package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents one portfolio entry. OrderPosition defines the display
// order: create appends at max+1, reorder rewrites every position to the
// submitted index. Gaps left by deletions are tolerated.
type Project struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null"`
	Categories    []string  `json:"categories" db:"categories" gorm:"type:jsonb;serializer:json"`
	Description   string    `json:"description" db:"description" gorm:"type:text;not null"`
	ImageURL      string    `json:"image_url" db:"image_url" gorm:"type:text;not null"`
	ImagePath     string    `json:"image_path" db:"image_path" gorm:"type:text;not null"`
	Link          *string   `json:"link,omitempty" db:"link" gorm:"type:text"`
	OrderPosition int       `json:"order_position" db:"order_position" gorm:"not null;index:idx_projects_order_position"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
