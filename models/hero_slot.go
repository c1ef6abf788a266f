package models

import (
	"time"

	"github.com/google/uuid"
)

// HeroSlot binds one project into the landing-page hero configuration. Slots
// are replaced as a set on every save; the position constraint matches the
// widest cap the store has ever allowed (see config HERO_SLOT_CAP).
type HeroSlot struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID       uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_hero_slots_project_id"`
	Position        int       `json:"position" db:"position" gorm:"not null;uniqueIndex:idx_hero_slots_position;check:position >= 1 AND position <= 4"`
	Descriptions    []string  `json:"descriptions" db:"descriptions" gorm:"type:jsonb;serializer:json"`
	Images          []string  `json:"images" db:"images" gorm:"type:jsonb;serializer:json"`
	BackgroundImage string    `json:"background_image" db:"background_image" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
