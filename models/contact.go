package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactSubmission is a write-once record of a visitor inquiry. It is never
// mutated after creation; admins may delete it (single or bulk).
type ContactSubmission struct {
	ID               uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name             string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email            string    `json:"email" db:"email" gorm:"type:text;not null"`
	Phone            string    `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Company          string    `json:"company,omitempty" db:"company" gorm:"type:text"`
	Message          string    `json:"message" db:"message" gorm:"type:text;not null"`
	PrivacyConsent   bool      `json:"privacy_consent" db:"privacy_consent" gorm:"not null"`
	MarketingConsent bool      `json:"marketing_consent" db:"marketing_consent"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
