package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a consultation request from the public site. Like contact
// submissions it is write-once and only ever removed by an admin.
type Booking struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name           string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email          string    `json:"email" db:"email" gorm:"type:text;not null"`
	Phone          string    `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Company        string    `json:"company,omitempty" db:"company" gorm:"type:text"`
	Service        string    `json:"service,omitempty" db:"service" gorm:"type:text"`
	PreferredDate  string    `json:"preferred_date,omitempty" db:"preferred_date" gorm:"type:text"`
	PreferredTime  string    `json:"preferred_time,omitempty" db:"preferred_time" gorm:"type:text"`
	Budget         string    `json:"budget,omitempty" db:"budget" gorm:"type:text"`
	Message        string    `json:"message" db:"message" gorm:"type:text;not null"`
	PrivacyConsent bool      `json:"privacy_consent" db:"privacy_consent" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
