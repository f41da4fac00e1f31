package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth provider tags stored on Account.AuthProvider and AccountProvider.Provider.
const (
	ProviderEmail    = "email"
	ProviderPhone    = "phone"
	ProviderGoogle   = "google"
	ProviderApple    = "apple"
	ProviderFirebase = "firebase"
)

// Account is the platform-wide identity. Email and phone are optional but at
// least one is always present; both are unique when set. Password is nil for
// accounts that only authenticate through an external provider.
type Account struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName     string         `gorm:"size:100;not null" json:"first_name"`
	MiddleName    *string        `gorm:"size:100" json:"middle_name,omitempty"`
	LastName      *string        `gorm:"size:100" json:"last_name,omitempty"`
	Username      string         `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email         *string        `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	PhoneNumber   *string        `gorm:"size:15;uniqueIndex" json:"phone_number,omitempty"`
	Password      *string        `gorm:"size:128" json:"-"`
	EmailVerified bool           `gorm:"not null;default:false" json:"email_verified"`
	PhoneVerified bool           `gorm:"not null;default:false" json:"phone_verified"`
	AuthProvider  string         `gorm:"size:50" json:"-"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
