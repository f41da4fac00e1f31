package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AccountProvider links an Account to one external identity provider.
// ProviderUID is globally unique: a provider subject can never be claimed by
// two accounts. One link per (provider, account) pair.
type AccountProvider struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_account_providers_provider_account" json:"account_id"`
	Provider    string         `gorm:"size:50;not null;uniqueIndex:idx_account_providers_provider_account" json:"provider"`
	ProviderUID string         `gorm:"size:255;not null;uniqueIndex" json:"provider_uid"`
	ExtraData   datatypes.JSON `json:"extra_data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`

	Account *Account `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
