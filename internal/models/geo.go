package models

import (
	"time"

	"github.com/google/uuid"
)

// Shared geographic reference data. Branches reference these rows; deletion
// is restricted while referenced.

type Country struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:255;not null;uniqueIndex" json:"name"`

	States []State `json:"states,omitempty"`
}

type State struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_states_name_country" json:"name"`
	CountryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_states_name_country" json:"country_id"`

	Country   *Country   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Districts []District `json:"districts,omitempty"`
}

type District struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"size:255;not null;uniqueIndex:idx_districts_name_state" json:"name"`
	StateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_districts_name_state" json:"state_id"`

	State *State `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ShopType is the vendor category catalogue maintained by platform admins.
type ShopType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string    `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
