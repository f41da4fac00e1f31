package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Admin is a platform administration scope. Active can be revoked to retire
// an admin org without deleting its membership history.
type Admin struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Active      bool           `gorm:"not null;default:false" json:"active"`
	CreatedByID uuid.UUID      `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy *Account `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
}

// AdminRole is a named role within one admin scope. Code is slugified from
// Name on every save and unique per scope.
type AdminRole struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_admin_roles_admin_code" json:"admin_id"`
	Code        string         `gorm:"size:100;not null;uniqueIndex:idx_admin_roles_admin_code" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description *string        `json:"description,omitempty"`
	ACL         datatypes.JSON `json:"acl,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Admin *Admin `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

func (r *AdminRole) BeforeSave(tx *gorm.DB) error {
	r.Code = SlugifyCode(r.Name)
	return nil
}

// AdminMember binds an account to an admin scope. At most one membership per
// (account, admin) pair.
type AdminMember struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_admin_members_account_admin" json:"account_id"`
	AdminID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_admin_members_account_admin" json:"admin_id"`
	RoleID       *uuid.UUID     `gorm:"type:uuid" json:"role_id,omitempty"`
	ACL          datatypes.JSON `json:"acl,omitempty"`
	IsSuperAdmin bool           `gorm:"not null;default:false" json:"is_super_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Account *Account   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Admin   *Admin     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role    *AdminRole `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
}
