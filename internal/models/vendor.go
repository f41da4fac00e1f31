package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Business types accepted on Vendor.BusinessType.
const (
	BusinessWholesale          = "Wholesale"
	BusinessRetail             = "Retail"
	BusinessWholesaleAndRetail = "Wholesale & Retail"
	BusinessServiceBased       = "Service based"
)

// Vendor is a marketplace seller scope. DefaultBranchID stays nil until the
// first branch is created; IsOnboarded is derived by the onboarding evaluator
// and only ever flips false -> true.
type Vendor struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string         `gorm:"size:200;not null" json:"name"`
	ContactNumber   string         `gorm:"size:15;not null;uniqueIndex" json:"contact_number"`
	OwnerName       *string        `gorm:"size:100" json:"owner_name,omitempty"`
	BusinessType    string         `gorm:"size:20" json:"business_type"`
	ShopTypeID      *uuid.UUID     `gorm:"type:uuid" json:"shop_type_id,omitempty"`
	DefaultBranchID *uuid.UUID     `gorm:"type:uuid" json:"default_branch_id,omitempty"`
	IsOnboarded     bool           `gorm:"not null;default:false" json:"is_onboarded"`
	CreatedByID     uuid.UUID      `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	ShopType      *ShopType      `gorm:"constraint:OnDelete:RESTRICT" json:"shop_type,omitempty"`
	DefaultBranch *VendorBranch  `gorm:"foreignKey:DefaultBranchID;constraint:OnDelete:SET NULL" json:"default_branch,omitempty"`
	Branches      []VendorBranch `gorm:"foreignKey:VendorID" json:"branches,omitempty"`
	CreatedBy     *Account       `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
}

// VendorRole is a named role within one vendor scope.
type VendorRole struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_roles_vendor_code" json:"vendor_id"`
	Code        string         `gorm:"size:100;not null;uniqueIndex:idx_vendor_roles_vendor_code" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description *string        `json:"description,omitempty"`
	ACL         datatypes.JSON `json:"acl,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Vendor *Vendor `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

func (r *VendorRole) BeforeSave(tx *gorm.DB) error {
	r.Code = SlugifyCode(r.Name)
	return nil
}

// VendorMember binds an account to a vendor scope. At most one membership per
// (account, vendor) pair.
type VendorMember struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_members_account_vendor" json:"account_id"`
	VendorID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_members_account_vendor" json:"vendor_id"`
	RoleID       *uuid.UUID     `gorm:"type:uuid" json:"role_id,omitempty"`
	ACL          datatypes.JSON `json:"acl,omitempty"`
	IsSuperAdmin bool           `gorm:"not null;default:false" json:"is_super_admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Account *Account    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Vendor  *Vendor     `gorm:"constraint:OnDelete:CASCADE" json:"vendor,omitempty"`
	Role    *VendorRole `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
}
