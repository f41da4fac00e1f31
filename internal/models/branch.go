package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VendorBranch is a physical outlet of a vendor and the third authorization
// scope. Location references point at the shared geo tables.
type VendorBranch struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID                uuid.UUID      `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Code                    string         `gorm:"size:20;not null" json:"code"`
	CountryID               *uuid.UUID     `gorm:"type:uuid" json:"country_id,omitempty"`
	StateID                 *uuid.UUID     `gorm:"type:uuid" json:"state_id,omitempty"`
	DistrictID              *uuid.UUID     `gorm:"type:uuid" json:"district_id,omitempty"`
	ShopLocality            string         `gorm:"size:100" json:"shop_locality"`
	NearbyTown              *string        `gorm:"size:100" json:"nearby_town,omitempty"`
	PinCode                 string         `gorm:"size:10" json:"pin_code"`
	KeyPersonName           *string        `gorm:"size:100" json:"key_person_name,omitempty"`
	KeyPersonContactNumber  *string        `gorm:"size:15" json:"key_person_contact_number,omitempty"`
	LandPhone               *string        `gorm:"size:20" json:"land_phone,omitempty"`
	Latitude                *float64       `json:"latitude,omitempty"`
	Longitude               *float64       `json:"longitude,omitempty"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`

	Vendor   *Vendor              `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Country  *Country             `gorm:"constraint:OnDelete:RESTRICT" json:"country,omitempty"`
	State    *State               `gorm:"constraint:OnDelete:RESTRICT" json:"state,omitempty"`
	District *District            `gorm:"constraint:OnDelete:RESTRICT" json:"district,omitempty"`
	Profile  *VendorBranchProfile `gorm:"foreignKey:VendorBranchID" json:"profile,omitempty"`
}

// VendorBranchProfile is the one-to-one branch detail sheet, created lazily
// together with its branch. HasHomeDelivery is a pointer on purpose: nil means
// the vendor has not answered yet, an explicit false is a completed answer.
type VendorBranchProfile struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	VendorBranchID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"vendor_branch_id"`
	RegisteredAddress *string    `json:"registered_address,omitempty"`
	Website           *string    `gorm:"size:255" json:"website,omitempty"`
	FacebookLink      *string    `gorm:"size:255" json:"facebook_link,omitempty"`
	InstagramLink     *string    `gorm:"size:255" json:"instagram_link,omitempty"`
	GoogleMapLink     *string    `gorm:"size:255" json:"google_map_link,omitempty"`
	YoutubeLink       *string    `gorm:"size:255" json:"youtube_link,omitempty"`
	WorkingHoursFrom  *string    `gorm:"size:10" json:"working_hours_from,omitempty"`
	WorkingHoursTo    *string    `gorm:"size:10" json:"working_hours_to,omitempty"`
	HasHomeDelivery   *bool      `json:"has_home_delivery,omitempty"`
	Logo              *string    `gorm:"size:255" json:"logo,omitempty"`
	StorePhoto        *string    `gorm:"size:255" json:"store_photo,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	VendorBranch *VendorBranch `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// VendorBranchRole is a named role within one branch scope.
type VendorBranchRole struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VendorBranchID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_branch_roles_branch_code" json:"vendor_branch_id"`
	Code           string         `gorm:"size:100;not null;uniqueIndex:idx_branch_roles_branch_code" json:"code"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Description    *string        `json:"description,omitempty"`
	ACL            datatypes.JSON `json:"acl,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	VendorBranch *VendorBranch `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

func (r *VendorBranchRole) BeforeSave(tx *gorm.DB) error {
	r.Code = SlugifyCode(r.Name)
	return nil
}

// VendorBranchMember binds an account to a branch scope. Vendor-level super
// admins administer branches without a row here; the permission resolver
// handles that inheritance.
type VendorBranchMember struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_branch_members_account_branch" json:"account_id"`
	VendorBranchID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_branch_members_account_branch" json:"vendor_branch_id"`
	RoleID         *uuid.UUID     `gorm:"type:uuid" json:"role_id,omitempty"`
	ACL            datatypes.JSON `json:"acl,omitempty"`
	IsSuperAdmin   bool           `gorm:"not null;default:false" json:"is_super_admin"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Account      *Account          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	VendorBranch *VendorBranch     `gorm:"constraint:OnDelete:CASCADE" json:"vendor_branch,omitempty"`
	Role         *VendorBranchRole `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
}
