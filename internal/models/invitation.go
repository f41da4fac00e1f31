package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation states. Terminal states have no outgoing transitions.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

// Invitation invites an email address into exactly one of a vendor or a
// vendor branch; the CHECK constraint rejects rows with both or neither
// target. AccountID is resolved once the invitee registers or logs in.
//
// Uniqueness of (email, target, status) is enforced by two partial indexes,
// one per target kind. A single composite index over both target columns
// would never fire: the unset target column is always NULL and SQL unique
// indexes treat NULL rows as distinct.
type Invitation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"size:255;not null;index;uniqueIndex:idx_invitations_email_vendor_status,where:vendor_branch_id IS NULL;uniqueIndex:idx_invitations_email_branch_status,where:vendor_id IS NULL" json:"email"`
	VendorID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_invitations_email_vendor_status;check:chk_invitations_single_target,(vendor_id IS NULL) <> (vendor_branch_id IS NULL)" json:"vendor_id,omitempty"`
	VendorBranchID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_invitations_email_branch_status" json:"vendor_branch_id,omitempty"`
	AccountID      *uuid.UUID `gorm:"type:uuid" json:"account_id,omitempty"`
	InvitedByID    uuid.UUID  `gorm:"type:uuid;not null" json:"invited_by_id"`
	Status         string     `gorm:"size:20;not null;uniqueIndex:idx_invitations_email_vendor_status;uniqueIndex:idx_invitations_email_branch_status" json:"status"`
	Token          string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Vendor       *Vendor       `gorm:"constraint:OnDelete:CASCADE" json:"vendor,omitempty"`
	VendorBranch *VendorBranch `gorm:"constraint:OnDelete:CASCADE" json:"vendor_branch,omitempty"`
	Account      *Account      `gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL" json:"-"`
	InvitedBy    *Account      `gorm:"foreignKey:InvitedByID;constraint:OnDelete:CASCADE" json:"-"`
}

// Pending reports whether the invitation can still transition.
func (i *Invitation) Pending() bool {
	return i.Status == InviteStatusPending
}
