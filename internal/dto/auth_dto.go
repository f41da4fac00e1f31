package dto

import "github.com/google/uuid"

type FirebaseSignInRequest struct {
	IDToken    string `json:"id_token"`
	Password   string `json:"password,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
}

// VendorPortalBranch is one branch the account can act in, directly or via a
// vendor-level super-admin membership.
type VendorPortalBranch struct {
	DisplayName          string     `json:"display_name"`
	VendorBranchID       uuid.UUID  `json:"vendor_branch_id"`
	VendorBranchMemberID *uuid.UUID `json:"vendor_branch_member_id,omitempty"`
	IsSuperAdmin         bool       `json:"is_super_admin"`
}

// VendorPortalAccount groups an account's access under one vendor: the
// vendor-level membership (if any) plus every branch it can reach.
type VendorPortalAccount struct {
	DisplayName            string               `json:"display_name"`
	VendorID               uuid.UUID            `json:"vendor_id"`
	VendorMemberID         *uuid.UUID           `json:"vendor_member_id,omitempty"`
	IsSuperAdmin           bool                 `json:"is_super_admin"`
	HasVendorAccountAccess bool                 `json:"has_vendor_account_access"`
	Branches               []VendorPortalBranch `json:"branches"`
}

type FirebaseAuthResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Username             string                `json:"username"`
	Email                *string               `json:"email"`
	Phone                *string               `json:"phone"`
	FirstName            string                `json:"first_name"`
	LastName             *string               `json:"last_name"`
	EmailVerified        bool                  `json:"email_verified"`
	PhoneVerified        bool                  `json:"phone_verified"`
	NewUser              bool                  `json:"new_user"`
	VendorPortalAccounts []VendorPortalAccount `json:"vendor_portal_accounts"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// FieldErrorResponse attributes a validation failure to one request field.
type FieldErrorResponse struct {
	Error  bool              `json:"error"`
	Fields map[string]string `json:"fields"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
