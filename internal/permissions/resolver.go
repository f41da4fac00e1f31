package permissions

import (
	"context"
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotAuthorized is the uniform denial. Callers never learn whether the
// scope was missing, unknown, or simply not theirs.
var ErrNotAuthorized = errors.New("not authorized")

// Membership is the scope-agnostic view of a resolved membership row.
type Membership struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	RoleID       *uuid.UUID
	ACL          datatypes.JSON
	IsSuperAdmin bool
	// Inherited is set when access was granted through a parent-scope
	// super-admin membership rather than a row in this scope.
	Inherited bool
}

// Policy decides whether a regular (non-super-admin) membership may act.
// Super admins bypass the policy. The stored ACL blobs are carried on
// Membership for future policies; AllowAnyMember is the current default.
type Policy interface {
	Allow(m Membership) bool
}

// AllowAnyMember authorizes every existing membership equally.
type AllowAnyMember struct{}

func (AllowAnyMember) Allow(Membership) bool { return true }

// Grant types attach the resolved scope row alongside the membership so
// downstream handlers need not re-resolve.

type AdminGrant struct {
	Admin      models.Admin
	Membership Membership
}

type VendorGrant struct {
	Vendor     models.Vendor
	Membership Membership
}

type BranchGrant struct {
	Branch     models.VendorBranch
	Membership Membership
}

// Resolver authorizes a caller against one of the three scope kinds. It is
// stateless across requests: membership can change between calls, so every
// request resolves fresh.
type Resolver struct {
	db     *gorm.DB
	policy Policy
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db, policy: AllowAnyMember{}}
}

// WithPolicy swaps the membership policy hook.
func (r *Resolver) WithPolicy(p Policy) *Resolver {
	return &Resolver{db: r.db, policy: p}
}

// Admin resolves access to an admin scope. An account without a membership
// in the requested scope is still granted when it holds super-admin status
// on any admin scope.
func (r *Resolver) Admin(ctx context.Context, accountID uuid.UUID, adminID string) (*AdminGrant, error) {
	scopeID, ok := parseScopeID(adminID)
	if !ok {
		return nil, ErrNotAuthorized
	}

	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", scopeID).Error; err != nil {
		return nil, denyOnNotFound(err)
	}

	m, err := r.resolve(
		func() (*Membership, error) {
			var row models.AdminMember
			err := r.db.WithContext(ctx).
				Where("account_id = ? AND admin_id = ?", accountID, admin.ID).
				First(&row).Error
			return adminMembership(&row, false), skipNotFound(err)
		},
		func() (*Membership, error) {
			// Cross-scope escalation: super admin of any admin org.
			var row models.AdminMember
			err := r.db.WithContext(ctx).
				Where("account_id = ? AND is_super_admin = ?", accountID, true).
				First(&row).Error
			return adminMembership(&row, true), skipNotFound(err)
		},
	)
	if err != nil {
		return nil, err
	}
	return &AdminGrant{Admin: admin, Membership: *m}, nil
}

// Vendor resolves access to a vendor scope. No fallback: absent membership
// denies outright.
func (r *Resolver) Vendor(ctx context.Context, accountID uuid.UUID, vendorID string) (*VendorGrant, error) {
	scopeID, ok := parseScopeID(vendorID)
	if !ok {
		return nil, ErrNotAuthorized
	}

	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", scopeID).Error; err != nil {
		return nil, denyOnNotFound(err)
	}

	m, err := r.resolve(
		func() (*Membership, error) {
			var row models.VendorMember
			err := r.db.WithContext(ctx).
				Where("account_id = ? AND vendor_id = ?", accountID, vendor.ID).
				First(&row).Error
			return vendorMembership(&row, false), skipNotFound(err)
		},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &VendorGrant{Vendor: vendor, Membership: *m}, nil
}

// VendorBranch resolves access to a branch scope. Vendor-level super admins
// implicitly administer every child branch.
func (r *Resolver) VendorBranch(ctx context.Context, accountID uuid.UUID, branchID string) (*BranchGrant, error) {
	scopeID, ok := parseScopeID(branchID)
	if !ok {
		return nil, ErrNotAuthorized
	}

	var branch models.VendorBranch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", scopeID).Error; err != nil {
		return nil, denyOnNotFound(err)
	}

	m, err := r.resolve(
		func() (*Membership, error) {
			var row models.VendorBranchMember
			err := r.db.WithContext(ctx).
				Where("account_id = ? AND vendor_branch_id = ?", accountID, branch.ID).
				First(&row).Error
			return branchMembership(&row, false), skipNotFound(err)
		},
		func() (*Membership, error) {
			var row models.VendorMember
			err := r.db.WithContext(ctx).
				Where("account_id = ? AND vendor_id = ?", accountID, branch.VendorID).
				First(&row).Error
			if err != nil {
				return nil, skipNotFound(err)
			}
			if !row.IsSuperAdmin {
				// A regular vendor membership grants nothing at branch level.
				return nil, nil
			}
			return vendorMembership(&row, true), nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &BranchGrant{Branch: branch, Membership: *m}, nil
}

// resolve runs the shared grant ladder: primary membership, then the scope
// kind's fallback strategy, then super-admin bypass or policy check.
func (r *Resolver) resolve(primary, fallback func() (*Membership, error)) (*Membership, error) {
	m, err := primary()
	if err != nil {
		return nil, err
	}
	if m == nil && fallback != nil {
		m, err = fallback()
		if err != nil {
			return nil, err
		}
	}
	if m == nil {
		return nil, ErrNotAuthorized
	}
	if m.IsSuperAdmin {
		return m, nil
	}
	if !r.policy.Allow(*m) {
		return nil, ErrNotAuthorized
	}
	return m, nil
}

func parseScopeID(raw string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// denyOnNotFound collapses unknown scopes into the uniform denial while
// letting storage failures propagate.
func denyOnNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotAuthorized
	}
	return err
}

// skipNotFound turns a missing row into (nil, nil) so the resolve ladder can
// try the fallback.
func skipNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func adminMembership(row *models.AdminMember, inherited bool) *Membership {
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	return &Membership{
		ID:           row.ID,
		AccountID:    row.AccountID,
		RoleID:       row.RoleID,
		ACL:          row.ACL,
		IsSuperAdmin: row.IsSuperAdmin,
		Inherited:    inherited,
	}
}

func vendorMembership(row *models.VendorMember, inherited bool) *Membership {
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	return &Membership{
		ID:           row.ID,
		AccountID:    row.AccountID,
		RoleID:       row.RoleID,
		ACL:          row.ACL,
		IsSuperAdmin: row.IsSuperAdmin,
		Inherited:    inherited,
	}
}

func branchMembership(row *models.VendorBranchMember, inherited bool) *Membership {
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	return &Membership{
		ID:           row.ID,
		AccountID:    row.AccountID,
		RoleID:       row.RoleID,
		ACL:          row.ACL,
		IsSuperAdmin: row.IsSuperAdmin,
		Inherited:    inherited,
	}
}
