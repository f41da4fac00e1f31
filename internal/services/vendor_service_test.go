package services

import (
	"context"
	"testing"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/The-Zed-Team/kriyado-backend/internal/onboarding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVendorService(db *gorm.DB) *VendorService {
	return NewVendorService(db, onboarding.NewEvaluator(db))
}

func TestCreateVendorMakesOwner(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "founder@example.com")
	svc := newVendorService(db)

	vendor, err := svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name:          "Greenleaf Traders",
		ContactNumber: "9400000030",
		BusinessType:  models.BusinessRetail,
	})
	require.NoError(t, err)
	assert.False(t, vendor.IsOnboarded)
	assert.Nil(t, vendor.DefaultBranchID)

	var role models.VendorRole
	require.NoError(t, db.Where("vendor_id = ?", vendor.ID).First(&role).Error)
	assert.Equal(t, "Owner", role.Name)
	assert.Equal(t, "owner", role.Code)

	var member models.VendorMember
	require.NoError(t, db.Where("vendor_id = ? AND account_id = ?", vendor.ID, creator.ID).
		First(&member).Error)
	assert.True(t, member.IsSuperAdmin)
	require.NotNil(t, member.RoleID)
	assert.Equal(t, role.ID, *member.RoleID)
}

func TestCreateVendorDuplicateContact(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "founder@example.com")
	svc := newVendorService(db)

	_, err := svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name: "First", ContactNumber: "9400000031",
	})
	require.NoError(t, err)

	_, err = svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name: "Second", ContactNumber: "9400000031",
	})
	assert.ErrorIs(t, err, ErrContactNumberTaken)

	// The rollback must take the owner role and membership with it.
	var roles int64
	require.NoError(t, db.Model(&models.VendorRole{}).Count(&roles).Error)
	assert.EqualValues(t, 1, roles)
}

func TestFirstBranchBecomesDefault(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "founder@example.com")
	svc := newVendorService(db)
	vendor, err := svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name: "Greenleaf", ContactNumber: "9400000032",
	})
	require.NoError(t, err)

	first, err := svc.CreateBranch(context.Background(), vendor.ID, &dto.CreateBranchRequest{
		ShopLocality: "MG Road", PinCode: "682001",
	})
	require.NoError(t, err)
	require.NotNil(t, first.Profile)

	second, err := svc.CreateBranch(context.Background(), vendor.ID, &dto.CreateBranchRequest{
		ShopLocality: "Fort", PinCode: "695001",
	})
	require.NoError(t, err)

	var stored models.Vendor
	require.NoError(t, db.First(&stored, "id = ?", vendor.ID).Error)
	require.NotNil(t, stored.DefaultBranchID)
	assert.Equal(t, first.ID, *stored.DefaultBranchID)
	assert.NotEqual(t, second.ID, *stored.DefaultBranchID)
}

func TestDeleteOnlyBranchRejected(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "founder@example.com")
	svc := newVendorService(db)
	vendor, err := svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name: "Greenleaf", ContactNumber: "9400000033",
	})
	require.NoError(t, err)

	branch, err := svc.CreateBranch(context.Background(), vendor.ID, &dto.CreateBranchRequest{
		ShopLocality: "MG Road", PinCode: "682001",
	})
	require.NoError(t, err)

	err = svc.DeleteBranch(context.Background(), vendor.ID, branch.ID)
	assert.ErrorIs(t, err, ErrOnlyBranch)

	var count int64
	require.NoError(t, db.Model(&models.VendorBranch{}).
		Where("vendor_id = ?", vendor.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteDefaultBranchReassigns(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "founder@example.com")
	svc := newVendorService(db)
	vendor, err := svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name: "Greenleaf", ContactNumber: "9400000034",
	})
	require.NoError(t, err)

	first, err := svc.CreateBranch(context.Background(), vendor.ID, &dto.CreateBranchRequest{
		ShopLocality: "MG Road", PinCode: "682001",
	})
	require.NoError(t, err)
	second, err := svc.CreateBranch(context.Background(), vendor.ID, &dto.CreateBranchRequest{
		ShopLocality: "Fort", PinCode: "695001",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBranch(context.Background(), vendor.ID, first.ID))

	var stored models.Vendor
	require.NoError(t, db.First(&stored, "id = ?", vendor.ID).Error)
	require.NotNil(t, stored.DefaultBranchID)
	assert.Equal(t, second.ID, *stored.DefaultBranchID)
}

func TestProfileUpdateCompletesOnboarding(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "founder@example.com")
	svc := newVendorService(db)
	vendor, err := svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name: "Greenleaf", ContactNumber: "9400000035",
	})
	require.NoError(t, err)

	countryID, stateID, districtID := uuid.New(), uuid.New(), uuid.New()
	branch, err := svc.CreateBranch(context.Background(), vendor.ID, &dto.CreateBranchRequest{
		CountryID:              &countryID,
		StateID:                &stateID,
		DistrictID:             &districtID,
		ShopLocality:           "MG Road",
		PinCode:                "682001",
		KeyPersonName:          strptr("Asha"),
		KeyPersonContactNumber: strptr("9400000036"),
	})
	require.NoError(t, err)

	status, err := svc.OnboardingStatus(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.False(t, status.IsOnboarded)
	assert.True(t, status.Steps["default_branch"])
	assert.False(t, status.Steps["branch_profile"])

	_, err = svc.UpdateBranchProfile(context.Background(), vendor.ID, branch.ID, &dto.UpdateBranchProfileRequest{
		RegisteredAddress: strptr("12 MG Road, Kochi"),
		WorkingHoursFrom:  strptr("09:00"),
		WorkingHoursTo:    strptr("18:00"),
		HasHomeDelivery:   boolptr(false),
	})
	require.NoError(t, err)

	var stored models.Vendor
	require.NoError(t, db.First(&stored, "id = ?", vendor.ID).Error)
	assert.True(t, stored.IsOnboarded)
}

func TestCreateRoleSlugsAndRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "founder@example.com")
	svc := newVendorService(db)
	vendor, err := svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name: "Greenleaf", ContactNumber: "9400000037",
	})
	require.NoError(t, err)

	role, err := svc.CreateRole(context.Background(), vendor.ID, &dto.CreateRoleRequest{
		Name: "Branch Manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "branch_manager", role.Code)

	// Same slug, different capitalization: still a duplicate per scope.
	_, err = svc.CreateRole(context.Background(), vendor.ID, &dto.CreateRoleRequest{
		Name: "branch manager",
	})
	assert.ErrorIs(t, err, ErrRoleNameTaken)
}

func TestCreateDiscountScopedToBranches(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "founder@example.com")
	svc := newVendorService(db)
	vendor, err := svc.CreateVendor(context.Background(), creator, &dto.CreateVendorRequest{
		Name: "Greenleaf", ContactNumber: "9400000038",
	})
	require.NoError(t, err)
	branch, err := svc.CreateBranch(context.Background(), vendor.ID, &dto.CreateBranchRequest{
		ShopLocality: "MG Road", PinCode: "682001",
	})
	require.NoError(t, err)

	discount, err := svc.CreateDiscount(context.Background(), vendor.ID, &dto.CreateDiscountRequest{
		DiscountType: models.DiscountTypeTotalBill,
		ValueType:    models.DiscountValuePercentage,
		Value:        10,
		BranchIDs:    []uuid.UUID{branch.ID},
	})
	require.NoError(t, err)
	assert.Len(t, discount.Branches, 1)

	// A branch from another vendor cannot be attached.
	otherVendor := seedVendor(t, db, creator.ID, "9400000039")
	otherBranch := seedBranch(t, db, otherVendor.ID, "zz001")
	_, err = svc.CreateDiscount(context.Background(), vendor.ID, &dto.CreateDiscountRequest{
		DiscountType: models.DiscountTypeTotalBill,
		ValueType:    models.DiscountValuePercentage,
		Value:        10,
		BranchIDs:    []uuid.UUID{otherBranch.ID},
	})
	assert.ErrorIs(t, err, ErrBranchNotFound)

	list, err := svc.ListDiscounts(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
