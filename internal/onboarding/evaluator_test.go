package onboarding

import (
	"context"
	"testing"

	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Country{}, &models.State{}, &models.District{},
		&models.Vendor{}, &models.VendorBranch{}, &models.VendorBranchProfile{},
	))
	return db
}

func seedVendor(t *testing.T, db *gorm.DB) *models.Vendor {
	t.Helper()
	vendor := models.Vendor{
		ID:            uuid.New(),
		Name:          "Greenleaf Traders",
		ContactNumber: "9400000001",
		CreatedByID:   uuid.New(),
	}
	require.NoError(t, db.Create(&vendor).Error)
	return &vendor
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

// completeBranch fills every required field of both steps.
func completeBranch(t *testing.T, db *gorm.DB, vendorID uuid.UUID) *models.VendorBranch {
	t.Helper()
	countryID, stateID, districtID := uuid.New(), uuid.New(), uuid.New()
	branch := models.VendorBranch{
		ID:                     uuid.New(),
		VendorID:               vendorID,
		Code:                   "hq001",
		CountryID:              &countryID,
		StateID:                &stateID,
		DistrictID:             &districtID,
		ShopLocality:           "MG Road",
		PinCode:                "682001",
		KeyPersonName:          strptr("Asha"),
		KeyPersonContactNumber: strptr("9400000002"),
	}
	require.NoError(t, db.Create(&branch).Error)

	profile := models.VendorBranchProfile{
		ID:                uuid.New(),
		VendorBranchID:    branch.ID,
		RegisteredAddress: strptr("12 MG Road, Kochi"),
		WorkingHoursFrom:  strptr("09:00"),
		WorkingHoursTo:    strptr("18:00"),
		HasHomeDelivery:   boolptr(false),
	}
	require.NoError(t, db.Create(&profile).Error)

	require.NoError(t, db.Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		UpdateColumn("default_branch_id", branch.ID).Error)
	return &branch
}

func TestEvaluateNoBranch(t *testing.T) {
	db := setupTestDB(t)
	vendor := seedVendor(t, db)

	eval := NewEvaluator(db)
	res, err := eval.Evaluate(context.Background(), vendor.ID)
	require.NoError(t, err)

	assert.False(t, res.IsOnboarded)
	assert.False(t, res.Steps["default_branch"])
	assert.False(t, res.Steps["branch_profile"])
}

func TestEvaluateCompleteVendorPersistsFlag(t *testing.T) {
	db := setupTestDB(t)
	vendor := seedVendor(t, db)
	completeBranch(t, db, vendor.ID)

	eval := NewEvaluator(db)
	res, err := eval.Evaluate(context.Background(), vendor.ID)
	require.NoError(t, err)

	assert.True(t, res.IsOnboarded)
	assert.True(t, res.Steps["default_branch"])
	assert.True(t, res.Steps["branch_profile"])

	var stored models.Vendor
	require.NoError(t, db.First(&stored, "id = ?", vendor.ID).Error)
	assert.True(t, stored.IsOnboarded)
}

func TestEvaluateMissingProfileAnswer(t *testing.T) {
	db := setupTestDB(t)
	vendor := seedVendor(t, db)
	branch := completeBranch(t, db, vendor.ID)

	// Unanswer the delivery question. nil must read as incomplete even
	// though false would count as done.
	require.NoError(t, db.Model(&models.VendorBranchProfile{}).
		Where("vendor_branch_id = ?", branch.ID).
		UpdateColumn("has_home_delivery", nil).Error)

	eval := NewEvaluator(db)
	res, err := eval.Evaluate(context.Background(), vendor.ID)
	require.NoError(t, err)

	assert.False(t, res.IsOnboarded)
	assert.True(t, res.Steps["default_branch"])
	assert.False(t, res.Steps["branch_profile"])
}

func TestEvaluateLatchesOnceOnboarded(t *testing.T) {
	db := setupTestDB(t)
	vendor := seedVendor(t, db)
	branch := completeBranch(t, db, vendor.ID)

	eval := NewEvaluator(db)
	res, err := eval.Evaluate(context.Background(), vendor.ID)
	require.NoError(t, err)
	require.True(t, res.IsOnboarded)

	// Break the data after the flag flipped; the latch must hold.
	require.NoError(t, db.Model(&models.VendorBranch{}).
		Where("id = ?", branch.ID).
		UpdateColumn("shop_locality", "").Error)

	res, err = eval.Evaluate(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.True(t, res.IsOnboarded)
	assert.True(t, res.Steps["default_branch"])
	assert.True(t, res.Steps["branch_profile"])
}

func TestEvaluateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	vendor := seedVendor(t, db)
	completeBranch(t, db, vendor.ID)

	eval := NewEvaluator(db)
	first, err := eval.Evaluate(context.Background(), vendor.ID)
	require.NoError(t, err)
	second, err := eval.Evaluate(context.Background(), vendor.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluateStepsOptionalFieldsIgnored(t *testing.T) {
	countryID, stateID, districtID := uuid.New(), uuid.New(), uuid.New()
	branch := &models.VendorBranch{
		ID:                     uuid.New(),
		CountryID:              &countryID,
		StateID:                &stateID,
		DistrictID:             &districtID,
		ShopLocality:           "Fort",
		PinCode:                "695001",
		KeyPersonName:          strptr("Biju"),
		KeyPersonContactNumber: strptr("9400000003"),
		// LandPhone deliberately empty: optional.
		Profile: &models.VendorBranchProfile{
			RegisteredAddress: strptr("Fort, Trivandrum"),
			WorkingHoursFrom:  strptr("10:00"),
			WorkingHoursTo:    strptr("19:00"),
			HasHomeDelivery:   boolptr(true),
			// Website and StorePhoto empty: optional.
		},
	}
	vendor := &models.Vendor{ID: uuid.New(), DefaultBranch: branch}

	res := EvaluateSteps(vendor, DefaultSteps())
	assert.True(t, res.IsOnboarded)
}

func TestEvaluateStepsNilVendor(t *testing.T) {
	res := EvaluateSteps(nil, DefaultSteps())
	assert.False(t, res.IsOnboarded)
	assert.False(t, res.Steps["default_branch"])
	assert.False(t, res.Steps["branch_profile"])
}
