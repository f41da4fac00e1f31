package services

import (
	"testing"

	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
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
		&models.Country{}, &models.State{}, &models.District{}, &models.ShopType{},
		&models.Account{}, &models.AccountProvider{},
		&models.Admin{}, &models.AdminRole{}, &models.AdminMember{},
		&models.Vendor{}, &models.VendorBranch{}, &models.VendorBranchProfile{},
		&models.VendorRole{}, &models.VendorMember{},
		&models.VendorBranchRole{}, &models.VendorBranchMember{},
		&models.Invitation{}, &models.Discount{},
	))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email string) *models.Account {
	t.Helper()
	account := models.Account{
		ID:        uuid.New(),
		FirstName: "Test",
		Username:  GenerateUsername(email, ""),
		Email:     &email,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&account).Error)
	return &account
}

func seedVendor(t *testing.T, db *gorm.DB, owner uuid.UUID, contact string) *models.Vendor {
	t.Helper()
	vendor := models.Vendor{
		ID:            uuid.New(),
		Name:          "Sunrise Stores",
		ContactNumber: contact,
		CreatedByID:   owner,
	}
	require.NoError(t, db.Create(&vendor).Error)
	return &vendor
}

func seedBranch(t *testing.T, db *gorm.DB, vendorID uuid.UUID, code string) *models.VendorBranch {
	t.Helper()
	branch := models.VendorBranch{
		ID:       uuid.New(),
		VendorID: vendorID,
		Code:     code,
	}
	require.NoError(t, db.Create(&branch).Error)
	return &branch
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
