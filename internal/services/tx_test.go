package services

import (
	"testing"

	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// A lost creation race must not poison the statements that follow it inside
// the same transaction; the savepoint confines the failed INSERT.
func TestDuplicateInsertKeepsTransactionUsable(t *testing.T) {
	db := setupTestDB(t)
	account := seedAccount(t, db, "race@example.com")
	vendor := seedVendor(t, db, account.ID, "9400000070")
	branch := seedBranch(t, db, vendor.ID, "br071")

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		first := models.VendorMember{ID: uuid.New(), AccountID: account.ID, VendorID: vendor.ID}
		require.NoError(t, createInSavepoint(tx, &first))

		dup := models.VendorMember{ID: uuid.New(), AccountID: account.ID, VendorID: vendor.ID}
		require.ErrorIs(t, createInSavepoint(tx, &dup), gorm.ErrDuplicatedKey)

		// The surrounding transaction keeps working after the failed insert.
		var count int64
		require.NoError(t, tx.Model(&models.VendorMember{}).Count(&count).Error)
		require.EqualValues(t, 1, count)

		second := models.VendorBranchMember{ID: uuid.New(), AccountID: account.ID,
			VendorBranchID: branch.ID}
		return createInSavepoint(tx, &second)
	}))
}
