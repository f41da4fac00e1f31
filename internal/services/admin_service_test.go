package services

import (
	"context"
	"testing"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdminEnrollsCreator(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "ops@example.com")
	svc := NewAdminService(db)

	admin, err := svc.CreateAdmin(context.Background(), creator, &dto.CreateAdminRequest{
		Name: "Platform Ops",
	})
	require.NoError(t, err)
	assert.True(t, admin.Active)

	var member models.AdminMember
	require.NoError(t, db.Where("admin_id = ? AND account_id = ?", admin.ID, creator.ID).
		First(&member).Error)
	assert.True(t, member.IsSuperAdmin)
}

func TestCreateAdminRequiresName(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "ops@example.com")
	svc := NewAdminService(db)

	_, err := svc.CreateAdmin(context.Background(), creator, &dto.CreateAdminRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAdminRoles(t *testing.T) {
	db := setupTestDB(t)
	creator := seedAccount(t, db, "ops@example.com")
	svc := NewAdminService(db)
	admin, err := svc.CreateAdmin(context.Background(), creator, &dto.CreateAdminRequest{
		Name: "Platform Ops",
	})
	require.NoError(t, err)

	role, err := svc.CreateRole(context.Background(), admin.ID, &dto.CreateRoleRequest{
		Name: "Content Reviewer",
	})
	require.NoError(t, err)
	assert.Equal(t, "content_reviewer", role.Code)

	_, err = svc.CreateRole(context.Background(), admin.ID, &dto.CreateRoleRequest{
		Name: "Content Reviewer",
	})
	assert.ErrorIs(t, err, ErrRoleNameTaken)

	roles, err := svc.ListRoles(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}
