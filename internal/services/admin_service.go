package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrAdminNotFound = errors.New("admin scope not found")

// AdminService manages platform admin scopes and their roles.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// CreateAdmin creates an admin scope and enrolls the creator as its first
// super-admin member in one transaction.
func (s *AdminService) CreateAdmin(ctx context.Context, creator *models.Account, req *dto.CreateAdminRequest) (*models.Admin, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	admin := models.Admin{
		ID:          uuid.New(),
		Name:        req.Name,
		Active:      true,
		CreatedByID: creator.ID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin scope: %w", err)
		}
		member := models.AdminMember{
			ID:           uuid.New(),
			AccountID:    creator.ID,
			AdminID:      admin.ID,
			IsSuperAdmin: true,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create admin membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("admin scope created", "admin_id", admin.ID.String(), "account_id", creator.ID.String())
	return &admin, nil
}

func (s *AdminService) GetAdmin(ctx context.Context, adminID uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to load admin scope: %w", err)
	}
	return &admin, nil
}

// CreateRole adds a named role to the admin scope.
func (s *AdminService) CreateRole(ctx context.Context, adminID uuid.UUID, req *dto.CreateRoleRequest) (*models.AdminRole, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	acl := datatypes.JSON("{}")
	if len(req.ACL) > 0 {
		acl = datatypes.JSON(req.ACL)
	}
	role := models.AdminRole{
		ID:          uuid.New(),
		AdminID:     adminID,
		Name:        req.Name,
		Description: req.Description,
		ACL:         acl,
	}
	if err := s.db.WithContext(ctx).Create(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoleNameTaken
		}
		return nil, fmt.Errorf("failed to create admin role: %w", err)
	}
	return &role, nil
}

func (s *AdminService) ListRoles(ctx context.Context, adminID uuid.UUID) ([]models.AdminRole, error) {
	var roles []models.AdminRole
	if err := s.db.WithContext(ctx).
		Where("admin_id = ?", adminID).Order("created_at ASC").
		Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list admin roles: %w", err)
	}
	return roles, nil
}
