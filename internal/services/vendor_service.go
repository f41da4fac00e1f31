package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/The-Zed-Team/kriyado-backend/internal/onboarding"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrContactNumberTaken = errors.New("contact number already registered")
	ErrOnlyBranch         = errors.New("cannot delete the only branch")
	ErrRoleNameTaken      = errors.New("a role with this name already exists")
	ErrNameRequired       = errors.New("name is required")
)

const branchCodeLength = 5

// VendorService owns the vendor scope lifecycle: vendor creation with its
// owner membership, branch and profile management, and re-derivation of the
// onboarding status after every mutation.
type VendorService struct {
	db        *gorm.DB
	evaluator *onboarding.Evaluator
}

func NewVendorService(db *gorm.DB, evaluator *onboarding.Evaluator) *VendorService {
	return &VendorService{db: db, evaluator: evaluator}
}

// CreateVendor creates the vendor, its default Owner role, and the creator's
// super-admin membership in one transaction.
func (s *VendorService) CreateVendor(ctx context.Context, creator *models.Account, req *dto.CreateVendorRequest) (*models.Vendor, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	vendor := models.Vendor{
		ID:            uuid.New(),
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		OwnerName:     req.OwnerName,
		BusinessType:  req.BusinessType,
		ShopTypeID:    req.ShopTypeID,
		CreatedByID:   creator.ID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vendor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrContactNumberTaken
			}
			return fmt.Errorf("failed to create vendor: %w", err)
		}

		role := models.VendorRole{
			ID:       uuid.New(),
			VendorID: vendor.ID,
			Name:     "Owner",
			ACL:      datatypes.JSON("{}"),
		}
		if err := tx.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to create owner role: %w", err)
		}

		member := models.VendorMember{
			ID:           uuid.New(),
			AccountID:    creator.ID,
			VendorID:     vendor.ID,
			RoleID:       &role.ID,
			IsSuperAdmin: true,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("vendor created", "vendor_id", vendor.ID.String(), "account_id", creator.ID.String())
	return &vendor, nil
}

func (s *VendorService) UpdateVendor(ctx context.Context, vendorID uuid.UUID, req *dto.UpdateVendorRequest) (*models.Vendor, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.OwnerName != nil {
		updates["owner_name"] = *req.OwnerName
	}
	if req.BusinessType != nil {
		updates["business_type"] = *req.BusinessType
	}
	if req.ShopTypeID != nil {
		updates["shop_type_id"] = *req.ShopTypeID
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.Vendor{}).
			Where("id = ?", vendorID).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update vendor: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrVendorNotFound
		}
	}
	return s.GetVendor(ctx, vendorID)
}

// GetVendor loads the full vendor tree used by the detail endpoint.
func (s *VendorService) GetVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := s.db.WithContext(ctx).
		Preload("ShopType").
		Preload("DefaultBranch").
		Preload("DefaultBranch.Profile").
		Preload("Branches").
		Preload("Branches.Profile").
		Preload("Branches.Country").
		Preload("Branches.State").
		Preload("Branches.District").
		First(&vendor, "id = ?", vendorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}
	return &vendor, nil
}

// OnboardingStatus re-derives the onboarding state.
func (s *VendorService) OnboardingStatus(ctx context.Context, vendorID uuid.UUID) (onboarding.Result, error) {
	return s.evaluator.Evaluate(ctx, vendorID)
}

// CreateBranch creates a branch together with its empty profile sheet; the
// vendor's first branch becomes the default branch. The onboarding status is
// re-evaluated afterwards.
func (s *VendorService) CreateBranch(ctx context.Context, vendorID uuid.UUID, req *dto.CreateBranchRequest) (*models.VendorBranch, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = RandomString(branchCodeLength)
	}

	branch := models.VendorBranch{
		ID:                     uuid.New(),
		VendorID:               vendorID,
		Code:                   code,
		CountryID:              req.CountryID,
		StateID:                req.StateID,
		DistrictID:             req.DistrictID,
		ShopLocality:           req.ShopLocality,
		NearbyTown:             req.NearbyTown,
		PinCode:                req.PinCode,
		KeyPersonName:          req.KeyPersonName,
		KeyPersonContactNumber: req.KeyPersonContactNumber,
		LandPhone:              req.LandPhone,
		Latitude:               req.Latitude,
		Longitude:              req.Longitude,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vendor models.Vendor
		if err := tx.First(&vendor, "id = ?", vendorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}
			return fmt.Errorf("failed to load vendor: %w", err)
		}

		if err := tx.Create(&branch).Error; err != nil {
			return fmt.Errorf("failed to create branch: %w", err)
		}

		profile := models.VendorBranchProfile{
			ID:             uuid.New(),
			VendorBranchID: branch.ID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create branch profile: %w", err)
		}
		branch.Profile = &profile

		if vendor.DefaultBranchID == nil {
			if err := tx.Model(&models.Vendor{}).Where("id = ?", vendorID).
				UpdateColumn("default_branch_id", branch.ID).Error; err != nil {
				return fmt.Errorf("failed to assign default branch: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.evaluator.Evaluate(ctx, vendorID); err != nil {
		return nil, err
	}
	return &branch, nil
}

func (s *VendorService) ListBranches(ctx context.Context, vendorID uuid.UUID) ([]models.VendorBranch, error) {
	var branches []models.VendorBranch
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Preload("Country").
		Preload("State").
		Preload("District").
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC").
		Find(&branches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

func (s *VendorService) UpdateBranch(ctx context.Context, vendorID, branchID uuid.UUID, req *dto.UpdateBranchRequest) (*models.VendorBranch, error) {
	updates := map[string]any{}
	if req.CountryID != nil {
		updates["country_id"] = *req.CountryID
	}
	if req.StateID != nil {
		updates["state_id"] = *req.StateID
	}
	if req.DistrictID != nil {
		updates["district_id"] = *req.DistrictID
	}
	if req.ShopLocality != nil {
		updates["shop_locality"] = *req.ShopLocality
	}
	if req.NearbyTown != nil {
		updates["nearby_town"] = *req.NearbyTown
	}
	if req.PinCode != nil {
		updates["pin_code"] = *req.PinCode
	}
	if req.KeyPersonName != nil {
		updates["key_person_name"] = *req.KeyPersonName
	}
	if req.KeyPersonContactNumber != nil {
		updates["key_person_contact_number"] = *req.KeyPersonContactNumber
	}
	if req.LandPhone != nil {
		updates["land_phone"] = *req.LandPhone
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.VendorBranch{}).
			Where("id = ? AND vendor_id = ?", branchID, vendorID).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update branch: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrBranchNotFound
		}
		if _, err := s.evaluator.Evaluate(ctx, vendorID); err != nil {
			return nil, err
		}
	}

	var branch models.VendorBranch
	if err := s.db.WithContext(ctx).Preload("Profile").
		First(&branch, "id = ? AND vendor_id = ?", branchID, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to load branch: %w", err)
	}
	return &branch, nil
}

func (s *VendorService) UpdateBranchProfile(ctx context.Context, vendorID, branchID uuid.UUID, req *dto.UpdateBranchProfileRequest) (*models.VendorBranchProfile, error) {
	var branch models.VendorBranch
	if err := s.db.WithContext(ctx).
		First(&branch, "id = ? AND vendor_id = ?", branchID, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to load branch: %w", err)
	}

	updates := map[string]any{}
	if req.RegisteredAddress != nil {
		updates["registered_address"] = *req.RegisteredAddress
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.FacebookLink != nil {
		updates["facebook_link"] = *req.FacebookLink
	}
	if req.InstagramLink != nil {
		updates["instagram_link"] = *req.InstagramLink
	}
	if req.GoogleMapLink != nil {
		updates["google_map_link"] = *req.GoogleMapLink
	}
	if req.YoutubeLink != nil {
		updates["youtube_link"] = *req.YoutubeLink
	}
	if req.WorkingHoursFrom != nil {
		updates["working_hours_from"] = *req.WorkingHoursFrom
	}
	if req.WorkingHoursTo != nil {
		updates["working_hours_to"] = *req.WorkingHoursTo
	}
	if req.HasHomeDelivery != nil {
		updates["has_home_delivery"] = *req.HasHomeDelivery
	}
	if req.Logo != nil {
		updates["logo"] = *req.Logo
	}
	if req.StorePhoto != nil {
		updates["store_photo"] = *req.StorePhoto
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.VendorBranchProfile{}).
			Where("vendor_branch_id = ?", branchID).
			Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update branch profile: %w", err)
		}
		if _, err := s.evaluator.Evaluate(ctx, vendorID); err != nil {
			return nil, err
		}
	}

	var profile models.VendorBranchProfile
	if err := s.db.WithContext(ctx).
		First(&profile, "vendor_branch_id = ?", branchID).Error; err != nil {
		return nil, fmt.Errorf("failed to load branch profile: %w", err)
	}
	return &profile, nil
}

// DeleteBranch refuses to remove a vendor's only branch, and when the
// default branch is removed it reassigns default_branch to a surviving
// branch before the delete commits.
func (s *VendorService) DeleteBranch(ctx context.Context, vendorID, branchID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var branch models.VendorBranch
		if err := tx.First(&branch, "id = ? AND vendor_id = ?", branchID, vendorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBranchNotFound
			}
			return fmt.Errorf("failed to load branch: %w", err)
		}

		var count int64
		if err := tx.Model(&models.VendorBranch{}).
			Where("vendor_id = ?", vendorID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count branches: %w", err)
		}
		if count <= 1 {
			return ErrOnlyBranch
		}

		var vendor models.Vendor
		if err := tx.First(&vendor, "id = ?", vendorID).Error; err != nil {
			return fmt.Errorf("failed to load vendor: %w", err)
		}
		if vendor.DefaultBranchID != nil && *vendor.DefaultBranchID == branchID {
			var replacement models.VendorBranch
			if err := tx.Where("vendor_id = ? AND id <> ?", vendorID, branchID).
				Order("created_at ASC").First(&replacement).Error; err != nil {
				return fmt.Errorf("failed to pick replacement default branch: %w", err)
			}
			if err := tx.Model(&models.Vendor{}).Where("id = ?", vendorID).
				UpdateColumn("default_branch_id", replacement.ID).Error; err != nil {
				return fmt.Errorf("failed to reassign default branch: %w", err)
			}
		}

		if err := tx.Delete(&branch).Error; err != nil {
			return fmt.Errorf("failed to delete branch: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_, err = s.evaluator.Evaluate(ctx, vendorID)
	return err
}

// CreateRole adds a named role to the vendor scope; the code is slugified
// from the name by the model hook.
func (s *VendorService) CreateRole(ctx context.Context, vendorID uuid.UUID, req *dto.CreateRoleRequest) (*models.VendorRole, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	acl := datatypes.JSON("{}")
	if len(req.ACL) > 0 {
		acl = datatypes.JSON(req.ACL)
	}
	role := models.VendorRole{
		ID:          uuid.New(),
		VendorID:    vendorID,
		Name:        req.Name,
		Description: req.Description,
		ACL:         acl,
	}
	if err := s.db.WithContext(ctx).Create(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoleNameTaken
		}
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return &role, nil
}

func (s *VendorService) ListRoles(ctx context.Context, vendorID uuid.UUID) ([]models.VendorRole, error) {
	var roles []models.VendorRole
	if err := s.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).Order("created_at ASC").
		Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// CreateDiscount records a vendor discount, optionally scoped to branches.
func (s *VendorService) CreateDiscount(ctx context.Context, vendorID uuid.UUID, req *dto.CreateDiscountRequest) (*models.Discount, error) {
	discount := models.Discount{
		ID:               uuid.New(),
		VendorID:         vendorID,
		DiscountType:     req.DiscountType,
		ValueType:        req.ValueType,
		Value:            req.Value,
		Category:         req.Category,
		SpecialOfferText: req.SpecialOfferText,
		ExpiryDate:       req.ExpiryDate,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(req.BranchIDs) > 0 {
			var branches []models.VendorBranch
			if err := tx.Where("vendor_id = ? AND id IN ?", vendorID, req.BranchIDs).
				Find(&branches).Error; err != nil {
				return fmt.Errorf("failed to load branches: %w", err)
			}
			if len(branches) != len(req.BranchIDs) {
				return ErrBranchNotFound
			}
			discount.Branches = branches
		}
		if err := tx.Create(&discount).Error; err != nil {
			return fmt.Errorf("failed to create discount: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (s *VendorService) ListDiscounts(ctx context.Context, vendorID uuid.UUID) ([]models.Discount, error) {
	var discounts []models.Discount
	if err := s.db.WithContext(ctx).
		Preload("Branches").
		Where("vendor_id = ?", vendorID).Order("created_at DESC").
		Find(&discounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	return discounts, nil
}
