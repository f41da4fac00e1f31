package handlers

import (
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/middleware"
	"github.com/The-Zed-Team/kriyado-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VendorHandler struct {
	vendorService *services.VendorService
}

func NewVendorHandler(vendorService *services.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Create registers a new vendor; the caller becomes its first super admin.
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	vendor, err := h.vendorService.CreateVendor(c.UserContext(), account, &req)
	if err != nil {
		if errors.Is(err, services.ErrContactNumberTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorResponse{
				Error:  true,
				Fields: map[string]string{"name": err.Error()},
			})
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(vendor)
}

func (h *VendorHandler) Get(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	vendor, err := h.vendorService.GetVendor(c.UserContext(), grant.Vendor.ID)
	if err != nil {
		if errors.Is(err, services.ErrVendorNotFound) {
			return notFound(c, "Vendor not found")
		}
		return internalError(c)
	}
	return c.JSON(vendor)
}

func (h *VendorHandler) Update(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.UpdateVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	vendor, err := h.vendorService.UpdateVendor(c.UserContext(), grant.Vendor.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrVendorNotFound) {
			return notFound(c, "Vendor not found")
		}
		return internalError(c)
	}
	return c.JSON(vendor)
}

// OnboardingStatus re-derives and returns the vendor's onboarding state.
func (h *VendorHandler) OnboardingStatus(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	result, err := h.vendorService.OnboardingStatus(c.UserContext(), grant.Vendor.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(result)
}

func (h *VendorHandler) CreateBranch(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	branch, err := h.vendorService.CreateBranch(c.UserContext(), grant.Vendor.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrVendorNotFound) {
			return notFound(c, "Vendor not found")
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

func (h *VendorHandler) ListBranches(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	branches, err := h.vendorService.ListBranches(c.UserContext(), grant.Vendor.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(branches)
}

func (h *VendorHandler) UpdateBranch(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	branchID, err := uuid.Parse(c.Params("branch_id"))
	if err != nil {
		return notFound(c, "Branch not found")
	}

	var req dto.UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	branch, err := h.vendorService.UpdateBranch(c.UserContext(), grant.Vendor.ID, branchID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "Branch not found")
		}
		return internalError(c)
	}
	return c.JSON(branch)
}

func (h *VendorHandler) UpdateBranchProfile(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	branchID, err := uuid.Parse(c.Params("branch_id"))
	if err != nil {
		return notFound(c, "Branch not found")
	}

	var req dto.UpdateBranchProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.vendorService.UpdateBranchProfile(c.UserContext(), grant.Vendor.ID, branchID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "Branch not found")
		}
		return internalError(c)
	}
	return c.JSON(profile)
}

func (h *VendorHandler) DeleteBranch(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	branchID, err := uuid.Parse(c.Params("branch_id"))
	if err != nil {
		return notFound(c, "Branch not found")
	}

	if err := h.vendorService.DeleteBranch(c.UserContext(), grant.Vendor.ID, branchID); err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "Branch not found")
		}
		if errors.Is(err, services.ErrOnlyBranch) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "Branch deleted successfully"})
}

func (h *VendorHandler) CreateRole(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	role, err := h.vendorService.CreateRole(c.UserContext(), grant.Vendor.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrRoleNameTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorResponse{
				Error:  true,
				Fields: map[string]string{"name": err.Error()},
			})
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(role)
}

func (h *VendorHandler) ListRoles(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	roles, err := h.vendorService.ListRoles(c.UserContext(), grant.Vendor.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(roles)
}

func (h *VendorHandler) CreateDiscount(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.CreateDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	discount, err := h.vendorService.CreateDiscount(c.UserContext(), grant.Vendor.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "One or more branches not found")
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(discount)
}

func (h *VendorHandler) ListDiscounts(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	discounts, err := h.vendorService.ListDiscounts(c.UserContext(), grant.Vendor.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(discounts)
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "You do not have permission to perform this action",
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
