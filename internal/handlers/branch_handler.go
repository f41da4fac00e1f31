package handlers

import (
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/middleware"
	"github.com/The-Zed-Team/kriyado-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// BranchHandler serves requests scoped by the VendorBranch-ID header, the
// surface a branch-only member works through.
type BranchHandler struct {
	vendorService *services.VendorService
}

func NewBranchHandler(vendorService *services.VendorService) *BranchHandler {
	return &BranchHandler{vendorService: vendorService}
}

func (h *BranchHandler) Get(c *fiber.Ctx) error {
	grant, ok := middleware.BranchGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	branches, err := h.vendorService.ListBranches(c.UserContext(), grant.Branch.VendorID)
	if err != nil {
		return internalError(c)
	}
	for i := range branches {
		if branches[i].ID == grant.Branch.ID {
			return c.JSON(branches[i])
		}
	}
	return notFound(c, "Branch not found")
}

func (h *BranchHandler) Update(c *fiber.Ctx) error {
	grant, ok := middleware.BranchGrantFrom(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	branch, err := h.vendorService.UpdateBranch(c.UserContext(), grant.Branch.VendorID, grant.Branch.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "Branch not found")
		}
		return internalError(c)
	}
	return c.JSON(branch)
}

func (h *BranchHandler) UpdateProfile(c *fiber.Ctx) error {
	grant, ok := middleware.BranchGrantFrom(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.UpdateBranchProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.vendorService.UpdateBranchProfile(c.UserContext(), grant.Branch.VendorID, grant.Branch.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			return notFound(c, "Branch not found")
		}
		return internalError(c)
	}
	return c.JSON(profile)
}
