package handlers

import (
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/middleware"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/The-Zed-Team/kriyado-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InviteHandler struct {
	inviteService *services.InviteService
}

func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// CreateForVendor invites an email into the current vendor scope.
func (h *InviteHandler) CreateForVendor(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return unauthorizedResp(c)
	}
	vendorID := grant.Vendor.ID
	return h.create(c, account, services.InviteTarget{VendorID: &vendorID})
}

// CreateForBranch invites an email into the current branch scope.
func (h *InviteHandler) CreateForBranch(c *fiber.Ctx) error {
	grant, ok := middleware.BranchGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return unauthorizedResp(c)
	}
	branchID := grant.Branch.ID
	return h.create(c, account, services.InviteTarget{VendorBranchID: &branchID})
}

func (h *InviteHandler) create(c *fiber.Ctx, account *models.Account, target services.InviteTarget) error {
	var req dto.CreateInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	inv, err := h.inviteService.Create(c.UserContext(), req.Email, target, account)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateInvite):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorResponse{
				Error:  true,
				Fields: map[string]string{"email": "A valid email is required"},
			})
		case errors.Is(err, services.ErrInvalidInviteTarget):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

func (h *InviteHandler) ListForVendor(c *fiber.Ctx) error {
	grant, ok := middleware.VendorGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	vendorID := grant.Vendor.ID
	invites, err := h.inviteService.ListForTarget(c.UserContext(), services.InviteTarget{VendorID: &vendorID})
	if err != nil {
		return internalError(c)
	}
	return c.JSON(invites)
}

func (h *InviteHandler) ListForBranch(c *fiber.Ctx) error {
	grant, ok := middleware.BranchGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	branchID := grant.Branch.ID
	invites, err := h.inviteService.ListForTarget(c.UserContext(), services.InviteTarget{VendorBranchID: &branchID})
	if err != nil {
		return internalError(c)
	}
	return c.JSON(invites)
}

// Accept resolves an invitation by token for the calling account.
func (h *InviteHandler) Accept(c *fiber.Ctx) error {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return unauthorizedResp(c)
	}

	inv, err := h.inviteService.AcceptByToken(c.UserContext(), c.Params("token"), account)
	if err != nil {
		return h.tokenError(c, err)
	}
	return c.JSON(inv)
}

// Decline rejects a pending invitation by token.
func (h *InviteHandler) Decline(c *fiber.Ctx) error {
	inv, err := h.inviteService.DeclineByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return h.tokenError(c, err)
	}
	return c.JSON(inv)
}

func (h *InviteHandler) tokenError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInviteNotFound):
		return notFound(c, "Invitation not found")
	case errors.Is(err, services.ErrInvalidInviteState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return internalError(c)
}

func unauthorizedResp(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
