package middleware

import (
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/permissions"
	"github.com/gofiber/fiber/v2"
)

// Scope headers carried on every scoped request.
const (
	HeaderAdminID        = "Admin-ID"
	HeaderVendorID       = "Vendor-ID"
	HeaderVendorBranchID = "VendorBranch-ID"
)

// AdminScope authorizes the caller against the Admin-ID header. The grant is
// stashed in Locals for the handler. Runs after LoadAccount.
func AdminScope(resolver *permissions.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := CurrentAccount(c)
		if !ok {
			return unauthorized(c)
		}
		grant, err := resolver.Admin(c.UserContext(), account.ID, c.Get(HeaderAdminID))
		if err != nil {
			return denyScope(c, err)
		}
		c.Locals("admin_grant", grant)
		return c.Next()
	}
}

// VendorScope authorizes the caller against the Vendor-ID header.
func VendorScope(resolver *permissions.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := CurrentAccount(c)
		if !ok {
			return unauthorized(c)
		}
		grant, err := resolver.Vendor(c.UserContext(), account.ID, c.Get(HeaderVendorID))
		if err != nil {
			return denyScope(c, err)
		}
		c.Locals("vendor_grant", grant)
		return c.Next()
	}
}

// BranchScope authorizes the caller against the VendorBranch-ID header.
func BranchScope(resolver *permissions.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := CurrentAccount(c)
		if !ok {
			return unauthorized(c)
		}
		grant, err := resolver.VendorBranch(c.UserContext(), account.ID, c.Get(HeaderVendorBranchID))
		if err != nil {
			return denyScope(c, err)
		}
		c.Locals("branch_grant", grant)
		return c.Next()
	}
}

func AdminGrantFrom(c *fiber.Ctx) (*permissions.AdminGrant, bool) {
	grant, ok := c.Locals("admin_grant").(*permissions.AdminGrant)
	return grant, ok && grant != nil
}

func VendorGrantFrom(c *fiber.Ctx) (*permissions.VendorGrant, bool) {
	grant, ok := c.Locals("vendor_grant").(*permissions.VendorGrant)
	return grant, ok && grant != nil
}

func BranchGrantFrom(c *fiber.Ctx) (*permissions.BranchGrant, bool) {
	grant, ok := c.Locals("branch_grant").(*permissions.BranchGrant)
	return grant, ok && grant != nil
}

// denyScope keeps the denial uniform: a missing scope, an unknown id, and a
// scope the caller cannot act in all read the same from outside.
func denyScope(c *fiber.Ctx, err error) error {
	if errors.Is(err, permissions.ErrNotAuthorized) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "You do not have permission to perform this action",
		})
	}
	return fiber.ErrInternalServerError
}
