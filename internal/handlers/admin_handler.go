package handlers

import (
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/middleware"
	"github.com/The-Zed-Team/kriyado-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the platform admin surface: admin scope management and
// the shared reference catalogues.
type AdminHandler struct {
	adminService    *services.AdminService
	locationService *services.LocationService
}

func NewAdminHandler(adminService *services.AdminService, locationService *services.LocationService) *AdminHandler {
	return &AdminHandler{adminService: adminService, locationService: locationService}
}

// Create registers a new admin scope; the caller becomes its first super admin.
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return unauthorizedResp(c)
	}

	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	admin, err := h.adminService.CreateAdmin(c.UserContext(), account, &req)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorResponse{
				Error:  true,
				Fields: map[string]string{"name": err.Error()},
			})
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

func (h *AdminHandler) Get(c *fiber.Ctx) error {
	grant, ok := middleware.AdminGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	return c.JSON(grant.Admin)
}

func (h *AdminHandler) CreateRole(c *fiber.Ctx) error {
	grant, ok := middleware.AdminGrantFrom(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	role, err := h.adminService.CreateRole(c.UserContext(), grant.Admin.ID, &req)
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

func (h *AdminHandler) ListRoles(c *fiber.Ctx) error {
	grant, ok := middleware.AdminGrantFrom(c)
	if !ok {
		return forbidden(c)
	}
	roles, err := h.adminService.ListRoles(c.UserContext(), grant.Admin.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(roles)
}

// Reference catalogue management. These mutate shared data, so they live
// behind the admin scope.

func (h *AdminHandler) CreateCountry(c *fiber.Ctx) error {
	if _, ok := middleware.AdminGrantFrom(c); !ok {
		return forbidden(c)
	}
	var req dto.CreateCountryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	country, err := h.locationService.CreateCountry(c.UserContext(), req.Name)
	if err != nil {
		return h.locationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(country)
}

func (h *AdminHandler) CreateState(c *fiber.Ctx) error {
	if _, ok := middleware.AdminGrantFrom(c); !ok {
		return forbidden(c)
	}
	var req dto.CreateStateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	state, err := h.locationService.CreateState(c.UserContext(), req.CountryID, req.Name)
	if err != nil {
		return h.locationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (h *AdminHandler) CreateDistrict(c *fiber.Ctx) error {
	if _, ok := middleware.AdminGrantFrom(c); !ok {
		return forbidden(c)
	}
	var req dto.CreateDistrictRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	district, err := h.locationService.CreateDistrict(c.UserContext(), req.StateID, req.Name)
	if err != nil {
		return h.locationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(district)
}

func (h *AdminHandler) CreateShopType(c *fiber.Ctx) error {
	if _, ok := middleware.AdminGrantFrom(c); !ok {
		return forbidden(c)
	}
	var req dto.CreateShopTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	shopType, err := h.locationService.CreateShopType(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return h.locationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shopType)
}

func (h *AdminHandler) locationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateLocation):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrLocationNotFound):
		return notFound(c, "Location not found")
	}
	return internalError(c)
}
