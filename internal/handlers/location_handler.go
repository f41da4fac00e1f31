package handlers

import (
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocationHandler serves the public read side of the geographic reference
// data and the shop type catalogue.
type LocationHandler struct {
	locationService *services.LocationService
}

func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

func (h *LocationHandler) ListCountries(c *fiber.Ctx) error {
	countries, err := h.locationService.ListCountries(c.UserContext())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(countries)
}

func (h *LocationHandler) ListStates(c *fiber.Ctx) error {
	countryID, err := uuid.Parse(c.Params("country_id"))
	if err != nil {
		return notFound(c, "Country not found")
	}
	states, err := h.locationService.ListStates(c.UserContext(), countryID)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return notFound(c, "Country not found")
		}
		return internalError(c)
	}
	return c.JSON(states)
}

func (h *LocationHandler) ListDistricts(c *fiber.Ctx) error {
	stateID, err := uuid.Parse(c.Params("state_id"))
	if err != nil {
		return notFound(c, "State not found")
	}
	districts, err := h.locationService.ListDistricts(c.UserContext(), stateID)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return notFound(c, "State not found")
		}
		return internalError(c)
	}
	return c.JSON(districts)
}

func (h *LocationHandler) ListShopTypes(c *fiber.Ctx) error {
	types, err := h.locationService.ListShopTypes(c.UserContext())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(types)
}
