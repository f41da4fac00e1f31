package handlers

import (
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/middleware"
	"github.com/The-Zed-Team/kriyado-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// FirebaseSignIn exchanges a Firebase ID token for the local account and its
// vendor portal summary, creating the account on first sight.
func (h *AuthHandler) FirebaseSignIn(c *fiber.Ctx) error {
	var req dto.FirebaseSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.IDToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorResponse{
			Error:  true,
			Fields: map[string]string{"id_token": "ID token is required"},
		})
	}

	resp, err := h.authService.FirebaseSignIn(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordRequired),
			errors.Is(err, services.ErrPasswordTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorResponse{
				Error:  true,
				Fields: map[string]string{"password": err.Error()},
			})
		case errors.Is(err, services.ErrUnsupportedProvider):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAuthenticationFailed),
			errors.Is(err, services.ErrInvalidCredentials),
			errors.Is(err, services.ErrEmailNotVerified):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(resp)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	return c.JSON(account)
}
