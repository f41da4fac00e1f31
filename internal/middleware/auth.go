package middleware

import (
	"errors"

	"github.com/The-Zed-Team/kriyado-backend/internal/config"
	"github.com/The-Zed-Team/kriyado-backend/internal/dto"
	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const firebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// JWTProtected validates the bearer token's signature against the Firebase
// securetoken key set. Claim checks happen in LoadAccount.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		JWKSetURLs: []string{firebaseJWKSURL},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// LoadAccount checks issuer and audience on the already-verified token and
// resolves the firebase subject to a local account via its provider link.
// Runs after JWTProtected.
func LoadAccount(db *gorm.DB, cfg *config.Config) fiber.Handler {
	issuer := "https://securetoken.google.com/" + cfg.FirebaseProjectID

	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return unauthorized(c)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}

		iss, _ := claims["iss"].(string)
		aud, _ := claims["aud"].(string)
		sub, _ := claims["sub"].(string)
		if iss != issuer || aud != cfg.FirebaseProjectID || sub == "" {
			return unauthorized(c)
		}

		var link models.AccountProvider
		err := db.WithContext(c.UserContext()).
			Where("provider = ? AND provider_uid = ?", models.ProviderFirebase, sub).
			First(&link).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthorized(c)
			}
			return fiber.ErrInternalServerError
		}

		var account models.Account
		if err := db.WithContext(c.UserContext()).
			First(&account, "id = ?", link.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthorized(c)
			}
			return fiber.ErrInternalServerError
		}
		if !account.IsActive {
			return unauthorized(c)
		}

		c.Locals("account", &account)
		return c.Next()
	}
}

// CurrentAccount returns the account resolved by LoadAccount.
func CurrentAccount(c *fiber.Ctx) (*models.Account, bool) {
	account, ok := c.Locals("account").(*models.Account)
	return account, ok && account != nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized",
	})
}
