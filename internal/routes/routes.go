package routes

import (
	"time"

	"github.com/The-Zed-Team/kriyado-backend/internal/config"
	"github.com/The-Zed-Team/kriyado-backend/internal/handlers"
	"github.com/The-Zed-Team/kriyado-backend/internal/middleware"
	"github.com/The-Zed-Team/kriyado-backend/internal/permissions"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	resolver *permissions.Resolver,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	vendorHandler *handlers.VendorHandler,
	branchHandler *handlers.BranchHandler,
	inviteHandler *handlers.InviteHandler,
	adminHandler *handlers.AdminHandler,
	locationHandler *handlers.LocationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Reference data (public reads)
	api.Get("/locations/countries", locationHandler.ListCountries)
	api.Get("/locations/countries/:country_id/states", locationHandler.ListStates)
	api.Get("/locations/states/:state_id/districts", locationHandler.ListDistricts)
	api.Get("/shop-types", locationHandler.ListShopTypes)

	// Auth. Sign-in gets a stricter rate limit: 10 req/min per IP.
	auth := api.Group("/auth")
	auth.Post("/firebase", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), authHandler.FirebaseSignIn)

	authed := []fiber.Handler{middleware.JWTProtected(cfg), middleware.LoadAccount(db, cfg)}

	api.Get("/auth/me", append(authed, authHandler.Me)...)

	// Vendor and admin scopes are created by any authenticated account; all
	// further access goes through the scope headers.
	api.Post("/vendors", append(authed, vendorHandler.Create)...)
	api.Post("/admins", append(authed, adminHandler.Create)...)

	// Invitation tokens resolve per account, not per scope.
	api.Post("/invites/:token/accept", append(authed, inviteHandler.Accept)...)
	api.Post("/invites/:token/decline", append(authed, inviteHandler.Decline)...)

	// Vendor scope (Vendor-ID header)
	vendor := api.Group("/vendor", append(authed, middleware.VendorScope(resolver))...)
	vendor.Get("/", vendorHandler.Get)
	vendor.Put("/", vendorHandler.Update)
	vendor.Get("/onboarding-status", vendorHandler.OnboardingStatus)
	vendor.Get("/branches", vendorHandler.ListBranches)
	vendor.Post("/branches", vendorHandler.CreateBranch)
	vendor.Put("/branches/:branch_id", vendorHandler.UpdateBranch)
	vendor.Put("/branches/:branch_id/profile", vendorHandler.UpdateBranchProfile)
	vendor.Delete("/branches/:branch_id", vendorHandler.DeleteBranch)
	vendor.Get("/roles", vendorHandler.ListRoles)
	vendor.Post("/roles", vendorHandler.CreateRole)
	vendor.Get("/invites", inviteHandler.ListForVendor)
	vendor.Post("/invites", inviteHandler.CreateForVendor)
	vendor.Get("/discounts", vendorHandler.ListDiscounts)
	vendor.Post("/discounts", vendorHandler.CreateDiscount)

	// Branch scope (VendorBranch-ID header)
	branch := api.Group("/branch", append(authed, middleware.BranchScope(resolver))...)
	branch.Get("/", branchHandler.Get)
	branch.Put("/", branchHandler.Update)
	branch.Put("/profile", branchHandler.UpdateProfile)
	branch.Get("/invites", inviteHandler.ListForBranch)
	branch.Post("/invites", inviteHandler.CreateForBranch)

	// Admin scope (Admin-ID header)
	admin := api.Group("/admin", append(authed, middleware.AdminScope(resolver))...)
	admin.Get("/", adminHandler.Get)
	admin.Get("/roles", adminHandler.ListRoles)
	admin.Post("/roles", adminHandler.CreateRole)
	admin.Post("/locations/countries", adminHandler.CreateCountry)
	admin.Post("/locations/states", adminHandler.CreateState)
	admin.Post("/locations/districts", adminHandler.CreateDistrict)
	admin.Post("/shop-types", adminHandler.CreateShopType)
}
