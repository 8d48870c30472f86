package tenants

import (
	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupTenantsRoutes sets up the tenants routes
func SetupTenantsRoutes(app *fiber.App) {
	tenantsAPI := app.Group("/api/tenants")
	tenantsAPI.Use(auth.AuthMiddleware)

	tenantsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetTenantsAPI(c, config.GetDB())
	})

	tenantsAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetTenantByIDAPI(c, config.GetDB())
	})

	tenantsAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateTenantAPI(c, config.GetDB())
	})

	tenantsAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateTenantAPI(c, config.GetDB())
	})

	tenantsAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteTenantAPI(c, config.GetDB())
	})
}
