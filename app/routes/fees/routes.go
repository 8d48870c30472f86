package fees

import (
	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupFeesRoutes sets up the fees routes
func SetupFeesRoutes(app *fiber.App) {
	feesAPI := app.Group("/api/fees")
	feesAPI.Use(auth.AuthMiddleware)

	feesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetFeesAPI(c, config.GetDB())
	})

	// Receivables/payables views must register before the :id route.
	feesAPI.Get("/receivables", func(c *fiber.Ctx) error {
		return GetReceivablesAPI(c, config.GetDB())
	})

	feesAPI.Get("/payables", func(c *fiber.Ctx) error {
		return GetPayablesAPI(c, config.GetDB())
	})

	feesAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetFeeByIDAPI(c, config.GetDB())
	})

	feesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateFeeAPI(c, config.GetDB())
	})

	feesAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateFeeAPI(c, config.GetDB())
	})

	feesAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteFeeAPI(c, config.GetDB())
	})
}
