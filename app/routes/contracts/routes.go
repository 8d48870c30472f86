package contracts

import (
	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupContractsRoutes sets up the contracts routes
func SetupContractsRoutes(app *fiber.App) {
	contractsAPI := app.Group("/api/contracts")
	contractsAPI.Use(auth.AuthMiddleware)

	contractsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetContractsAPI(c, config.GetDB())
	})

	contractsAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetContractByIDAPI(c, config.GetDB())
	})

	contractsAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateContractAPI(c, config.GetDB())
	})

	contractsAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateContractAPI(c, config.GetDB())
	})

	contractsAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteContractAPI(c, config.GetDB())
	})
}
