package properties

import (
	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupPropertiesRoutes sets up the properties routes
func SetupPropertiesRoutes(app *fiber.App) {
	propertiesAPI := app.Group("/api/properties")
	propertiesAPI.Use(auth.AuthMiddleware)

	propertiesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetPropertiesAPI(c, config.GetDB())
	})

	propertiesAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetPropertyByIDAPI(c, config.GetDB())
	})

	propertiesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreatePropertyAPI(c, config.GetDB())
	})

	propertiesAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdatePropertyAPI(c, config.GetDB())
	})

	propertiesAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeletePropertyAPI(c, config.GetDB())
	})
}
