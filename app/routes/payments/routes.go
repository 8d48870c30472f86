package payments

import (
	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupPaymentsRoutes sets up the payments routes
func SetupPaymentsRoutes(app *fiber.App) {
	paymentsAPI := app.Group("/api/payments")
	paymentsAPI.Use(auth.AuthMiddleware)

	paymentsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})

	paymentsAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetPaymentByIDAPI(c, config.GetDB())
	})

	paymentsAPI.Get("/:id/receipt", func(c *fiber.Ctx) error {
		return GetReceiptAPI(c, config.GetDB())
	})

	paymentsAPI.Post("/", func(c *fiber.Ctx) error {
		return CreatePaymentAPI(c, config.GetDB())
	})

	paymentsAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeletePaymentAPI(c, config.GetDB())
	})
}
