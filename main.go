package main

import (
	"log"

	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/routes/auth"
	"github.com/Shinokawa/TentalManager/app/routes/contracts"
	"github.com/Shinokawa/TentalManager/app/routes/dashboard"
	"github.com/Shinokawa/TentalManager/app/routes/fees"
	"github.com/Shinokawa/TentalManager/app/routes/payments"
	"github.com/Shinokawa/TentalManager/app/routes/properties"
	"github.com/Shinokawa/TentalManager/app/routes/tenants"
	"github.com/Shinokawa/TentalManager/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// customErrorHandler renders every error as the API envelope.
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup tenants routes
	tenants.SetupTenantsRoutes(app)

	// Setup properties routes
	properties.SetupPropertiesRoutes(app)

	// Setup contracts routes
	contracts.SetupContractsRoutes(app)

	// Setup fees routes
	fees.SetupFeesRoutes(app)

	// Setup payments routes
	payments.SetupPaymentsRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
