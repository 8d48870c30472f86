package dashboard

import (
	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes sets up the analysis routes
func SetupDashboardRoutes(app *fiber.App) {
	analysisAPI := app.Group("/api/analysis")
	analysisAPI.Use(auth.AuthMiddleware)

	analysisAPI.Get("/", func(c *fiber.Ctx) error {
		return GetAnalysisAPI(c, config.GetDB())
	})
}
