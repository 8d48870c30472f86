package dashboard

import (
	"database/sql"

	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/gofiber/fiber/v2"
)

// GetAnalysisAPI returns the portfolio-wide financial and occupancy
// snapshot. Computed from current store state on every call; an empty
// portfolio yields zeros.
func GetAnalysisAPI(c *fiber.Ctx, db *sql.DB) error {
	snapshot, err := database.GetAnalysisSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute analysis")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    snapshot,
	})
}
