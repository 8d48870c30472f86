package fees

import (
	"database/sql"

	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GetFeesAPI returns fees with optional filtering by collection state,
// overdue state, contract or tenant
func GetFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.FeeFilters{
		ContractID: c.Query("contract_id"),
		TenantID:   c.Query("tenant_id"),
	}

	switch c.Query("collected") {
	case "true":
		v := true
		filters.Collected = &v
	case "false":
		v := false
		filters.Collected = &v
	}

	switch c.Query("overdue") {
	case "true":
		v := true
		filters.Overdue = &v
	case "false":
		v := false
		filters.Overdue = &v
	}

	fees, err := database.GetFees(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fees")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fees,
	})
}

// GetReceivablesAPI returns all uncollected fees
func GetReceivablesAPI(c *fiber.Ctx, db *sql.DB) error {
	collected := false
	fees, err := database.GetFees(db, database.FeeFilters{Collected: &collected})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch receivables")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fees,
	})
}

// GetPayablesAPI returns overdue fees that are still uncollected
func GetPayablesAPI(c *fiber.Ctx, db *sql.DB) error {
	fees, err := database.GetOverdueUnpaidFees(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payables")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fees,
	})
}

// GetFeeByIDAPI returns a specific fee with its payment history
func GetFeeByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	feeID := c.Params("id")

	fee, err := database.GetFeeByID(db, feeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee")
	}

	fee.Payments, err = database.GetPayments(db, feeID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee payments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fee,
	})
}

// FeeRequest is the payload for appending a fee under a contract. Collection
// state is not accepted here: it belongs to the settlement path.
type FeeRequest struct {
	ContractID string          `json:"contract_id"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Term       string          `json:"term"`
}

// CreateFeeAPI appends a billable fee under a contract
func CreateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req FeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.ContractID == "" || req.Category == "" || req.Term == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	fee := &models.Fee{
		ContractID:    req.ContractID,
		Category:      models.FeeCategory(req.Category),
		Amount:        req.Amount,
		Term:          req.Term,
		OverdueStatus: models.OverdueOnTime,
	}

	if err := database.CreateFee(db, fee); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return fiber.NewError(fiber.StatusNotFound, "Contract not found")
		case err == database.ErrInvalidAmount:
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than zero")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fee,
		"message": "Fee created successfully",
	})
}

// UpdateFeeAPI edits a fee's category, amount and term. is_collected and
// the stamped payment method are derived from payment history and cannot be
// set here.
func UpdateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	feeID := c.Params("id")

	var req FeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Category == "" || req.Term == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	err := database.UpdateFee(db, feeID, models.FeeCategory(req.Category), req.Amount, req.Term)
	if err != nil {
		switch {
		case err == sql.ErrNoRows:
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		case err == database.ErrInvalidAmount:
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than zero")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee updated successfully",
	})
}

// DeleteFeeAPI deletes a fee; its payments cascade and the contract
// aggregates are recomputed
func DeleteFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	feeID := c.Params("id")

	if err := database.DeleteFee(db, feeID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee deleted successfully",
	})
}
