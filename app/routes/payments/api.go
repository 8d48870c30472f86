package payments

import (
	"database/sql"
	"log"

	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/Shinokawa/TentalManager/app/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PaymentRequest is the payload for settling a fee.
type PaymentRequest struct {
	FeeID         string          `json:"fee_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// GetPaymentsAPI returns payments, optionally scoped to one fee
func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	payments, err := database.GetPayments(db, c.Query("fee_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
	})
}

// GetPaymentByIDAPI returns a specific payment by ID
func GetPaymentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	paymentID := c.Params("id")

	payment, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payment,
	})
}

// CreatePaymentAPI settles a fee. The payment, the fee's collection state
// and the contract aggregates commit atomically; the receipt artifact is
// rendered afterwards and its failure never unwinds the settlement.
func CreatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.FeeID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "fee_id is required")
	}

	payment := &models.Payment{
		FeeID:         req.FeeID,
		Amount:        req.Amount,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
	}

	if err := database.RecordPayment(db, payment); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return fiber.NewError(fiber.StatusNotFound, "Fee not found")
		case err == database.ErrInvalidAmount:
			return fiber.NewError(fiber.StatusBadRequest, "Payment amount must be greater than zero")
		case err == database.ErrInvalidMethod:
			return fiber.NewError(fiber.StatusBadRequest, "Unknown payment method")
		case err == database.ErrExceedsBalance:
			return fiber.NewError(fiber.StatusBadRequest, "Payment amount exceeds the remaining balance")
		case err == database.ErrDuplicatePayment:
			return fiber.NewError(fiber.StatusBadRequest, "Fee already has a payment recorded against it")
		case err == database.ErrFeeAlreadyCollected:
			return fiber.NewError(fiber.StatusConflict, "Fee is already fully collected")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
		}
	}

	// Best-effort: the settlement is already committed.
	if _, err := services.GenerateReceipt(db, payment.ID); err != nil {
		log.Printf("Receipt generation failed for payment %s: %v", payment.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    payment,
		"message": "Payment recorded successfully",
	})
}

// DeletePaymentAPI reverses a settlement
func DeletePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	paymentID := c.Params("id")

	if err := database.DeletePayment(db, paymentID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment deleted successfully",
	})
}

// GetReceiptAPI serves the receipt artifact for a payment, rendering it on
// demand when it was never generated or went missing
func GetReceiptAPI(c *fiber.Ctx, db *sql.DB) error {
	paymentID := c.Params("id")

	if _, err := database.GetPaymentByID(db, paymentID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment")
	}

	path, err := services.GenerateReceipt(db, paymentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render receipt")
	}

	c.Type("html")
	return c.SendFile(path)
}
