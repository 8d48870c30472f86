package contracts

import (
	"database/sql"

	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ContractRequest is the payload for signing a new lease.
type ContractRequest struct {
	TenantID           string            `json:"tenant_id"`
	PropertyIDs        []string          `json:"property_ids"`
	StartDate          models.CustomTime `json:"start_date"`
	EndDate            models.CustomTime `json:"end_date"`
	MonthlyRent        decimal.Decimal   `json:"monthly_rent"`
	YearlyRent         decimal.Decimal   `json:"yearly_rent"`
	TotalRent          decimal.Decimal   `json:"total_rent"`
	RentalArea         decimal.Decimal   `json:"rental_area"`
	RentalUnitPrice    decimal.Decimal   `json:"rental_unit_price"`
	RentCollectionTime models.CustomTime `json:"rent_collection_time"`
	DepositAmount      decimal.Decimal   `json:"deposit_amount"`
	ManagementFee      decimal.Decimal   `json:"management_fee"`
}

// ContractUpdateRequest is a partial edit; absent fields stay untouched.
type ContractUpdateRequest struct {
	PropertyIDs        *[]string          `json:"property_ids"`
	StartDate          *models.CustomTime `json:"start_date"`
	EndDate            *models.CustomTime `json:"end_date"`
	MonthlyRent        *decimal.Decimal   `json:"monthly_rent"`
	YearlyRent         *decimal.Decimal   `json:"yearly_rent"`
	TotalRent          *decimal.Decimal   `json:"total_rent"`
	RentalArea         *decimal.Decimal   `json:"rental_area"`
	RentalUnitPrice    *decimal.Decimal   `json:"rental_unit_price"`
	RentCollectionTime *models.CustomTime `json:"rent_collection_time"`
	DepositAmount      *decimal.Decimal   `json:"deposit_amount"`
	ManagementFee      *decimal.Decimal   `json:"management_fee"`
	Status             *string            `json:"status"`
}

// GetContractsAPI returns all contracts with optional status filtering
func GetContractsAPI(c *fiber.Ctx, db *sql.DB) error {
	status := c.Query("status") // "active", "terminated", "expired"

	contracts, err := database.GetContracts(db, status)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch contracts")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    contracts,
	})
}

// GetContractByIDAPI returns a contract with tenant, properties and fees expanded
func GetContractByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	contractID := c.Params("id")

	contract, err := database.GetContractByID(db, contractID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Contract not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch contract")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    contract,
	})
}

// CreateContractAPI signs a lease: the contract row, its property links,
// the generated initial fees and the occupancy updates land in one
// transaction.
func CreateContractAPI(c *fiber.Ctx, db *sql.DB) error {
	var req ContractRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.TenantID == "" || len(req.PropertyIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "tenant_id and property_ids are required")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "start_date and end_date are required")
	}
	if !req.MonthlyRent.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "monthly_rent must be greater than zero")
	}

	contract := &models.Contract{
		TenantID:           req.TenantID,
		StartDate:          req.StartDate.Time,
		EndDate:            req.EndDate.Time,
		MonthlyRent:        req.MonthlyRent,
		YearlyRent:         req.YearlyRent,
		TotalRent:          req.TotalRent,
		RentalArea:         req.RentalArea,
		RentalUnitPrice:    req.RentalUnitPrice,
		RentCollectionTime: req.RentCollectionTime.Time,
		DepositAmount:      req.DepositAmount,
		ManagementFee:      req.ManagementFee,
		Status:             models.ContractActive,
	}

	if err := database.CreateContract(db, contract, req.PropertyIDs); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Tenant or property not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create contract")
	}

	created, err := database.GetContractByID(db, contract.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch created contract")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
		"message": "Contract created successfully",
	})
}

// UpdateContractAPI applies a partial edit, diffing the property set when
// one is supplied
func UpdateContractAPI(c *fiber.Ctx, db *sql.DB) error {
	contractID := c.Params("id")

	var req ContractUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	update := &database.ContractUpdate{
		PropertyIDs:     req.PropertyIDs,
		MonthlyRent:     req.MonthlyRent,
		YearlyRent:      req.YearlyRent,
		TotalRent:       req.TotalRent,
		RentalArea:      req.RentalArea,
		RentalUnitPrice: req.RentalUnitPrice,
		DepositAmount:   req.DepositAmount,
		ManagementFee:   req.ManagementFee,
	}
	if req.StartDate != nil {
		update.StartDate = &req.StartDate.Time
	}
	if req.EndDate != nil {
		update.EndDate = &req.EndDate.Time
	}
	if req.RentCollectionTime != nil {
		update.RentCollectionTime = &req.RentCollectionTime.Time
	}
	if req.Status != nil {
		status := models.ContractStatus(*req.Status)
		switch status {
		case models.ContractActive, models.ContractTerminated, models.ContractExpired:
			update.Status = &status
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Invalid contract status")
		}
	}

	if err := database.UpdateContract(db, contractID, update); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Contract or property not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update contract")
	}

	updated, err := database.GetContractByID(db, contractID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch updated contract")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
		"message": "Contract updated successfully",
	})
}

// DeleteContractAPI deletes a contract; its fees and payments cascade and
// its properties are released
func DeleteContractAPI(c *fiber.Ctx, db *sql.DB) error {
	contractID := c.Params("id")

	if err := database.DeleteContract(db, contractID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Contract not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete contract")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contract deleted successfully",
	})
}
