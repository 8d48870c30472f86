package tenants

import (
	"database/sql"
	"strings"

	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// GetTenantsAPI returns all tenants with optional search
func GetTenantsAPI(c *fiber.Ctx, db *sql.DB) error {
	search := strings.ToLower(c.Query("search"))

	tenants, err := database.GetTenants(db, search)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch tenants")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tenants,
	})
}

// GetTenantByIDAPI returns a specific tenant with their fee history
func GetTenantByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID := c.Params("id")

	tenant, err := database.GetTenantByID(db, tenantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Tenant not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch tenant")
	}

	// Fee history ordered by contract start date, newest lease first.
	fees, err := database.GetFees(db, database.FeeFilters{TenantID: tenantID})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch tenant fees")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tenant,
		"fees":    fees,
	})
}

// CreateTenantAPI creates a new tenant
func CreateTenantAPI(c *fiber.Ctx, db *sql.DB) error {
	var tenant models.Tenant
	if err := c.BodyParser(&tenant); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if tenant.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required")
	}

	if err := database.CreateTenant(db, &tenant); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fiber.NewError(fiber.StatusConflict, "A tenant with this email already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create tenant")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    tenant,
		"message": "Tenant created successfully",
	})
}

// UpdateTenantAPI updates a tenant's contact info. Email is immutable.
func UpdateTenantAPI(c *fiber.Ctx, db *sql.DB) error {
	var tenant models.Tenant
	if err := c.BodyParser(&tenant); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	tenant.ID = c.Params("id")

	if err := database.UpdateTenant(db, &tenant); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Tenant not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update tenant")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tenant updated successfully",
	})
}

// DeleteTenantAPI deletes a tenant unless contracts still reference it
func DeleteTenantAPI(c *fiber.Ctx, db *sql.DB) error {
	tenantID := c.Params("id")

	if err := database.DeleteTenant(db, tenantID); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return fiber.NewError(fiber.StatusNotFound, "Tenant not found")
		case err == database.ErrTenantHasContracts:
			return fiber.NewError(fiber.StatusConflict, "Tenant still has contracts")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete tenant")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tenant deleted successfully",
	})
}
