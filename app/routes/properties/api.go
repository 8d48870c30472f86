package properties

import (
	"database/sql"

	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// GetPropertiesAPI returns all properties with optional status filtering
func GetPropertiesAPI(c *fiber.Ctx, db *sql.DB) error {
	status := c.Query("status") // "available", "rented", "maintenance"

	properties, err := database.GetProperties(db, status)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch properties")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    properties,
	})
}

// GetPropertyByIDAPI returns a specific property by ID
func GetPropertyByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	propertyID := c.Params("id")

	property, err := database.GetPropertyByID(db, propertyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch property")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    property,
	})
}

// CreatePropertyAPI registers a new property
func CreatePropertyAPI(c *fiber.Ctx, db *sql.DB) error {
	var property models.Property
	if err := c.BodyParser(&property); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if property.HouseNumber == "" || property.Address == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	if err := database.CreateProperty(db, &property); err != nil {
		switch {
		case err == database.ErrInvalidArea:
			return fiber.NewError(fiber.StatusBadRequest, "Area must be greater than zero")
		default:
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return fiber.NewError(fiber.StatusConflict, "A property with this house number already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create property")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    property,
		"message": "Property created successfully",
	})
}

// UpdatePropertyAPI applies administrative edits to a property. Setting
// rental_status to rented/available by hand is pointless: the occupancy
// rule re-derives it in the same transaction. Only maintenance sticks.
func UpdatePropertyAPI(c *fiber.Ctx, db *sql.DB) error {
	propertyID := c.Params("id")

	existing, err := database.GetPropertyByID(db, propertyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch property")
	}

	property := *existing
	if err := c.BodyParser(&property); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	property.ID = propertyID

	if err := database.UpdateProperty(db, &property); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		case err == database.ErrInvalidArea:
			return fiber.NewError(fiber.StatusBadRequest, "Area must be greater than zero")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update property")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Property updated successfully",
	})
}

// DeletePropertyAPI deletes a property unless contracts link to it
func DeletePropertyAPI(c *fiber.Ctx, db *sql.DB) error {
	propertyID := c.Params("id")

	if err := database.DeleteProperty(db, propertyID); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		case err == database.ErrPropertyInUse:
			return fiber.NewError(fiber.StatusConflict, "Property is attached to a contract")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete property")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Property deleted successfully",
	})
}
