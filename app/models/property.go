package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property represents a rentable unit. rental_status is owned by the
// occupancy rule for rented/available; maintenance is operator-owned and
// never toggled automatically.
type Property struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	HouseNumber     string          `json:"house_number" gorm:"uniqueIndex;not null" validate:"required"`
	Area            decimal.Decimal `json:"area" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Address         string          `json:"address" gorm:"not null"`
	RentalStatus    RentalStatus    `json:"rental_status" gorm:"not null;default:'available';type:varchar(20)"`
	CurrentValue    decimal.Decimal `json:"current_value" gorm:"type:numeric(12,2)"`
	MaintenanceNote string          `json:"maintenance_note,omitempty" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Contracts []*Contract `json:"contracts,omitempty" gorm:"many2many:contract_properties;"`
}

// OccupancyFor derives the rental status from the number of active contracts
// currently attached to the property. Maintenance is sticky: the automatic
// rule leaves it alone in both directions.
func (p *Property) OccupancyFor(activeContracts int) RentalStatus {
	if p.RentalStatus == StatusMaintenance {
		return StatusMaintenance
	}
	if activeContracts > 0 {
		return StatusRented
	}
	return StatusAvailable
}
