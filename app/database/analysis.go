package database

import (
	"database/sql"

	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/shopspring/decimal"
)

// GetAnalysisSnapshot computes the portfolio-wide financial and occupancy
// figures from current store state. Stateless: nothing is cached, absent
// data yields zeros.
func GetAnalysisSnapshot(db *sql.DB) (*models.AnalysisSnapshot, error) {
	snapshot := &models.AnalysisSnapshot{
		Financial: models.FinancialSnapshot{
			ReceivableAmount: decimal.Zero,
			ReceivedAmount:   decimal.Zero,
			OverdueAmount:    decimal.Zero,
			CollectionRate:   decimal.Zero,
		},
		Property: models.PropertySnapshot{
			TotalArea:  decimal.Zero,
			RentedArea: decimal.Zero,
			RentalRate: decimal.Zero,
		},
	}

	err := db.QueryRow(`
		SELECT
			COALESCE((SELECT SUM(amount) FROM fees WHERE is_collected = false), 0),
			COALESCE((SELECT SUM(amount) FROM payments), 0),
			COALESCE((SELECT SUM(amount) FROM fees WHERE overdue_status = 'overdue' AND is_collected = false), 0)
	`).Scan(
		&snapshot.Financial.ReceivableAmount,
		&snapshot.Financial.ReceivedAmount,
		&snapshot.Financial.OverdueAmount,
	)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT
			COALESCE(SUM(area), 0),
			COALESCE(SUM(CASE WHEN rental_status = 'rented' THEN area END), 0),
			COUNT(CASE WHEN rental_status = 'available' THEN 1 END)
		FROM properties
	`).Scan(
		&snapshot.Property.TotalArea,
		&snapshot.Property.RentedArea,
		&snapshot.Property.AvailableProperties,
	)
	if err != nil {
		return nil, err
	}

	snapshot.Financial.CollectionRate = models.CollectionRate(
		snapshot.Financial.ReceivedAmount, snapshot.Financial.ReceivableAmount)
	snapshot.Property.RentalRate = models.RentalRate(
		snapshot.Property.RentedArea, snapshot.Property.TotalArea)

	return snapshot, nil
}
