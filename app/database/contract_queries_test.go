package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyColumnNames = []string{
	"id", "house_number", "area", "address", "rental_status",
	"current_value", "maintenance_note", "created_at", "updated_at",
}

var tenantColumnNames = []string{
	"id", "email", "first_name", "last_name", "phone", "created_at", "updated_at",
}

func propertyRow(id, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(propertyColumnNames).
		AddRow(id, "A-101", "120.00", "1 Main St", status, "500000.00", "", now, now)
}

func tenantRow(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(tenantColumnNames).
		AddRow(id, "tenant@example.com", "Jane", "Doe", "555-0100", now, now)
}

// Signing a lease must flip the linked property to rented inside the same
// transaction, with the write guarded so a property in maintenance is never
// clobbered.
func TestCreateContractRentsProperty(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM tenants WHERE id = \$1`).
		WithArgs("tenant-1").
		WillReturnRows(tenantRow("tenant-1"))
	mock.ExpectQuery(`INSERT INTO contracts`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("contract-1", now, now))
	mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1`).
		WithArgs("prop-1").
		WillReturnRows(propertyRow("prop-1", "available"))
	mock.ExpectExec(`INSERT INTO contract_properties`).
		WithArgs("contract-1", "prop-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO fees`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("fee-1", now, now))
	// Occupancy sync: load the property, count active contracts, derive.
	mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1`).
		WithArgs("prop-1").
		WillReturnRows(propertyRow("prop-1", "available"))
	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\).*FROM contract_properties cp`).
		WithArgs("prop-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`(?s)UPDATE properties SET rental_status = \$1.*rental_status <> 'maintenance'`).
		WithArgs("rented", "prop-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM fees WHERE contract_id = \$1`).
		WithArgs("contract-1").
		WillReturnRows(feeRow("fee-1", "contract-1", "5000.00", false))
	mock.ExpectExec(`UPDATE contracts SET current_receivable`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	contract := &models.Contract{
		TenantID:    "tenant-1",
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		MonthlyRent: dec("5000.00"),
	}
	err = CreateContract(db, contract, []string{"prop-1"})
	require.NoError(t, err)
	assert.Equal(t, "contract-1", contract.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Removing the last contract releases the property back to available.
func TestDeleteContractReleasesProperty(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT property_id FROM contract_properties WHERE contract_id = \$1`).
		WithArgs("contract-1").
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow("prop-1"))
	mock.ExpectExec(`DELETE FROM contracts WHERE id = \$1`).
		WithArgs("contract-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1`).
		WithArgs("prop-1").
		WillReturnRows(propertyRow("prop-1", "rented"))
	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\).*FROM contract_properties cp`).
		WithArgs("prop-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`(?s)UPDATE properties SET rental_status = \$1.*rental_status <> 'maintenance'`).
		WithArgs("available", "prop-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = DeleteContract(db, "contract-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A property an operator parked in maintenance stays there: the sync loads
// the row, sees maintenance, and issues no status write at all.
func TestDeleteContractKeepsMaintenanceProperty(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT property_id FROM contract_properties WHERE contract_id = \$1`).
		WithArgs("contract-1").
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow("prop-1"))
	mock.ExpectExec(`DELETE FROM contracts WHERE id = \$1`).
		WithArgs("contract-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1`).
		WithArgs("prop-1").
		WillReturnRows(propertyRow("prop-1", "maintenance"))
	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\).*FROM contract_properties cp`).
		WithArgs("prop-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	err = DeleteContract(db, "contract-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
