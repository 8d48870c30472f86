package database

import (
	"database/sql"

	"github.com/Shinokawa/TentalManager/app/models"
)

const propertyColumns = `id, house_number, area, address, rental_status,
			  current_value, COALESCE(maintenance_note, ''), created_at, updated_at`

func scanProperty(row interface {
	Scan(dest ...interface{}) error
}) (*models.Property, error) {
	p := &models.Property{}
	err := row.Scan(&p.ID, &p.HouseNumber, &p.Area, &p.Address, &p.RentalStatus,
		&p.CurrentValue, &p.MaintenanceNote, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func GetProperties(db *sql.DB, status string) ([]*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties`
	var args []interface{}
	if status != "" {
		query += ` WHERE rental_status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY house_number`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			continue
		}
		properties = append(properties, p)
	}
	return properties, nil
}

func GetPropertyByID(db DBTX, propertyID string) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return scanProperty(db.QueryRow(query, propertyID))
}

func CreateProperty(db *sql.DB, property *models.Property) error {
	if !property.Area.IsPositive() {
		return ErrInvalidArea
	}
	if property.RentalStatus == "" {
		property.RentalStatus = models.StatusAvailable
	}
	query := `INSERT INTO properties (house_number, area, address, rental_status, current_value, maintenance_note, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NOW(), NOW())
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, property.HouseNumber, property.Area, property.Address,
		property.RentalStatus, property.CurrentValue, property.MaintenanceNote).Scan(
		&property.ID, &property.CreatedAt, &property.UpdatedAt,
	)
}

// UpdateProperty applies administrative edits. When the operator moves the
// property out of maintenance the occupancy rule takes ownership of the
// status again, so the stored status is re-derived in the same transaction.
func UpdateProperty(db *sql.DB, property *models.Property) error {
	if !property.Area.IsPositive() {
		return ErrInvalidArea
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE properties SET house_number = $1, area = $2, address = $3,
			  rental_status = $4, current_value = $5, maintenance_note = NULLIF($6, ''), updated_at = NOW()
			  WHERE id = $7`
	result, err := tx.Exec(query, property.HouseNumber, property.Area, property.Address,
		property.RentalStatus, property.CurrentValue, property.MaintenanceNote, property.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}

	if property.RentalStatus != models.StatusMaintenance {
		if err := SyncPropertyOccupancy(tx, property.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteProperty removes a property unless any contract, active or not,
// still links to it.
func DeleteProperty(db *sql.DB, propertyID string) error {
	var links int
	err := db.QueryRow(`SELECT COUNT(*) FROM contract_properties WHERE property_id = $1`, propertyID).Scan(&links)
	if err != nil {
		return err
	}
	if links > 0 {
		return ErrPropertyInUse
	}

	result, err := db.Exec(`DELETE FROM properties WHERE id = $1`, propertyID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SyncPropertyOccupancy re-derives rental_status from the number of active
// contracts attached to the property, delegating the derivation itself to
// models.OccupancyFor. It must run in the same transaction as the
// association change it follows. A property in maintenance is left
// untouched; the write re-checks that guard so a concurrent operator edit
// cannot be clobbered.
func SyncPropertyOccupancy(tx DBTX, propertyID string) error {
	property, err := GetPropertyByID(tx, propertyID)
	if err != nil {
		return err
	}

	var active int
	err = tx.QueryRow(`
		SELECT COUNT(*)
		FROM contract_properties cp
		JOIN contracts c ON cp.contract_id = c.id
		WHERE cp.property_id = $1 AND c.status = 'active'
	`, propertyID).Scan(&active)
	if err != nil {
		return err
	}

	status := property.OccupancyFor(active)
	if status == models.StatusMaintenance {
		return nil
	}

	_, err = tx.Exec(`
		UPDATE properties SET rental_status = $1, updated_at = NOW()
		WHERE id = $2 AND rental_status <> 'maintenance'
	`, status, propertyID)
	return err
}
