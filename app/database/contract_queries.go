package database

import (
	"database/sql"
	"time"

	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/shopspring/decimal"
)

const contractColumns = `id, tenant_id, start_date, end_date, monthly_rent, yearly_rent,
			  total_rent, rental_area, rental_unit_price, rent_collection_time,
			  deposit_amount, management_fee, status,
			  current_receivable, current_outstanding, total_overdue,
			  created_at, updated_at`

func scanContract(row interface {
	Scan(dest ...interface{}) error
}) (*models.Contract, error) {
	c := &models.Contract{}
	var collectionTime sql.NullTime
	err := row.Scan(&c.ID, &c.TenantID, &c.StartDate, &c.EndDate,
		&c.MonthlyRent, &c.YearlyRent, &c.TotalRent, &c.RentalArea,
		&c.RentalUnitPrice, &collectionTime, &c.DepositAmount, &c.ManagementFee,
		&c.Status, &c.CurrentReceivable, &c.CurrentOutstanding, &c.TotalOverdue,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if collectionTime.Valid {
		c.RentCollectionTime = collectionTime.Time
	}
	return c, nil
}

func GetContracts(db *sql.DB, status string) ([]*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY start_date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*models.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			continue
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

// GetContractByID loads a contract with its tenant, properties and fees
// expanded.
func GetContractByID(db *sql.DB, contractID string) (*models.Contract, error) {
	contract, err := scanContract(db.QueryRow(
		`SELECT `+contractColumns+` FROM contracts WHERE id = $1`, contractID))
	if err != nil {
		return nil, err
	}

	contract.Tenant, err = GetTenantByID(db, contract.TenantID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT p.id, p.house_number, p.area, p.address, p.rental_status,
			   p.current_value, COALESCE(p.maintenance_note, ''), p.created_at, p.updated_at
		FROM properties p
		JOIN contract_properties cp ON cp.property_id = p.id
		WHERE cp.contract_id = $1
		ORDER BY p.house_number
	`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			continue
		}
		contract.Properties = append(contract.Properties, p)
	}

	contract.Fees, err = feesForContract(db, contractID)
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// CreateContract signs a lease in one transaction: the contract row, its
// property associations, the generated initial fee set, the occupancy
// update for every linked property, and the first aggregate computation.
func CreateContract(db *sql.DB, contract *models.Contract, propertyIDs []string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Referenced tenant must exist; surfaces as not-found, never as a
	// constraint violation.
	if _, err := GetTenantByID(tx, contract.TenantID); err != nil {
		return err
	}

	if contract.Status == "" {
		contract.Status = models.ContractActive
	}

	query := `INSERT INTO contracts (tenant_id, start_date, end_date, monthly_rent, yearly_rent,
			  total_rent, rental_area, rental_unit_price, rent_collection_time,
			  deposit_amount, management_fee, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query, contract.TenantID, contract.StartDate, contract.EndDate,
		contract.MonthlyRent, contract.YearlyRent, contract.TotalRent,
		contract.RentalArea, contract.RentalUnitPrice, nullDate(contract.RentCollectionTime),
		contract.DepositAmount, contract.ManagementFee, contract.Status).Scan(
		&contract.ID, &contract.CreatedAt, &contract.UpdatedAt)
	if err != nil {
		return err
	}

	for _, propertyID := range propertyIDs {
		if _, err := GetPropertyByID(tx, propertyID); err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO contract_properties (contract_id, property_id) VALUES ($1, $2)`,
			contract.ID, propertyID)
		if err != nil {
			return err
		}
	}

	for _, fee := range contract.InitialFees() {
		if err := insertFee(tx, fee); err != nil {
			return err
		}
	}

	for _, propertyID := range propertyIDs {
		if err := SyncPropertyOccupancy(tx, propertyID); err != nil {
			return err
		}
	}

	if err := RecomputeContractAggregates(tx, contract.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// ContractUpdate carries a partial contract edit. Nil fields are left
// untouched; a non-nil PropertyIDs replaces the association set.
type ContractUpdate struct {
	StartDate          *time.Time
	EndDate            *time.Time
	MonthlyRent        *decimal.Decimal
	YearlyRent         *decimal.Decimal
	TotalRent          *decimal.Decimal
	RentalArea         *decimal.Decimal
	RentalUnitPrice    *decimal.Decimal
	RentCollectionTime *time.Time
	DepositAmount      *decimal.Decimal
	ManagementFee      *decimal.Decimal
	Status             *models.ContractStatus
	PropertyIDs        *[]string
}

// UpdateContract applies a partial edit in one transaction. Changing the
// property set diffs old against new and re-derives occupancy for every
// property that entered or left; a status change re-derives it for every
// linked property. Fee generation never runs here.
func UpdateContract(db *sql.DB, contractID string, update *ContractUpdate) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	contract, err := scanContract(tx.QueryRow(
		`SELECT `+contractColumns+` FROM contracts WHERE id = $1 FOR UPDATE`, contractID))
	if err != nil {
		return err
	}

	statusChanged := false
	if update.Status != nil && *update.Status != contract.Status {
		contract.Status = *update.Status
		statusChanged = true
	}
	if update.StartDate != nil {
		contract.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		contract.EndDate = *update.EndDate
	}
	if update.MonthlyRent != nil {
		contract.MonthlyRent = *update.MonthlyRent
	}
	if update.YearlyRent != nil {
		contract.YearlyRent = *update.YearlyRent
	}
	if update.TotalRent != nil {
		contract.TotalRent = *update.TotalRent
	}
	if update.RentalArea != nil {
		contract.RentalArea = *update.RentalArea
	}
	if update.RentalUnitPrice != nil {
		contract.RentalUnitPrice = *update.RentalUnitPrice
	}
	if update.RentCollectionTime != nil {
		contract.RentCollectionTime = *update.RentCollectionTime
	}
	if update.DepositAmount != nil {
		contract.DepositAmount = *update.DepositAmount
	}
	if update.ManagementFee != nil {
		contract.ManagementFee = *update.ManagementFee
	}

	_, err = tx.Exec(`UPDATE contracts SET start_date = $1, end_date = $2, monthly_rent = $3,
			  yearly_rent = $4, total_rent = $5, rental_area = $6, rental_unit_price = $7,
			  rent_collection_time = $8, deposit_amount = $9, management_fee = $10,
			  status = $11, updated_at = NOW()
			  WHERE id = $12`,
		contract.StartDate, contract.EndDate, contract.MonthlyRent, contract.YearlyRent,
		contract.TotalRent, contract.RentalArea, contract.RentalUnitPrice,
		nullDate(contract.RentCollectionTime), contract.DepositAmount, contract.ManagementFee,
		contract.Status, contractID)
	if err != nil {
		return err
	}

	touched := map[string]bool{}

	if update.PropertyIDs != nil {
		oldIDs, err := contractPropertyIDs(tx, contractID)
		if err != nil {
			return err
		}
		newSet := map[string]bool{}
		for _, id := range *update.PropertyIDs {
			newSet[id] = true
		}
		oldSet := map[string]bool{}
		for _, id := range oldIDs {
			oldSet[id] = true
			if !newSet[id] {
				_, err = tx.Exec(`DELETE FROM contract_properties WHERE contract_id = $1 AND property_id = $2`,
					contractID, id)
				if err != nil {
					return err
				}
				touched[id] = true
			}
		}
		for _, id := range *update.PropertyIDs {
			if !oldSet[id] {
				if _, err := GetPropertyByID(tx, id); err != nil {
					return err
				}
				_, err = tx.Exec(`INSERT INTO contract_properties (contract_id, property_id) VALUES ($1, $2)`,
					contractID, id)
				if err != nil {
					return err
				}
				touched[id] = true
			}
		}
	}

	if statusChanged {
		linked, err := contractPropertyIDs(tx, contractID)
		if err != nil {
			return err
		}
		for _, id := range linked {
			touched[id] = true
		}
	}

	for propertyID := range touched {
		if err := SyncPropertyOccupancy(tx, propertyID); err != nil {
			return err
		}
	}

	if err := RecomputeContractAggregates(tx, contractID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteContract removes the contract (fees and payments cascade) and
// releases its properties in the same transaction.
func DeleteContract(db *sql.DB, contractID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	linked, err := contractPropertyIDs(tx, contractID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM contracts WHERE id = $1`, contractID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}

	for _, propertyID := range linked {
		if err := SyncPropertyOccupancy(tx, propertyID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecomputeContractAggregates is the single authoritative routine for the
// three derived contract figures. Every mutation that touches the
// contract's fee or payment set calls it inside the same transaction;
// recomputing from the full fee set rather than incrementally keeps any
// previous drift self-healing.
func RecomputeContractAggregates(tx DBTX, contractID string) error {
	fees, err := feesForContract(tx, contractID)
	if err != nil {
		return err
	}
	agg := models.ContractAggregates(fees)
	_, err = tx.Exec(`UPDATE contracts SET current_receivable = $1, current_outstanding = $2,
			  total_overdue = $3, updated_at = NOW() WHERE id = $4`,
		agg.Receivable, agg.Outstanding, agg.Overdue, contractID)
	return err
}

func contractPropertyIDs(tx DBTX, contractID string) ([]string, error) {
	rows, err := tx.Query(`SELECT property_id FROM contract_properties WHERE contract_id = $1`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func nullDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
