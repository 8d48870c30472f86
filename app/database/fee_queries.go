package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/shopspring/decimal"
)

const feeColumns = `id, contract_id, category, amount, term, is_collected,
			  overdue_status, payment_method, receipt_path, created_at, updated_at`

func scanFee(row interface {
	Scan(dest ...interface{}) error
}) (*models.Fee, error) {
	f := &models.Fee{}
	var method sql.NullString
	var receipt sql.NullString
	err := row.Scan(&f.ID, &f.ContractID, &f.Category, &f.Amount, &f.Term,
		&f.IsCollected, &f.OverdueStatus, &method, &receipt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if method.Valid {
		m := models.PaymentMethod(method.String)
		f.PaymentMethod = &m
	}
	if receipt.Valid {
		f.ReceiptPath = &receipt.String
	}
	return f, nil
}

// FeeFilters narrows fee listings. Collected/Overdue are tri-state.
type FeeFilters struct {
	Collected  *bool
	Overdue    *bool
	ContractID string
	TenantID   string
}

// GetFees lists fees with optional filters. Listings scoped to a tenant are
// ordered by contract start date descending, then category, matching the
// per-tenant statement view; everything else is newest first.
func GetFees(db *sql.DB, filters FeeFilters) ([]*models.Fee, error) {
	query := `SELECT f.id, f.contract_id, f.category, f.amount, f.term, f.is_collected,
			  f.overdue_status, f.payment_method, f.receipt_path, f.created_at, f.updated_at
			  FROM fees f
			  JOIN contracts c ON f.contract_id = c.id
			  WHERE 1=1`
	var args []interface{}
	argIndex := 1

	if filters.Collected != nil {
		query += fmt.Sprintf(" AND f.is_collected = $%d", argIndex)
		args = append(args, *filters.Collected)
		argIndex++
	}
	if filters.Overdue != nil {
		status := models.OverdueOnTime
		if *filters.Overdue {
			status = models.OverdueOverdue
		}
		query += fmt.Sprintf(" AND f.overdue_status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}
	if filters.ContractID != "" {
		query += fmt.Sprintf(" AND f.contract_id = $%d", argIndex)
		args = append(args, filters.ContractID)
		argIndex++
	}
	if filters.TenantID != "" {
		query += fmt.Sprintf(" AND c.tenant_id = $%d", argIndex)
		args = append(args, filters.TenantID)
		argIndex++
	}

	if filters.TenantID != "" {
		query += " ORDER BY c.start_date DESC, f.category"
	} else {
		query += " ORDER BY f.created_at DESC"
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []*models.Fee
	for rows.Next() {
		f, err := scanFee(rows)
		if err != nil {
			continue
		}
		fees = append(fees, f)
	}
	return fees, nil
}

func GetFeeByID(db DBTX, feeID string) (*models.Fee, error) {
	return scanFee(db.QueryRow(`SELECT `+feeColumns+` FROM fees WHERE id = $1`, feeID))
}

func getFeeForUpdate(tx DBTX, feeID string) (*models.Fee, error) {
	return scanFee(tx.QueryRow(`SELECT `+feeColumns+` FROM fees WHERE id = $1 FOR UPDATE`, feeID))
}

func feesForContract(q DBTX, contractID string) ([]*models.Fee, error) {
	rows, err := q.Query(`SELECT `+feeColumns+` FROM fees WHERE contract_id = $1 ORDER BY created_at`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []*models.Fee
	for rows.Next() {
		f, err := scanFee(rows)
		if err != nil {
			continue
		}
		fees = append(fees, f)
	}
	return fees, nil
}

func insertFee(tx DBTX, fee *models.Fee) error {
	query := `INSERT INTO fees (contract_id, category, amount, term, is_collected, overdue_status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			  RETURNING id, created_at, updated_at`
	return tx.QueryRow(query, fee.ContractID, fee.Category, fee.Amount, fee.Term,
		fee.IsCollected, fee.OverdueStatus).Scan(&fee.ID, &fee.CreatedAt, &fee.UpdatedAt)
}

// CreateFee appends a fee under a contract, the entry point used by the
// billing rollover and manual charges. The parent aggregates are recomputed
// in the same transaction.
func CreateFee(db *sql.DB, fee *models.Fee) error {
	if !fee.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`SELECT id FROM contracts WHERE id = $1`, fee.ContractID).Scan(&fee.ContractID); err != nil {
		return err
	}

	fee.IsCollected = false
	if fee.OverdueStatus == "" {
		fee.OverdueStatus = models.OverdueOnTime
	}
	if err := insertFee(tx, fee); err != nil {
		return err
	}

	if err := RecomputeContractAggregates(tx, fee.ContractID); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateFee edits category, amount and term only. is_collected and the
// stamped method/receipt belong to the settlement path, so the collection
// flag is re-derived here from the payment history and the contract
// aggregates follow.
func UpdateFee(db *sql.DB, feeID string, category models.FeeCategory, amount decimal.Decimal, term string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fee, err := getFeeForUpdate(tx, feeID)
	if err != nil {
		return err
	}

	fee.Category = category
	fee.Amount = amount
	fee.Term = term

	payments, err := paymentsForFee(tx, feeID)
	if err != nil {
		return err
	}

	if err := applyFeeCollection(tx, fee, payments); err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE fees SET category = $1, amount = $2, term = $3, updated_at = NOW() WHERE id = $4`,
		fee.Category, fee.Amount, fee.Term, feeID)
	if err != nil {
		return err
	}

	if err := RecomputeContractAggregates(tx, fee.ContractID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteFee removes a fee (payments cascade) and recomputes the parent
// aggregates.
func DeleteFee(db *sql.DB, feeID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fee, err := getFeeForUpdate(tx, feeID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM fees WHERE id = $1`, feeID); err != nil {
		return err
	}

	if err := RecomputeContractAggregates(tx, fee.ContractID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetFeesDueInPeriod returns uncollected on-time fees whose term is the
// month containing now, for the notification dispatcher. No eligible rows
// is a normal outcome.
func GetFeesDueInPeriod(db *sql.DB, now time.Time) ([]*models.Fee, error) {
	collected := false
	fees, err := GetFees(db, FeeFilters{Collected: &collected})
	if err != nil {
		return nil, err
	}

	term := now.Format("2006-01")
	var due []*models.Fee
	for _, f := range fees {
		if f.Term == term && f.OverdueStatus == models.OverdueOnTime {
			due = append(due, f)
		}
	}
	return due, nil
}

// GetOverdueUnpaidFees returns overdue fees that are still uncollected.
func GetOverdueUnpaidFees(db *sql.DB) ([]*models.Fee, error) {
	collected := false
	overdue := true
	return GetFees(db, FeeFilters{Collected: &collected, Overdue: &overdue})
}

// MarkFeesOverdue flips uncollected fees whose term month has passed to
// overdue and recomputes aggregates for every affected contract. Invoked by
// the scheduler; returns the number of fees flipped.
func MarkFeesOverdue(db *sql.DB, now time.Time) (int, error) {
	collected := false
	fees, err := GetFees(db, FeeFilters{Collected: &collected})
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	contracts := map[string]bool{}
	flipped := 0
	for _, fee := range fees {
		if fee.OverdueStatus == models.OverdueOverdue || !fee.PastDue(now) {
			continue
		}
		_, err := tx.Exec(`UPDATE fees SET overdue_status = $1, updated_at = NOW() WHERE id = $2`,
			models.OverdueOverdue, fee.ID)
		if err != nil {
			return 0, err
		}
		contracts[fee.ContractID] = true
		flipped++
	}

	for contractID := range contracts {
		if err := RecomputeContractAggregates(tx, contractID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return flipped, nil
}

// applyFeeCollection re-derives is_collected from the payment set and keeps
// the stamped payment method and receipt consistent with it: stamped from
// the latest payment when collected, cleared when not.
func applyFeeCollection(tx DBTX, fee *models.Fee, payments []*models.Payment) error {
	collected := fee.CollectedFrom(payments)
	fee.IsCollected = collected

	var method interface{}
	var receipt interface{}
	if collected && len(payments) > 0 {
		last := payments[len(payments)-1]
		method = string(last.PaymentMethod)
		if last.ReceiptPath != nil {
			receipt = *last.ReceiptPath
		}
	}

	_, err := tx.Exec(`UPDATE fees SET is_collected = $1, payment_method = $2, receipt_path = $3, updated_at = NOW()
			  WHERE id = $4`, collected, method, receipt, fee.ID)
	return err
}
