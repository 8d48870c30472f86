package database

import (
	"database/sql"

	"github.com/Shinokawa/TentalManager/app/models"
)

const paymentColumns = `id, fee_id, amount, payment_method, paid_at, receipt_path`

func scanPayment(row interface {
	Scan(dest ...interface{}) error
}) (*models.Payment, error) {
	p := &models.Payment{}
	var receipt sql.NullString
	err := row.Scan(&p.ID, &p.FeeID, &p.Amount, &p.PaymentMethod, &p.PaidAt, &receipt)
	if err != nil {
		return nil, err
	}
	if receipt.Valid {
		p.ReceiptPath = &receipt.String
	}
	return p, nil
}

func GetPayments(db *sql.DB, feeID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`
	var args []interface{}
	if feeID != "" {
		query += ` WHERE fee_id = $1`
		args = append(args, feeID)
	}
	query += ` ORDER BY paid_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			continue
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func GetPaymentByID(db *sql.DB, paymentID string) (*models.Payment, error) {
	return scanPayment(db.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, paymentID))
}

func paymentsForFee(tx DBTX, feeID string) ([]*models.Payment, error) {
	rows, err := tx.Query(`SELECT `+paymentColumns+` FROM payments WHERE fee_id = $1 ORDER BY paid_at`, feeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			continue
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// RecordPayment settles a fee in one ordered, atomic procedure: validate
// the amount, lock and load the fee, check the settlement preconditions
// against the existing payment history, persist the payment, re-derive the
// fee's collection state, and recompute the parent contract's aggregates.
// An external reader can never observe the payment without the fee and
// contract updates.
//
// Receipt artifact generation is not part of this transaction; callers
// handle it best-effort after commit.
func RecordPayment(db *sql.DB, payment *models.Payment) error {
	if !payment.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !models.ValidPaymentMethod(payment.PaymentMethod) {
		return ErrInvalidMethod
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fee, err := getFeeForUpdate(tx, payment.FeeID)
	if err != nil {
		return err
	}

	existing, err := paymentsForFee(tx, fee.ID)
	if err != nil {
		return err
	}

	switch models.ValidateSettlement(fee, existing, payment.Amount) {
	case models.VerdictInvalidAmount:
		return ErrInvalidAmount
	case models.VerdictAlreadyCollected:
		return ErrFeeAlreadyCollected
	case models.VerdictDuplicatePayment:
		return ErrDuplicatePayment
	case models.VerdictExceedsBalance:
		return ErrExceedsBalance
	}

	query := `INSERT INTO payments (fee_id, amount, payment_method, paid_at)
			  VALUES ($1, $2, $3, NOW())
			  RETURNING id, paid_at`
	err = tx.QueryRow(query, payment.FeeID, payment.Amount, payment.PaymentMethod).Scan(
		&payment.ID, &payment.PaidAt)
	if err != nil {
		return err
	}

	if err := applyFeeCollection(tx, fee, append(existing, payment)); err != nil {
		return err
	}

	if err := RecomputeContractAggregates(tx, fee.ContractID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeletePayment reverses a settlement: the payment row goes away and the
// fee's collection state plus the contract aggregates are re-derived from
// the remaining payment set, which may flip is_collected back to false.
func DeletePayment(db *sql.DB, paymentID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	payment, err := scanPayment(tx.QueryRow(
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, paymentID))
	if err != nil {
		return err
	}

	fee, err := getFeeForUpdate(tx, payment.FeeID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM payments WHERE id = $1`, paymentID); err != nil {
		return err
	}

	remaining, err := paymentsForFee(tx, fee.ID)
	if err != nil {
		return err
	}

	if err := applyFeeCollection(tx, fee, remaining); err != nil {
		return err
	}

	if err := RecomputeContractAggregates(tx, fee.ContractID); err != nil {
		return err
	}

	return tx.Commit()
}

// SetPaymentReceipt stores the path of a rendered receipt artifact on the
// payment and mirrors it onto the fee it collected, since the fee's stamp
// cannot be taken at settlement time: the artifact is only rendered after
// the settlement commits. Runs outside the settlement transaction because
// artifact generation is best-effort.
func SetPaymentReceipt(db *sql.DB, paymentID, path string) error {
	if _, err := db.Exec(`UPDATE payments SET receipt_path = $1 WHERE id = $2`, path, paymentID); err != nil {
		return err
	}
	_, err := db.Exec(`UPDATE fees SET receipt_path = $1, updated_at = NOW()
			  WHERE id = (SELECT fee_id FROM payments WHERE id = $2) AND is_collected = true`,
		path, paymentID)
	return err
}
