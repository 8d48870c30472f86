package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var feeColumnNames = []string{
	"id", "contract_id", "category", "amount", "term", "is_collected",
	"overdue_status", "payment_method", "receipt_path", "created_at", "updated_at",
}

var paymentColumnNames = []string{
	"id", "fee_id", "amount", "payment_method", "paid_at", "receipt_path",
}

func feeRow(id, contractID, amount string, collected bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(feeColumnNames).
		AddRow(id, contractID, "rent", amount, "2025-01", collected, "on_time", nil, nil, now, now)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Rejected before the store is touched: no Begin is expected.
	err = RecordPayment(db, &models.Payment{
		FeeID:         "fee-1",
		Amount:        dec("0"),
		PaymentMethod: models.MethodWechat,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	err = RecordPayment(db, &models.Payment{
		FeeID:         "fee-1",
		Amount:        dec("-10.00"),
		PaymentMethod: models.MethodWechat,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRecordPaymentRejectsUnknownMethod(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = RecordPayment(db, &models.Payment{
		FeeID:         "fee-1",
		Amount:        dec("100.00"),
		PaymentMethod: models.PaymentMethod("cash"),
	})
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM fees WHERE id = \$1 FOR UPDATE`).
		WithArgs("fee-1").
		WillReturnRows(feeRow("fee-1", "contract-1", "1000.00", false))
	mock.ExpectQuery(`SELECT (.+) FROM payments WHERE fee_id = \$1`).
		WithArgs("fee-1").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames))
	mock.ExpectRollback()

	err = RecordPayment(db, &models.Payment{
		FeeID:         "fee-1",
		Amount:        dec("1500.00"),
		PaymentMethod: models.MethodPOS,
	})
	assert.ErrorIs(t, err, ErrExceedsBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPaymentRejectsDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM fees WHERE id = \$1 FOR UPDATE`).
		WithArgs("fee-1").
		WillReturnRows(feeRow("fee-1", "contract-1", "1000.00", false))
	mock.ExpectQuery(`SELECT (.+) FROM payments WHERE fee_id = \$1`).
		WithArgs("fee-1").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames).
			AddRow("pay-1", "fee-1", "300.00", "wechat", time.Now(), nil))
	mock.ExpectRollback()

	// Partial re-payment against a fee with history is rejected even though
	// the fee is not yet fully collected.
	err = RecordPayment(db, &models.Payment{
		FeeID:         "fee-1",
		Amount:        dec("700.00"),
		PaymentMethod: models.MethodWechat,
	})
	assert.ErrorIs(t, err, ErrDuplicatePayment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPaymentRejectsCollectedFee(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM fees WHERE id = \$1 FOR UPDATE`).
		WithArgs("fee-1").
		WillReturnRows(feeRow("fee-1", "contract-1", "1000.00", true))
	mock.ExpectQuery(`SELECT (.+) FROM payments WHERE fee_id = \$1`).
		WithArgs("fee-1").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames))
	mock.ExpectRollback()

	err = RecordPayment(db, &models.Payment{
		FeeID:         "fee-1",
		Amount:        dec("10.00"),
		PaymentMethod: models.MethodWechat,
	})
	assert.ErrorIs(t, err, ErrFeeAlreadyCollected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPaymentSettlesFeeAndContract(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM fees WHERE id = \$1 FOR UPDATE`).
		WithArgs("fee-1").
		WillReturnRows(feeRow("fee-1", "contract-1", "1000.00", false))
	mock.ExpectQuery(`SELECT (.+) FROM payments WHERE fee_id = \$1`).
		WithArgs("fee-1").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames))
	mock.ExpectQuery(`INSERT INTO payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "paid_at"}).AddRow("pay-1", now))
	// Fully paid, so the fee is stamped collected with this payment's method.
	mock.ExpectExec(`UPDATE fees SET is_collected`).
		WithArgs(true, "wechat", nil, "fee-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Authoritative aggregate recompute over the contract's full fee set.
	mock.ExpectQuery(`SELECT (.+) FROM fees WHERE contract_id = \$1`).
		WithArgs("contract-1").
		WillReturnRows(feeRow("fee-1", "contract-1", "1000.00", true))
	mock.ExpectExec(`UPDATE contracts SET current_receivable`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment := &models.Payment{
		FeeID:         "fee-1",
		Amount:        dec("1000.00"),
		PaymentMethod: models.MethodWechat,
	}
	err = RecordPayment(db, payment)
	require.NoError(t, err)
	assert.Equal(t, "pay-1", payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePaymentRevertsCollection(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM payments WHERE id = \$1`).
		WithArgs("pay-1").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames).
			AddRow("pay-1", "fee-1", "1000.00", "wechat", now, nil))
	mock.ExpectQuery(`SELECT (.+) FROM fees WHERE id = \$1 FOR UPDATE`).
		WithArgs("fee-1").
		WillReturnRows(feeRow("fee-1", "contract-1", "1000.00", true))
	mock.ExpectExec(`DELETE FROM payments WHERE id = \$1`).
		WithArgs("pay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM payments WHERE fee_id = \$1`).
		WithArgs("fee-1").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames))
	// No payments remain, so the collection flag flips back and the stamp
	// is cleared.
	mock.ExpectExec(`UPDATE fees SET is_collected`).
		WithArgs(false, nil, nil, "fee-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM fees WHERE contract_id = \$1`).
		WithArgs("contract-1").
		WillReturnRows(feeRow("fee-1", "contract-1", "1000.00", false))
	mock.ExpectExec(`UPDATE contracts SET current_receivable`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = DeletePayment(db, "pay-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPaymentReceiptStampsFee(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE payments SET receipt_path = \$1 WHERE id = \$2`).
		WithArgs("/receipts/pay-1.html", "pay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The artifact path is mirrored onto the fee the payment collected; a
	// fee no longer collected (the payment was reversed) keeps NULL.
	mock.ExpectExec(`(?s)UPDATE fees SET receipt_path = \$1.*AND is_collected = true`).
		WithArgs("/receipts/pay-1.html", "pay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = SetPaymentReceipt(db, "pay-1", "/receipts/pay-1.html")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
