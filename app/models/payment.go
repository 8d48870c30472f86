package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents one settlement event against a fee. Amount, fee and
// method are immutable once recorded; a correction is a new payment or a
// reversal (deletion), never an edit.
type Payment struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FeeID         string          `json:"fee_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"not null;type:varchar(20)" validate:"required"`
	PaidAt        time.Time       `json:"paid_at" gorm:"not null;index"`
	ReceiptPath   *string         `json:"receipt,omitempty"`

	Fee *Fee `json:"fee,omitempty" gorm:"foreignKey:FeeID;references:ID"`
}

// ValidateSettlement applies the settlement preconditions in order: positive
// amount, fee not already collected, no prior payment against the fee, and
// no overpayment beyond the remaining balance. It returns the first rule
// violated.
func ValidateSettlement(fee *Fee, existing []*Payment, amount decimal.Decimal) SettlementVerdict {
	if !amount.IsPositive() {
		return VerdictInvalidAmount
	}
	if fee.IsCollected {
		return VerdictAlreadyCollected
	}
	if len(existing) > 0 {
		return VerdictDuplicatePayment
	}
	if amount.GreaterThan(fee.RemainingBalance(existing)) {
		return VerdictExceedsBalance
	}
	return VerdictOK
}

// SettlementVerdict is the outcome of the settlement precondition checks.
type SettlementVerdict int

const (
	VerdictOK SettlementVerdict = iota
	VerdictInvalidAmount
	VerdictAlreadyCollected
	VerdictDuplicatePayment
	VerdictExceedsBalance
)
