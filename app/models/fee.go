package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee represents one billable line item under a contract. IsCollected is
// derived from the fee's payment history and is never writable directly.
type Fee struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	ContractID    string          `json:"contract_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Category      FeeCategory     `json:"category" gorm:"not null;type:varchar(50)" validate:"required"`
	Amount        decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Term          string          `json:"term" gorm:"not null;type:varchar(50)"`
	IsCollected   bool            `json:"is_collected" gorm:"default:false;index"`
	OverdueStatus OverdueStatus   `json:"overdue_status" gorm:"not null;default:'on_time';index;type:varchar(20)"`
	PaymentMethod *PaymentMethod  `json:"payment_method,omitempty" gorm:"type:varchar(20)"`
	ReceiptPath   *string         `json:"receipt,omitempty"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Contract *Contract  `json:"contract,omitempty" gorm:"foreignKey:ContractID;references:ID"`
	Payments []*Payment `json:"payments,omitempty" gorm:"foreignKey:FeeID;references:ID"`
}

// PaidTotal sums the given payment amounts.
func PaidTotal(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// CollectedFrom derives the collection flag from a payment set: a fee is
// collected once its payments meet or exceed its amount. Holds after payment
// deletion as well, which may flip the flag back to false.
func (f *Fee) CollectedFrom(payments []*Payment) bool {
	return PaidTotal(payments).GreaterThanOrEqual(f.Amount)
}

// RemainingBalance returns the amount still owed given a payment set.
// Never negative.
func (f *Fee) RemainingBalance(payments []*Payment) decimal.Decimal {
	remaining := f.Amount.Sub(PaidTotal(payments))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// TermMonth parses a monthly term label like "2025-01". ok is false for
// one-time terms and malformed labels.
func (f *Fee) TermMonth() (time.Time, bool) {
	if f.Term == OneTimeTerm {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01", f.Term)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PastDue reports whether the fee's term month lies strictly before the
// month containing now. One-time fees never become past due by term.
func (f *Fee) PastDue(now time.Time) bool {
	month, ok := f.TermMonth()
	if !ok {
		return false
	}
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return month.Before(current)
}
