package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract represents a lease agreement between one tenant and one or more
// properties. CurrentReceivable, CurrentOutstanding and TotalOverdue are
// derived caches over the contract's fee set; ContractAggregates is the one
// authoritative way to compute them.
type Contract struct {
	ID                 string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	TenantID           string          `json:"tenant_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StartDate          time.Time       `json:"start_date" gorm:"not null;type:date" validate:"required"`
	EndDate            time.Time       `json:"end_date" gorm:"not null;type:date" validate:"required"`
	MonthlyRent        decimal.Decimal `json:"monthly_rent" gorm:"not null;type:numeric(12,2)"`
	YearlyRent         decimal.Decimal `json:"yearly_rent" gorm:"type:numeric(12,2)"`
	TotalRent          decimal.Decimal `json:"total_rent" gorm:"type:numeric(12,2)"`
	RentalArea         decimal.Decimal `json:"rental_area" gorm:"type:numeric(12,2)"`
	RentalUnitPrice    decimal.Decimal `json:"rental_unit_price" gorm:"type:numeric(12,2)"`
	RentCollectionTime time.Time       `json:"rent_collection_time" gorm:"type:date"`
	DepositAmount      decimal.Decimal `json:"deposit_amount" gorm:"type:numeric(12,2)"`
	ManagementFee      decimal.Decimal `json:"management_fee" gorm:"type:numeric(12,2)"`
	Status             ContractStatus  `json:"status" gorm:"not null;default:'active';type:varchar(20)"`
	CurrentReceivable  decimal.Decimal `json:"current_receivable" gorm:"type:numeric(12,2);default:0"`
	CurrentOutstanding decimal.Decimal `json:"current_outstanding" gorm:"type:numeric(12,2);default:0"`
	TotalOverdue       decimal.Decimal `json:"total_overdue" gorm:"type:numeric(12,2);default:0"`
	CreatedAt          time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Tenant     *Tenant     `json:"tenant,omitempty" gorm:"foreignKey:TenantID;references:ID"`
	Properties []*Property `json:"properties,omitempty" gorm:"many2many:contract_properties;"`
	Fees       []*Fee      `json:"fees,omitempty" gorm:"foreignKey:ContractID;references:ID"`
}

// IsActive reports whether the contract still binds its properties.
func (c *Contract) IsActive() bool {
	return c.Status == ContractActive
}

// FirstTerm returns the billing term label of the contract's first month,
// e.g. "2025-01".
func (c *Contract) FirstTerm() string {
	return c.StartDate.Format("2006-01")
}

// Aggregates holds the three derived contract figures.
type Aggregates struct {
	Receivable  decimal.Decimal `json:"current_receivable"`
	Outstanding decimal.Decimal `json:"current_outstanding"`
	Overdue     decimal.Decimal `json:"total_overdue"`
}

// ContractAggregates recomputes the derived contract figures from the full
// fee set. Receivable sums uncollected fees, overdue sums overdue fees
// regardless of collection, and outstanding is their union.
func ContractAggregates(fees []*Fee) Aggregates {
	agg := Aggregates{
		Receivable:  decimal.Zero,
		Outstanding: decimal.Zero,
		Overdue:     decimal.Zero,
	}
	for _, fee := range fees {
		overdue := fee.OverdueStatus == OverdueOverdue
		if !fee.IsCollected {
			agg.Receivable = agg.Receivable.Add(fee.Amount)
		}
		if !fee.IsCollected || overdue {
			agg.Outstanding = agg.Outstanding.Add(fee.Amount)
		}
		if overdue {
			agg.Overdue = agg.Overdue.Add(fee.Amount)
		}
	}
	return agg
}

// InitialFees materializes the one-time fee set generated when a contract is
// signed: the first month's rent, the deposit when one is agreed, and the
// management charge when one is agreed. Runs on creation only, never on
// update; recurring per-period rent fees are appended by the billing
// rollover.
func (c *Contract) InitialFees() []*Fee {
	fees := []*Fee{
		{
			ContractID:    c.ID,
			Category:      CategoryRent,
			Amount:        c.MonthlyRent,
			Term:          c.FirstTerm(),
			IsCollected:   false,
			OverdueStatus: OverdueOnTime,
		},
	}
	if c.DepositAmount.IsPositive() {
		fees = append(fees, &Fee{
			ContractID:    c.ID,
			Category:      CategoryDeposit,
			Amount:        c.DepositAmount,
			Term:          OneTimeTerm,
			IsCollected:   false,
			OverdueStatus: OverdueOnTime,
		})
	}
	if c.ManagementFee.IsPositive() {
		fees = append(fees, &Fee{
			ContractID:    c.ID,
			Category:      CategoryManagementFee,
			Amount:        c.ManagementFee,
			Term:          c.FirstTerm(),
			IsCollected:   false,
			OverdueStatus: OverdueOnTime,
		})
	}
	return fees
}
