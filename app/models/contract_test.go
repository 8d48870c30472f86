package models

import (
	"testing"
	"time"

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

func TestContractAggregates(t *testing.T) {
	fees := []*Fee{
		{Amount: dec("5000.00"), IsCollected: false, OverdueStatus: OverdueOnTime},
		{Amount: dec("10000.00"), IsCollected: true, OverdueStatus: OverdueOnTime},
		{Amount: dec("300.00"), IsCollected: false, OverdueStatus: OverdueOverdue},
		{Amount: dec("450.00"), IsCollected: true, OverdueStatus: OverdueOverdue},
	}

	agg := ContractAggregates(fees)

	// Receivable covers the two uncollected fees.
	assert.True(t, agg.Receivable.Equal(dec("5300.00")), "receivable = %s", agg.Receivable)
	// Outstanding is the union of uncollected and overdue.
	assert.True(t, agg.Outstanding.Equal(dec("5750.00")), "outstanding = %s", agg.Outstanding)
	// Overdue counts overdue fees whether collected or not.
	assert.True(t, agg.Overdue.Equal(dec("750.00")), "overdue = %s", agg.Overdue)
}

func TestContractAggregatesEmpty(t *testing.T) {
	agg := ContractAggregates(nil)
	assert.True(t, agg.Receivable.IsZero())
	assert.True(t, agg.Outstanding.IsZero())
	assert.True(t, agg.Overdue.IsZero())
}

func TestContractAggregatesIdempotent(t *testing.T) {
	fees := []*Fee{
		{Amount: dec("1200.50"), IsCollected: false, OverdueStatus: OverdueOverdue},
		{Amount: dec("99.99"), IsCollected: true, OverdueStatus: OverdueOnTime},
	}

	first := ContractAggregates(fees)
	second := ContractAggregates(fees)

	assert.True(t, first.Receivable.Equal(second.Receivable))
	assert.True(t, first.Outstanding.Equal(second.Outstanding))
	assert.True(t, first.Overdue.Equal(second.Overdue))
}

func TestInitialFees(t *testing.T) {
	contract := &Contract{
		ID:            "c1",
		StartDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent:   dec("5000.00"),
		DepositAmount: dec("10000.00"),
		ManagementFee: dec("100.00"),
	}

	fees := contract.InitialFees()
	require.Len(t, fees, 3)

	byCategory := map[FeeCategory]*Fee{}
	for _, f := range fees {
		byCategory[f.Category] = f
		assert.False(t, f.IsCollected)
		assert.Equal(t, OverdueOnTime, f.OverdueStatus)
		assert.Equal(t, "c1", f.ContractID)
	}

	rent := byCategory[CategoryRent]
	require.NotNil(t, rent)
	assert.True(t, rent.Amount.Equal(dec("5000.00")))
	assert.Equal(t, "2025-03", rent.Term)

	deposit := byCategory[CategoryDeposit]
	require.NotNil(t, deposit)
	assert.True(t, deposit.Amount.Equal(dec("10000.00")))
	assert.Equal(t, OneTimeTerm, deposit.Term)

	mgmt := byCategory[CategoryManagementFee]
	require.NotNil(t, mgmt)
	assert.True(t, mgmt.Amount.Equal(dec("100.00")))
	assert.Equal(t, "2025-03", mgmt.Term)
}

func TestInitialFeesWithoutDepositOrManagement(t *testing.T) {
	contract := &Contract{
		ID:          "c2",
		StartDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		MonthlyRent: dec("3200.00"),
	}

	fees := contract.InitialFees()
	require.Len(t, fees, 1)
	assert.Equal(t, CategoryRent, fees[0].Category)
	assert.Equal(t, "2025-01", fees[0].Term)
}
