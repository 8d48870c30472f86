package services

import (
	"testing"
	"time"

	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCoversMonth(t *testing.T) {
	contract := &models.Contract{
		StartDate: date(2025, time.March, 15),
		EndDate:   date(2026, time.March, 14),
	}

	assert.True(t, coversMonth(contract, date(2025, time.March, 1)))
	assert.True(t, coversMonth(contract, date(2025, time.August, 20)))
	// End month still counts even though the lease ends mid-month.
	assert.True(t, coversMonth(contract, date(2026, time.March, 31)))

	assert.False(t, coversMonth(contract, date(2025, time.February, 28)))
	assert.False(t, coversMonth(contract, date(2026, time.April, 1)))
}

func TestHasRentFeeForTerm(t *testing.T) {
	fees := []*models.Fee{
		{Category: models.CategoryDeposit, Term: models.OneTimeTerm, Amount: decimal.NewFromInt(2000)},
		{Category: models.CategoryRent, Term: "2025-03", Amount: decimal.NewFromInt(1000)},
		{Category: models.CategoryManagementFee, Term: "2025-04", Amount: decimal.NewFromInt(150)},
	}

	assert.True(t, hasRentFeeForTerm(fees, "2025-03"))
	assert.False(t, hasRentFeeForTerm(fees, "2025-04"))
	assert.False(t, hasRentFeeForTerm(nil, "2025-03"))
}
