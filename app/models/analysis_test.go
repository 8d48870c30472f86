package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCollectionRate(t *testing.T) {
	assert.True(t, CollectionRate(dec("500.00"), dec("1000.00")).Equal(dec("50")))
	assert.True(t, CollectionRate(dec("1000.00"), dec("1000.00")).Equal(dec("100")))

	// Zero receivable yields zero, not a division error.
	assert.True(t, CollectionRate(dec("123.45"), decimal.Zero).IsZero())
	assert.True(t, CollectionRate(decimal.Zero, decimal.Zero).IsZero())
}

func TestRentalRate(t *testing.T) {
	assert.True(t, RentalRate(dec("75.00"), dec("300.00")).Equal(dec("25")))

	// Empty portfolio yields zero rates.
	assert.True(t, RentalRate(decimal.Zero, decimal.Zero).IsZero())
}

func TestOccupancyFor(t *testing.T) {
	p := &Property{RentalStatus: StatusAvailable}
	assert.Equal(t, StatusRented, p.OccupancyFor(1))
	assert.Equal(t, StatusRented, p.OccupancyFor(3))
	assert.Equal(t, StatusAvailable, p.OccupancyFor(0))

	// Maintenance is operator-owned and sticks regardless of associations.
	m := &Property{RentalStatus: StatusMaintenance}
	assert.Equal(t, StatusMaintenance, m.OccupancyFor(0))
	assert.Equal(t, StatusMaintenance, m.OccupancyFor(2))
}
