package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectedFrom(t *testing.T) {
	fee := &Fee{Amount: dec("1000.00")}

	assert.False(t, fee.CollectedFrom(nil))
	assert.False(t, fee.CollectedFrom([]*Payment{{Amount: dec("400.00")}}))
	assert.True(t, fee.CollectedFrom([]*Payment{{Amount: dec("1000.00")}}))
	assert.True(t, fee.CollectedFrom([]*Payment{
		{Amount: dec("600.00")},
		{Amount: dec("500.00")},
	}))

	// Deleting the only payment flips the derivation back.
	payments := []*Payment{{Amount: dec("1000.00")}}
	assert.True(t, fee.CollectedFrom(payments))
	assert.False(t, fee.CollectedFrom(payments[:0]))
}

func TestRemainingBalance(t *testing.T) {
	fee := &Fee{Amount: dec("1000.00")}

	assert.True(t, fee.RemainingBalance(nil).Equal(dec("1000.00")))
	assert.True(t, fee.RemainingBalance([]*Payment{{Amount: dec("250.00")}}).Equal(dec("750.00")))
	// Overpaid history clamps to zero instead of going negative.
	assert.True(t, fee.RemainingBalance([]*Payment{{Amount: dec("1200.00")}}).IsZero())
}

func TestTermMonth(t *testing.T) {
	fee := &Fee{Term: "2025-07"}
	month, ok := fee.TermMonth()
	assert.True(t, ok)
	assert.Equal(t, 2025, month.Year())
	assert.Equal(t, time.July, month.Month())

	_, ok = (&Fee{Term: OneTimeTerm}).TermMonth()
	assert.False(t, ok)

	_, ok = (&Fee{Term: "monthly"}).TermMonth()
	assert.False(t, ok)
}

func TestPastDue(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&Fee{Term: "2025-06"}).PastDue(now))
	assert.False(t, (&Fee{Term: "2025-07"}).PastDue(now))
	assert.False(t, (&Fee{Term: "2025-08"}).PastDue(now))
	assert.False(t, (&Fee{Term: OneTimeTerm}).PastDue(now))
}
