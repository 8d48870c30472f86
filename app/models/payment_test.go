package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSettlement(t *testing.T) {
	fee := &Fee{Amount: dec("1000.00")}

	assert.Equal(t, VerdictInvalidAmount, ValidateSettlement(fee, nil, dec("0")))
	assert.Equal(t, VerdictInvalidAmount, ValidateSettlement(fee, nil, dec("-50.00")))

	assert.Equal(t, VerdictExceedsBalance, ValidateSettlement(fee, nil, dec("1500.00")))

	assert.Equal(t, VerdictOK, ValidateSettlement(fee, nil, dec("1000.00")))
	assert.Equal(t, VerdictOK, ValidateSettlement(fee, nil, dec("400.00")))
}

func TestValidateSettlementDuplicate(t *testing.T) {
	// A second payment is rejected even when the fee is not fully collected.
	fee := &Fee{Amount: dec("1000.00")}
	existing := []*Payment{{Amount: dec("300.00")}}

	assert.Equal(t, VerdictDuplicatePayment, ValidateSettlement(fee, existing, dec("700.00")))
}

func TestValidateSettlementAlreadyCollected(t *testing.T) {
	fee := &Fee{Amount: dec("1000.00"), IsCollected: true}

	assert.Equal(t, VerdictAlreadyCollected, ValidateSettlement(fee, nil, dec("10.00")))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(MethodWechat))
	assert.True(t, ValidPaymentMethod(MethodBankTransfer))
	assert.False(t, ValidPaymentMethod(PaymentMethod("cash")))
	assert.False(t, ValidPaymentMethod(PaymentMethod("")))
}
