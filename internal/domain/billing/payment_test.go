package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	invoiceID := uuid.New()
	actor := uuid.New()

	p, err := NewPayment(invoiceID, mustMoney(t, "80.00"), date(2024, 2, 1), ModeCash, "february settlement", actor)
	require.NoError(t, err)

	assert.Equal(t, invoiceID, p.InvoiceID)
	assert.Equal(t, "80.00", p.Amount.String())
	assert.Equal(t, date(2024, 2, 1), p.PaymentDate)
	assert.Equal(t, ModeCash, p.Mode)
	require.NotNil(t, p.GetCreatedBy())
	assert.Equal(t, actor, *p.GetCreatedBy())
}

func TestNewPayment_Validation(t *testing.T) {
	_, err := NewPayment(uuid.Nil, mustMoney(t, "10.00"), date(2024, 2, 1), ModeCash, "", uuid.New())
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), mustMoney(t, "0.00"), date(2024, 2, 1), ModeCash, "", uuid.New())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPayment(uuid.New(), mustMoney(t, "-5.00"), date(2024, 2, 1), ModeCash, "", uuid.New())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPayment(uuid.New(), mustMoney(t, "10.00"), date(2024, 2, 1), PaymentMode("BARTER"), "", uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PAYMENT_MODE")
}

func TestPaymentMode_IsValid(t *testing.T) {
	for _, m := range []PaymentMode{ModeCash, ModeUPI, ModeCheque, ModeTransfer} {
		assert.True(t, m.IsValid())
	}
	assert.False(t, PaymentMode("").IsValid())
}
