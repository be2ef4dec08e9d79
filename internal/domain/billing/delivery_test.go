package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newTestDelivery(t *testing.T, price string) *Delivery {
	t.Helper()
	d, err := NewDelivery(uuid.New(), uuid.New(), uuid.New(), date(2026, 3, 5), mustMoney(t, price))
	require.NoError(t, err)
	return d
}

func TestNewDelivery(t *testing.T) {
	customerID := uuid.New()
	d, err := NewDelivery(customerID, uuid.New(), uuid.New(), time.Date(2026, 3, 5, 17, 45, 0, 0, time.UTC), mustMoney(t, "5.50"))
	require.NoError(t, err)

	assert.Equal(t, customerID, d.CustomerID)
	assert.Equal(t, date(2026, 3, 5), d.Date)
	assert.Equal(t, StatusDelivered, d.Status)
	assert.Equal(t, "5.50", d.Price.String())
	assert.False(t, d.Billed)
}

func TestNewDelivery_Validation(t *testing.T) {
	price := mustMoney(t, "5.50")

	_, err := NewDelivery(uuid.Nil, uuid.New(), uuid.New(), date(2026, 3, 5), price)
	assert.Error(t, err)

	_, err = NewDelivery(uuid.New(), uuid.Nil, uuid.New(), date(2026, 3, 5), price)
	assert.Error(t, err)

	_, err = NewDelivery(uuid.New(), uuid.New(), uuid.New(), date(2026, 3, 5), mustMoney(t, "0.00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PRICE")
}

func TestDelivery_SetStatus(t *testing.T) {
	d := newTestDelivery(t, "5.50")

	require.NoError(t, d.SetStatus(StatusHoliday))
	assert.Equal(t, StatusHoliday, d.Status)

	require.NoError(t, d.SetStatus(StatusNotDelivered))
	require.NoError(t, d.SetStatus(StatusDelivered))
	assert.Equal(t, StatusDelivered, d.Status)

	err := d.SetStatus(DeliveryStatus("LOST"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_STATUS")
}

func TestDelivery_SetStatusAfterBilling(t *testing.T) {
	d := newTestDelivery(t, "5.50")
	d.Billed = true

	// the status stays editable; the billed price is frozen in the
	// invoice line item, not on the delivery row
	require.NoError(t, d.SetStatus(StatusNotDelivered))
	assert.Equal(t, StatusNotDelivered, d.Status)
}

func TestDelivery_IsBillable(t *testing.T) {
	d := newTestDelivery(t, "5.50")
	assert.True(t, d.IsBillable())

	require.NoError(t, d.SetStatus(StatusHoliday))
	assert.False(t, d.IsBillable())

	require.NoError(t, d.SetStatus(StatusDelivered))
	d.Billed = true
	assert.False(t, d.IsBillable())
}
