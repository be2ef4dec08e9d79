package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
)

func claimedInvoice(t *testing.T, customerID uuid.UUID, from, to time.Time, days int, price string) *billing.Invoice {
	t.Helper()
	subID, paperID := uuid.New(), uuid.New()
	deliveries := make([]billing.Delivery, 0, days)
	for i := 0; i < days; i++ {
		d, err := billing.NewDelivery(customerID, subID, paperID, from.AddDate(0, 0, i), mustMoney(t, price))
		require.NoError(t, err)
		deliveries = append(deliveries, *d)
	}
	inv, err := billing.NewInvoice(customerID, from, to, deliveries, uuid.New())
	require.NoError(t, err)
	return inv
}

func TestInvoiceService_ResolveFromDate_FirstInvoice(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := NewInvoiceService(invoiceRepo, subRepo, nil)

	customerID := uuid.New()
	sub := testSubscription(t, date(2024, 1, 1))
	sub.CustomerID = customerID

	invoiceRepo.On("FindLastByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)
	subRepo.On("FindActiveByCustomer", mock.Anything, customerID).Return(sub, nil)

	from, err := svc.ResolveFromDate(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), from)
}

func TestInvoiceService_ResolveFromDate_AfterLastInvoice(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := NewInvoiceService(invoiceRepo, subRepo, nil)

	customerID := uuid.New()
	last := claimedInvoice(t, customerID, date(2024, 1, 1), date(2024, 1, 10), 10, "5.00")

	invoiceRepo.On("FindLastByCustomer", mock.Anything, customerID).Return(last, nil)

	from, err := svc.ResolveFromDate(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 11), from)
	subRepo.AssertNotCalled(t, "FindActiveByCustomer", mock.Anything, mock.Anything)
}

func TestInvoiceService_ResolveFromDate_NoActiveSubscription(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := NewInvoiceService(invoiceRepo, subRepo, nil)

	customerID := uuid.New()
	invoiceRepo.On("FindLastByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)
	subRepo.On("FindActiveByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)

	_, err := svc.ResolveFromDate(context.Background(), customerID)
	assert.ErrorIs(t, err, billing.ErrNoActiveSubscription)
}

func TestInvoiceService_Generate(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := NewInvoiceService(invoiceRepo, subRepo, nil)

	customerID := uuid.New()
	sub := testSubscription(t, date(2024, 1, 1))
	sub.CustomerID = customerID
	expected := claimedInvoice(t, customerID, date(2024, 1, 1), date(2024, 1, 10), 10, "5.00")

	invoiceRepo.On("FindLastByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)
	subRepo.On("FindActiveByCustomer", mock.Anything, customerID).Return(sub, nil)
	invoiceRepo.On("CreateClaiming", mock.Anything, customerID, date(2024, 1, 1), date(2024, 1, 10), mock.Anything).
		Return(expected, nil)

	inv, err := svc.Generate(context.Background(), customerID, date(2024, 1, 10), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "50.00", inv.TotalAmount.String())
	assert.Len(t, inv.LineItems, 10)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Generate_InvalidRange(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := NewInvoiceService(invoiceRepo, subRepo, nil)

	customerID := uuid.New()
	last := claimedInvoice(t, customerID, date(2024, 1, 1), date(2024, 1, 10), 10, "5.00")
	invoiceRepo.On("FindLastByCustomer", mock.Anything, customerID).Return(last, nil)

	// billed through the 10th; asking for the 5th yields an empty period
	_, err := svc.Generate(context.Background(), customerID, date(2024, 1, 5), uuid.New())
	assert.ErrorIs(t, err, billing.ErrInvalidRange)
	invoiceRepo.AssertNotCalled(t, "CreateClaiming", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Generate_NoBillableDeliveries(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	subRepo := new(MockSubscriptionRepository)
	svc := NewInvoiceService(invoiceRepo, subRepo, nil)

	customerID := uuid.New()
	sub := testSubscription(t, date(2024, 1, 1))
	sub.CustomerID = customerID

	invoiceRepo.On("FindLastByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)
	subRepo.On("FindActiveByCustomer", mock.Anything, customerID).Return(sub, nil)
	invoiceRepo.On("CreateClaiming", mock.Anything, customerID, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, billing.ErrNoBillableDeliveries)

	_, err := svc.Generate(context.Background(), customerID, date(2024, 1, 10), uuid.New())
	assert.ErrorIs(t, err, billing.ErrNoBillableDeliveries)
}

func TestInvoiceService_GetDetail(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	reportRepo := new(MockReportRepository)
	svc := NewInvoiceService(invoiceRepo, nil, reportRepo)

	inv := claimedInvoice(t, uuid.New(), date(2024, 1, 1), date(2024, 1, 20), 20, "5.00")
	balance := &billing.InvoiceBalance{
		InvoiceID: inv.GetID(),
		Total:     mustMoney(t, "100.00"),
		Paid:      mustMoney(t, "80.00"),
		Pending:   mustMoney(t, "20.00"),
	}

	invoiceRepo.On("FindByID", mock.Anything, inv.GetID()).Return(inv, nil)
	reportRepo.On("InvoiceBalance", mock.Anything, inv.GetID()).Return(balance, nil)

	detail, err := svc.GetDetail(context.Background(), inv.GetID())
	require.NoError(t, err)
	assert.Equal(t, "20.00", detail.Balance.Pending.String())
}
