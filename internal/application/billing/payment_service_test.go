package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/newsagent/backend/internal/domain/billing"
)

func TestPaymentService_RecordPayment(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := NewPaymentService(paymentRepo, nil)

	invoiceID := uuid.New()
	paymentRepo.On("CreateGuarded", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	p, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID:   invoiceID,
		Amount:      mustMoney(t, "80.00"),
		PaymentDate: date(2024, 2, 1),
		Mode:        billing.ModeCash,
		Actor:       uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, invoiceID, p.InvoiceID)
	assert.Equal(t, "80.00", p.Amount.String())
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_RecordPayment_InvalidAmount(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := NewPaymentService(paymentRepo, nil)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID:   uuid.New(),
		Amount:      mustMoney(t, "0.00"),
		PaymentDate: date(2024, 2, 1),
		Mode:        billing.ModeCash,
	})
	assert.ErrorIs(t, err, billing.ErrInvalidAmount)
	paymentRepo.AssertNotCalled(t, "CreateGuarded", mock.Anything, mock.Anything)
}

func TestPaymentService_RecordPayment_Overpayment(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	svc := NewPaymentService(paymentRepo, nil)

	paymentRepo.On("CreateGuarded", mock.Anything, mock.Anything).Return(billing.ErrOverpayment)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID:   uuid.New(),
		Amount:      mustMoney(t, "25.00"),
		PaymentDate: date(2024, 2, 1),
		Mode:        billing.ModeUPI,
	})
	assert.ErrorIs(t, err, billing.ErrOverpayment)
}

func TestPaymentService_ListForInvoice(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	reportRepo := new(MockReportRepository)
	svc := NewPaymentService(paymentRepo, reportRepo)

	invoiceID := uuid.New()
	p1, err := billing.NewPayment(invoiceID, mustMoney(t, "80.00"), date(2024, 2, 1), billing.ModeCash, "", uuid.New())
	require.NoError(t, err)

	paymentRepo.On("FindByInvoice", mock.Anything, invoiceID).Return([]billing.Payment{*p1}, nil)
	reportRepo.On("InvoiceBalance", mock.Anything, invoiceID).Return(&billing.InvoiceBalance{
		InvoiceID: invoiceID,
		Total:     mustMoney(t, "100.00"),
		Paid:      mustMoney(t, "80.00"),
		Pending:   mustMoney(t, "20.00"),
	}, nil)

	payments, balance, err := svc.ListForInvoice(context.Background(), invoiceID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, "20.00", balance.Pending.String())
}
