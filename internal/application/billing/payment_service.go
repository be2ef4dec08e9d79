package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
	"github.com/newsagent/backend/internal/infrastructure/telemetry"
)

// PaymentService records money received against invoices
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	reportRepo  billing.ReportRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo billing.PaymentRepository, reportRepo billing.ReportRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, reportRepo: reportRepo}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	InvoiceID   uuid.UUID
	Amount      valueobject.Money
	PaymentDate time.Time
	Mode        billing.PaymentMode
	Notes       string
	Actor       uuid.UUID
}

// RecordPayment appends a payment to an invoice. The overpayment check
// runs inside the same transaction as the insert, holding a lock on the
// invoice row, so two concurrent payments cannot jointly exceed the
// pending balance.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*billing.Payment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record")
	defer span.End()
	telemetry.SetAttributes(span,
		"payment.invoice_id", req.InvoiceID.String(),
		"payment.amount", req.Amount.String(),
		"payment.mode", string(req.Mode),
	)

	payment, err := billing.NewPayment(req.InvoiceID, req.Amount, req.PaymentDate, req.Mode, req.Notes, req.Actor)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.paymentRepo.CreateGuarded(ctx, payment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetOK(span)
	return payment, nil
}

// ListForInvoice lists an invoice's payments with the resulting balance
func (s *PaymentService) ListForInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, *billing.InvoiceBalance, error) {
	payments, err := s.paymentRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	balance, err := s.reportRepo.InvoiceBalance(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return payments, balance, nil
}
