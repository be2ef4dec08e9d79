package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// PaymentMode represents how money was received
type PaymentMode string

const (
	ModeCash     PaymentMode = "CASH"
	ModeUPI      PaymentMode = "UPI"
	ModeCheque   PaymentMode = "CHEQUE"
	ModeTransfer PaymentMode = "TRANSFER"
)

// IsValid checks whether the mode is one of the known values
func (m PaymentMode) IsValid() bool {
	switch m {
	case ModeCash, ModeUPI, ModeCheque, ModeTransfer:
		return true
	}
	return false
}

// Payment is an append-only record of money received against an
// invoice. Payments are never edited or deleted; the overpayment check
// happens transactionally against the invoice's pending balance.
type Payment struct {
	shared.AuditedAggregateRoot
	InvoiceID   uuid.UUID
	Amount      valueobject.Money
	PaymentDate time.Time
	Mode        PaymentMode
	Notes       string
}

// NewPayment creates a payment with a positive amount. The overpayment
// guard against the invoice balance is enforced by the repository
// inside the recording transaction, not here.
func NewPayment(invoiceID uuid.UUID, amount valueobject.Money, paymentDate time.Time, mode PaymentMode, notes string, createdBy uuid.UUID) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Unknown payment mode")
	}

	return &Payment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		InvoiceID:            invoiceID,
		Amount:               amount,
		PaymentDate:          shared.DateOf(paymentDate),
		Mode:                 mode,
		Notes:                notes,
	}, nil
}
