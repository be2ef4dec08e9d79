package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/subscriber"
	"github.com/newsagent/backend/internal/infrastructure/telemetry"
)

// InvoiceService converts delivered-but-unbilled deliveries into
// immutable invoices
type InvoiceService struct {
	invoiceRepo      billing.InvoiceRepository
	subscriptionRepo subscriber.SubscriptionRepository
	reportRepo       billing.ReportRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	subscriptionRepo subscriber.SubscriptionRepository,
	reportRepo billing.ReportRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:      invoiceRepo,
		subscriptionRepo: subscriptionRepo,
		reportRepo:       reportRepo,
	}
}

// InvoiceDetail is an invoice together with its payment state
type InvoiceDetail struct {
	Invoice *billing.Invoice
	Balance *billing.InvoiceBalance
}

// ResolveFromDate determines where the next invoice for the customer
// starts: the day after the last invoice's period, or the active
// subscription's start date when no invoice exists yet. Deriving the
// start from the latest prior invoice keeps periods gapless and
// non-overlapping as long as invoices are generated in order.
func (s *InvoiceService) ResolveFromDate(ctx context.Context, customerID uuid.UUID) (time.Time, error) {
	last, err := s.invoiceRepo.FindLastByCustomer(ctx, customerID)
	if err == nil {
		return shared.NextDay(last.ToDate), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return time.Time{}, fmt.Errorf("failed to load last invoice: %w", err)
	}

	sub, err := s.subscriptionRepo.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return time.Time{}, billing.ErrNoActiveSubscription
		}
		return time.Time{}, fmt.Errorf("failed to load active subscription: %w", err)
	}
	return sub.StartDate, nil
}

// Generate creates an invoice for the customer covering the resolved
// period through toDate. The claim itself runs in one transaction: a
// concurrent call for the same customer blocks on the delivery row
// locks, then finds nothing left to bill.
func (s *InvoiceService) Generate(ctx context.Context, customerID uuid.UUID, toDate time.Time, actor uuid.UUID) (*billing.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "generate")
	defer span.End()
	telemetry.SetAttributes(span, "invoice.customer_id", customerID.String())

	fromDate, err := s.ResolveFromDate(ctx, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	to := shared.DateOf(toDate)
	if fromDate.After(to) {
		telemetry.RecordError(span, billing.ErrInvalidRange)
		return nil, billing.ErrInvalidRange
	}

	invoice, err := s.invoiceRepo.CreateClaiming(ctx, customerID, fromDate, to,
		func(deliveries []billing.Delivery) (*billing.Invoice, error) {
			return billing.NewInvoice(customerID, fromDate, to, deliveries, actor)
		})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		"invoice.id", invoice.GetID().String(),
		"invoice.total", invoice.TotalAmount.String(),
		"invoice.line_items", len(invoice.LineItems),
	)
	telemetry.SetOK(span)
	return invoice, nil
}

// GetDetail retrieves an invoice with its line items and balance
func (s *InvoiceService) GetDetail(ctx context.Context, invoiceID uuid.UUID) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	balance, err := s.reportRepo.InvoiceBalance(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return &InvoiceDetail{Invoice: invoice, Balance: balance}, nil
}

// List lists invoices with pagination
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[billing.Invoice], error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, err
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.PageSize), nil
}

// ListByCustomer lists a customer's invoices, newest period first
func (s *InvoiceService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	return s.invoiceRepo.FindByCustomer(ctx, customerID, filter)
}
