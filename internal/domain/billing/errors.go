package billing

import "github.com/newsagent/backend/internal/domain/shared"

// Business rule violations surfaced to callers as stable error codes.
var (
	// ErrFutureDateNotAllowed is returned when delivery generation is
	// requested for a date after today and the future_date_allowed
	// configuration flag is off.
	ErrFutureDateNotAllowed = shared.NewDomainError(
		"FUTURE_DATE_NOT_ALLOWED",
		"Deliveries cannot be generated for a future date",
	)

	// ErrNoActiveSubscription is returned when invoice generation is
	// requested for a customer without an active subscription.
	ErrNoActiveSubscription = shared.NewDomainError(
		"NO_ACTIVE_SUBSCRIPTION",
		"Customer has no active subscription",
	)

	// ErrInvalidRange is returned when the resolved billing period is
	// empty, meaning the customer is already billed up to the requested
	// end date.
	ErrInvalidRange = shared.NewDomainError(
		"INVALID_RANGE",
		"Billing period start is after its end; customer is already billed up to this date",
	)

	// ErrNoBillableDeliveries is returned when the billing period
	// contains no delivered, unbilled deliveries.
	ErrNoBillableDeliveries = shared.NewDomainError(
		"NO_BILLABLE_DELIVERIES",
		"No billable deliveries in the requested period",
	)

	// ErrDeliveryAlreadyBilled is returned when a delivery claimed by an
	// invoice would be claimed again.
	ErrDeliveryAlreadyBilled = shared.NewDomainError(
		"DELIVERY_ALREADY_BILLED",
		"Delivery is already claimed by an invoice",
	)

	// ErrInvalidAmount is returned for zero or negative payment amounts.
	ErrInvalidAmount = shared.NewDomainError(
		"INVALID_AMOUNT",
		"Payment amount must be positive",
	)

	// ErrOverpayment is returned when a payment exceeds the pending
	// balance of its invoice.
	ErrOverpayment = shared.NewDomainError(
		"OVERPAYMENT",
		"Payment amount exceeds the pending balance of the invoice",
	)
)
