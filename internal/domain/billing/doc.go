// Package billing provides domain models for delivery tracking and
// receivables in a newspaper distribution business.
//
// Key Aggregates:
//   - Delivery: One physical drop of one newspaper to one customer on one
//     date, with the price captured at generation time
//   - Invoice: An immutable bill over a contiguous range of delivered days,
//     with line items freezing the amount of each claimed delivery
//   - Payment: An append-only record of money received against an invoice
//
// Deliveries are unique per (customer, newspaper, date). An invoice claims
// deliveries exactly once; the line item table enforces this with a unique
// constraint on the delivery ID, so concurrent generation for the same
// customer cannot double-bill.
package billing
