package billing

import (
	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// InvoiceBalance is the paid/pending breakdown of a single invoice
type InvoiceBalance struct {
	InvoiceID uuid.UUID         `json:"invoice_id"`
	Total     valueobject.Money `json:"total"`
	Paid      valueobject.Money `json:"paid"`
	Pending   valueobject.Money `json:"pending"`
}

// CustomerBalance is the aggregate unpaid balance of one customer
// across all of their invoices
type CustomerBalance struct {
	CustomerID   uuid.UUID         `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	Billed       valueobject.Money `json:"billed"`
	Paid         valueobject.Money `json:"paid"`
	Pending      valueobject.Money `json:"pending"`
}

// DailySnapshot summarizes one delivery day for the dashboard
type DailySnapshot struct {
	Delivered      int64             `json:"delivered"`
	NotDelivered   int64             `json:"not_delivered"`
	Holiday        int64             `json:"holiday"`
	DeliveredValue valueobject.Money `json:"delivered_value"`
}

// MonthSnapshot summarizes billing activity within one calendar month
type MonthSnapshot struct {
	InvoiceCount int64             `json:"invoice_count"`
	Billed       valueobject.Money `json:"billed"`
	Paid         valueobject.Money `json:"paid"`
	Pending      valueobject.Money `json:"pending"`
}
