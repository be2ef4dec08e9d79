package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// DeliveryModel is the persistence model for the Delivery domain entity.
// The unique index on (customer_id, date) makes delivery generation
// idempotent at the database level.
type DeliveryModel struct {
	BaseModel
	CustomerID     uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_delivery_customer_date,priority:1"`
	SubscriptionID uuid.UUID              `gorm:"type:uuid;not null;index"`
	NewsPaperID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Date           time.Time              `gorm:"type:date;not null;uniqueIndex:idx_delivery_customer_date,priority:2;index"`
	Status         billing.DeliveryStatus `gorm:"type:varchar(20);not null;default:'DELIVERED'"`
	Price          valueobject.Money      `gorm:"type:decimal(12,2);not null"`
	Billed         bool                   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// ToDomain converts the persistence model to a domain Delivery entity.
func (m *DeliveryModel) ToDomain() *billing.Delivery {
	return &billing.Delivery{
		BaseEntity:     m.BaseModel.ToDomain(),
		CustomerID:     m.CustomerID,
		SubscriptionID: m.SubscriptionID,
		NewsPaperID:    m.NewsPaperID,
		Date:           m.Date,
		Status:         m.Status,
		Price:          m.Price,
		Billed:         m.Billed,
	}
}

// FromDomain populates the persistence model from a domain Delivery entity.
func (m *DeliveryModel) FromDomain(d *billing.Delivery) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.CustomerID = d.CustomerID
	m.SubscriptionID = d.SubscriptionID
	m.NewsPaperID = d.NewsPaperID
	m.Date = d.Date
	m.Status = d.Status
	m.Price = d.Price
	m.Billed = d.Billed
}

// DeliveryModelFromDomain creates a new persistence model from a domain Delivery entity.
func DeliveryModelFromDomain(d *billing.Delivery) *DeliveryModel {
	m := &DeliveryModel{}
	m.FromDomain(d)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate.
type InvoiceModel struct {
	AuditedAggregateModel
	CustomerID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	FromDate    time.Time              `gorm:"type:date;not null"`
	ToDate      time.Time              `gorm:"type:date;not null;index"`
	TotalAmount valueobject.Money      `gorm:"type:decimal(12,2);not null"`
	IsLocked    bool                   `gorm:"not null;default:true"`
	LineItems   []InvoiceLineItemModel `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice aggregate.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	items := make([]billing.InvoiceLineItem, len(m.LineItems))
	for i, item := range m.LineItems {
		items[i] = *item.ToDomain()
	}
	return &billing.Invoice{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		CustomerID:           m.CustomerID,
		FromDate:             m.FromDate,
		ToDate:               m.ToDate,
		TotalAmount:          m.TotalAmount,
		IsLocked:             m.IsLocked,
		LineItems:            items,
	}
}

// FromDomain populates the persistence model from a domain Invoice aggregate.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAuditedAggregateRoot(inv.AuditedAggregateRoot)
	m.CustomerID = inv.CustomerID
	m.FromDate = inv.FromDate
	m.ToDate = inv.ToDate
	m.TotalAmount = inv.TotalAmount
	m.IsLocked = inv.IsLocked
	m.LineItems = make([]InvoiceLineItemModel, len(inv.LineItems))
	for i := range inv.LineItems {
		m.LineItems[i].FromDomain(&inv.LineItems[i])
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice aggregate.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceLineItemModel is the persistence model for invoice line items.
// The unique index on delivery_id guarantees a delivery is claimed by
// at most one invoice ever.
type InvoiceLineItemModel struct {
	BaseModel
	InvoiceID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	DeliveryID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	DeliveryDate  time.Time         `gorm:"type:date;not null"`
	DeliveryPrice valueobject.Money `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineItemModel) TableName() string {
	return "invoice_line_items"
}

// ToDomain converts the persistence model to a domain InvoiceLineItem entity.
func (m *InvoiceLineItemModel) ToDomain() *billing.InvoiceLineItem {
	return &billing.InvoiceLineItem{
		BaseEntity:    m.BaseModel.ToDomain(),
		InvoiceID:     m.InvoiceID,
		DeliveryID:    m.DeliveryID,
		DeliveryDate:  m.DeliveryDate,
		DeliveryPrice: m.DeliveryPrice,
	}
}

// FromDomain populates the persistence model from a domain InvoiceLineItem entity.
func (m *InvoiceLineItemModel) FromDomain(item *billing.InvoiceLineItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.InvoiceID = item.InvoiceID
	m.DeliveryID = item.DeliveryID
	m.DeliveryDate = item.DeliveryDate
	m.DeliveryPrice = item.DeliveryPrice
}

// PaymentModel is the persistence model for the Payment aggregate.
type PaymentModel struct {
	AuditedAggregateModel
	InvoiceID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Amount      valueobject.Money   `gorm:"type:decimal(12,2);not null"`
	PaymentDate time.Time           `gorm:"type:date;not null;index"`
	Mode        billing.PaymentMode `gorm:"type:varchar(20);not null"`
	Notes       string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment aggregate.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		InvoiceID:            m.InvoiceID,
		Amount:               m.Amount,
		PaymentDate:          m.PaymentDate,
		Mode:                 m.Mode,
		Notes:                m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Payment aggregate.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Mode = p.Mode
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment aggregate.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
