package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
	"github.com/newsagent/backend/internal/domain/subscriber"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(100);not null;index"`
	Phone    string `gorm:"type:varchar(20);not null;index"`
	Address  string `gorm:"type:text"`
	Area     string `gorm:"type:varchar(100);index"`
	Notes    string `gorm:"type:text"`
	IsActive bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *subscriber.Customer {
	return &subscriber.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		Address:           m.Address,
		Area:              m.Area,
		Notes:             m.Notes,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *subscriber.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Address = c.Address
	m.Area = c.Area
	m.Notes = c.Notes
	m.IsActive = c.IsActive
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *subscriber.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// NewsPaperModel is the persistence model for the NewsPaper domain entity.
type NewsPaperModel struct {
	AggregateModel
	Name        string            `gorm:"type:varchar(255);not null;uniqueIndex"`
	PricePerDay valueobject.Money `gorm:"type:decimal(12,2);not null"`
	IsActive    bool              `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (NewsPaperModel) TableName() string {
	return "newspapers"
}

// ToDomain converts the persistence model to a domain NewsPaper entity.
func (m *NewsPaperModel) ToDomain() *subscriber.NewsPaper {
	return &subscriber.NewsPaper{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		PricePerDay:       m.PricePerDay,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain NewsPaper entity.
func (m *NewsPaperModel) FromDomain(n *subscriber.NewsPaper) {
	m.FromDomainAggregateRoot(n.BaseAggregateRoot)
	m.Name = n.Name
	m.PricePerDay = n.PricePerDay
	m.IsActive = n.IsActive
}

// NewsPaperModelFromDomain creates a new persistence model from a domain NewsPaper entity.
func NewsPaperModelFromDomain(n *subscriber.NewsPaper) *NewsPaperModel {
	m := &NewsPaperModel{}
	m.FromDomain(n)
	return m
}

// SubscriptionModel is the persistence model for the Subscription domain entity.
type SubscriptionModel struct {
	AggregateModel
	CustomerID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	NewsPaperID uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	EndDate     *time.Time `gorm:"type:date"`
	IsActive    bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription entity.
func (m *SubscriptionModel) ToDomain() *subscriber.Subscription {
	return &subscriber.Subscription{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		NewsPaperID:       m.NewsPaperID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Subscription entity.
func (m *SubscriptionModel) FromDomain(s *subscriber.Subscription) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CustomerID = s.CustomerID
	m.NewsPaperID = s.NewsPaperID
	m.StartDate = s.StartDate
	m.EndDate = s.EndDate
	m.IsActive = s.IsActive
}

// SubscriptionModelFromDomain creates a new persistence model from a domain Subscription entity.
func SubscriptionModelFromDomain(s *subscriber.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{}
	m.FromDomain(s)
	return m
}
