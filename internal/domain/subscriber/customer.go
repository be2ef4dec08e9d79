package subscriber

import (
	"github.com/newsagent/backend/internal/domain/shared"
)

// Customer represents a subscribed household or shop on a delivery route.
// Customers are owned by the CRUD layer; the billing core references them
// by ID and reads only the active flag.
type Customer struct {
	shared.BaseAggregateRoot
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	Area     string `json:"area,omitempty"`
	Notes    string `json:"notes,omitempty"`
	IsActive bool   `json:"is_active"`
}

// NewCustomer creates a new active customer
func NewCustomer(name, phone string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 100 characters")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_PHONE", "Customer phone cannot be empty")
	}
	if len(phone) > 20 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_PHONE", "Customer phone cannot exceed 20 characters")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		IsActive:          true,
	}, nil
}

// Update changes the customer's contact details
func (c *Customer) Update(name, phone, address, area, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if phone == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_PHONE", "Customer phone cannot be empty")
	}

	c.Name = name
	c.Phone = phone
	c.Address = address
	c.Area = area
	c.Notes = notes
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Deactivate marks the customer inactive. Inactive customers keep their
// delivery and invoice history but receive no new deliveries.
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.Touch()
	c.IncrementVersion()
}

// Activate marks the customer active again
func (c *Customer) Activate() {
	c.IsActive = true
	c.Touch()
	c.IncrementVersion()
}
