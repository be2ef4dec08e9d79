package subscriber

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/subscriber"
)

// CustomerService provides application-level customer operations
type CustomerService struct {
	customerRepo subscriber.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo subscriber.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	Name    string
	Phone   string
	Address string
	Area    string
	Notes   string
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    string
	Phone   string
	Address string
	Area    string
	Notes   string
}

// CreateCustomer registers a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*subscriber.Customer, error) {
	customer, err := subscriber.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	customer.Address = req.Address
	customer.Area = req.Area
	customer.Notes = req.Notes

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return customer, nil
}

// UpdateCustomer updates an existing customer's details
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*subscriber.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.Phone, req.Address, req.Area, req.Notes); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*subscriber.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// ListCustomers lists customers with pagination; Search matches name or phone
func (s *CustomerService) ListCustomers(ctx context.Context, filter shared.Filter) (shared.Paginated[subscriber.Customer], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[subscriber.Customer]{}, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[subscriber.Customer]{}, err
	}
	return shared.NewPaginated(customers, total, filter.Page, filter.PageSize), nil
}

// DeactivateCustomer marks a customer inactive, stopping delivery generation
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	customer.Deactivate()
	return s.customerRepo.Save(ctx, customer)
}

// ActivateCustomer reactivates a customer
func (s *CustomerService) ActivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	customer.Activate()
	return s.customerRepo.Save(ctx, customer)
}
