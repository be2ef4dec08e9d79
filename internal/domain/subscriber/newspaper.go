package subscriber

import (
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// NewsPaper is a deliverable publication with a per-day price. Price
// changes affect only future deliveries: each delivery snapshots the
// price in force when it is generated.
type NewsPaper struct {
	shared.BaseAggregateRoot
	Name        string            `json:"name"`
	PricePerDay valueobject.Money `json:"price_per_day"`
	IsActive    bool              `json:"is_active"`
}

// NewNewsPaper creates a new active newspaper
func NewNewsPaper(name string, pricePerDay valueobject.Money) (*NewsPaper, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NEWSPAPER_NAME", "Newspaper name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewDomainError("INVALID_NEWSPAPER_NAME", "Newspaper name cannot exceed 255 characters")
	}
	if !pricePerDay.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per day must be positive")
	}

	return &NewsPaper{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PricePerDay:       pricePerDay,
		IsActive:          true,
	}, nil
}

// ChangePrice sets a new per-day price for future deliveries
func (n *NewsPaper) ChangePrice(pricePerDay valueobject.Money) error {
	if !pricePerDay.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price per day must be positive")
	}
	n.PricePerDay = pricePerDay
	n.Touch()
	n.IncrementVersion()
	return nil
}

// Rename changes the newspaper name
func (n *NewsPaper) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NEWSPAPER_NAME", "Newspaper name cannot be empty")
	}
	n.Name = name
	n.Touch()
	n.IncrementVersion()
	return nil
}

// Deactivate marks the newspaper as no longer distributed
func (n *NewsPaper) Deactivate() {
	n.IsActive = false
	n.Touch()
	n.IncrementVersion()
}
