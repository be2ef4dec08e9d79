package subscriber

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
	"github.com/newsagent/backend/internal/domain/subscriber"
)

// NewsPaperService provides application-level newspaper operations
type NewsPaperService struct {
	paperRepo subscriber.NewsPaperRepository
}

// NewNewsPaperService creates a new NewsPaperService
func NewNewsPaperService(paperRepo subscriber.NewsPaperRepository) *NewsPaperService {
	return &NewsPaperService{paperRepo: paperRepo}
}

// CreateNewsPaper registers a newspaper product with its per-day price.
// Names are unique; creating a second paper with the same name fails.
func (s *NewsPaperService) CreateNewsPaper(ctx context.Context, name string, pricePerDay valueobject.Money) (*subscriber.NewsPaper, error) {
	if existing, err := s.paperRepo.FindByName(ctx, name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	paper, err := subscriber.NewNewsPaper(name, pricePerDay)
	if err != nil {
		return nil, err
	}
	if err := s.paperRepo.Save(ctx, paper); err != nil {
		return nil, fmt.Errorf("failed to save newspaper: %w", err)
	}
	return paper, nil
}

// ChangePrice updates a newspaper's per-day price. Existing deliveries
// keep their snapshot price; only deliveries generated afterwards use
// the new one.
func (s *NewsPaperService) ChangePrice(ctx context.Context, id uuid.UUID, pricePerDay valueobject.Money) (*subscriber.NewsPaper, error) {
	paper, err := s.paperRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := paper.ChangePrice(pricePerDay); err != nil {
		return nil, err
	}
	if err := s.paperRepo.Save(ctx, paper); err != nil {
		return nil, fmt.Errorf("failed to save newspaper: %w", err)
	}
	return paper, nil
}

// GetNewsPaper retrieves a newspaper by ID
func (s *NewsPaperService) GetNewsPaper(ctx context.Context, id uuid.UUID) (*subscriber.NewsPaper, error) {
	return s.paperRepo.FindByID(ctx, id)
}

// ListNewsPapers lists newspapers
func (s *NewsPaperService) ListNewsPapers(ctx context.Context, filter shared.Filter) ([]subscriber.NewsPaper, error) {
	return s.paperRepo.FindAll(ctx, filter)
}
