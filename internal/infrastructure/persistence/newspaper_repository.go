package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/subscriber"
	"github.com/newsagent/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNewsPaperRepository implements NewsPaperRepository using GORM
type GormNewsPaperRepository struct {
	db *gorm.DB
}

// NewGormNewsPaperRepository creates a new GormNewsPaperRepository
func NewGormNewsPaperRepository(db *gorm.DB) *GormNewsPaperRepository {
	return &GormNewsPaperRepository{db: db}
}

// FindByID finds a newspaper by its ID
func (r *GormNewsPaperRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscriber.NewsPaper, error) {
	var model models.NewsPaperModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a newspaper by its unique name
func (r *GormNewsPaperRepository) FindByName(ctx context.Context, name string) (*subscriber.NewsPaper, error) {
	var model models.NewsPaperModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists newspapers matching the filter
func (r *GormNewsPaperRepository) FindAll(ctx context.Context, filter shared.Filter) ([]subscriber.NewsPaper, error) {
	var paperModels []models.NewsPaperModel
	query := r.db.WithContext(ctx).Model(&models.NewsPaperModel{})

	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, NewsPaperSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if filter.OrderBy == "" {
		orderDir = "ASC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Find(&paperModels).Error; err != nil {
		return nil, err
	}

	papers := make([]subscriber.NewsPaper, len(paperModels))
	for i, model := range paperModels {
		papers[i] = *model.ToDomain()
	}
	return papers, nil
}

// Save creates or updates a newspaper
func (r *GormNewsPaperRepository) Save(ctx context.Context, paper *subscriber.NewsPaper) error {
	model := models.NewsPaperModelFromDomain(paper)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormNewsPaperRepository implements NewsPaperRepository
var _ subscriber.NewsPaperRepository = (*GormNewsPaperRepository)(nil)
