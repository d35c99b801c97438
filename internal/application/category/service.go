package category

import (
	"context"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName        = "name"
	fieldType        = "type"
	fieldDescription = "description"
)

type Service interface {
	Create(ctx context.Context, req domain.CategoryInput) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	Update(ctx context.Context, categoryID string, req domain.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, categoryID string) error
}

type categoryStore interface {
	Put(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	Scan(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, updates map[string]interface{}) error
	Delete(ctx context.Context, categoryID string) error
}

type service struct {
	repo categoryStore
}

func NewService(repo categoryStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CategoryInput) (*domain.Category, error) {
	now := time.Now().UTC()
	c := &domain.Category{
		CategoryID:  id.New(),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.repo.Get(ctx, categoryID)
}

func (s *service) Update(ctx context.Context, categoryID string, req domain.CategoryInput) (*domain.Category, error) {
	c, err := s.repo.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, categoryID, map[string]interface{}{
		fieldName:        req.Name,
		fieldType:        req.Type,
		fieldDescription: req.Description,
	}); err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Type = req.Type
	c.Description = req.Description
	return c, nil
}

func (s *service) Delete(ctx context.Context, categoryID string) error {
	if _, err := s.repo.Get(ctx, categoryID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, categoryID)
}
