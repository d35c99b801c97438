package company

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldIndustry    = "industry"
	fieldCompanySize = "company_size"
	fieldWebsite     = "website"
	fieldLocation    = "location"
	fieldFoundedYear = "founded_year"
	fieldLogo        = "logo"
)

type Service interface {
	Upsert(ctx context.Context, userID string, req domain.CompanyInput) (*domain.Company, error)
	GetMine(ctx context.Context, userID string) (*domain.Company, error)
	Get(ctx context.Context, companyID string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	UploadLogo(ctx context.Context, userID, filename string, data io.Reader) (*domain.Company, error)
}

type companyStore interface {
	Put(ctx context.Context, c *domain.Company) error
	Get(ctx context.Context, companyID string) (*domain.Company, error)
	GetByUser(ctx context.Context, userID string) (*domain.Company, error)
	Scan(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, companyID string, updates map[string]interface{}) error
}

type fileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type contentTypeFunc func(filename string) string

type service struct {
	repo        companyStore
	files       fileStore
	contentType contentTypeFunc
}

func NewService(repo companyStore, files fileStore, contentType contentTypeFunc) Service {
	return &service{repo: repo, files: files, contentType: contentType}
}

// Upsert creates the caller's company on first call and updates it afterwards.
// One company per employer.
func (s *service) Upsert(ctx context.Context, userID string, req domain.CompanyInput) (*domain.Company, error) {
	existing, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		now := time.Now().UTC()
		c := &domain.Company{
			CompanyID:   id.New(),
			UserID:      userID,
			Name:        req.Name,
			Description: req.Description,
			Industry:    req.Industry,
			CompanySize: req.CompanySize,
			Website:     req.Website,
			Location:    req.Location,
			FoundedYear: req.FoundedYear,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Put(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	updates := map[string]interface{}{
		fieldName:        req.Name,
		fieldDescription: req.Description,
		fieldIndustry:    req.Industry,
		fieldCompanySize: req.CompanySize,
		fieldWebsite:     req.Website,
		fieldLocation:    req.Location,
		fieldFoundedYear: req.FoundedYear,
	}
	if err := s.repo.Update(ctx, existing.CompanyID, updates); err != nil {
		return nil, err
	}
	existing.Name = req.Name
	existing.Description = req.Description
	existing.Industry = req.Industry
	existing.CompanySize = req.CompanySize
	existing.Website = req.Website
	existing.Location = req.Location
	existing.FoundedYear = req.FoundedYear
	return existing, nil
}

func (s *service) GetMine(ctx context.Context, userID string) (*domain.Company, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.repo.Get(ctx, companyID)
}

func (s *service) List(ctx context.Context) ([]domain.Company, error) {
	return s.repo.Scan(ctx)
}

func (s *service) UploadLogo(ctx context.Context, userID, filename string, data io.Reader) (*domain.Company, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("logos/%s/%s-%s", c.CompanyID, id.New(), filename)
	if _, err := s.files.Upload(ctx, key, data, s.contentType(filename)); err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}
	if err := s.repo.Update(ctx, c.CompanyID, map[string]interface{}{fieldLogo: key}); err != nil {
		return nil, err
	}
	c.Logo = key
	return c, nil
}
