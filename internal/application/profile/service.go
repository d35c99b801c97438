package profile

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
	fieldTitle      = "title"
	fieldBio        = "bio"
	fieldSkills     = "skills"
	fieldLocation   = "location"
	fieldWebsite    = "website"
	fieldEducation  = "education"
	fieldExperience = "experience"
	fieldCVFile     = "cv_file"
)

const dateLayout = "2006-01-02"

type Service interface {
	Upsert(ctx context.Context, userID string, req domain.ProfileInput) (*domain.JobseekerProfile, error)
	GetMine(ctx context.Context, userID string) (*domain.JobseekerProfile, error)
	GetByUser(ctx context.Context, userID string) (*domain.JobseekerProfile, error)
	List(ctx context.Context) ([]domain.JobseekerProfile, error)
	Delete(ctx context.Context, userID string) error
	AddEducation(ctx context.Context, userID string, req domain.EducationInput) (*domain.JobseekerProfile, error)
	DeleteEducation(ctx context.Context, userID, educationID string) (*domain.JobseekerProfile, error)
	AddExperience(ctx context.Context, userID string, req domain.ExperienceInput) (*domain.JobseekerProfile, error)
	DeleteExperience(ctx context.Context, userID, experienceID string) (*domain.JobseekerProfile, error)
	UploadCV(ctx context.Context, userID, filename string, data io.Reader) (*domain.JobseekerProfile, error)
	DeleteCV(ctx context.Context, userID string) error
	GetCV(ctx context.Context, userID string) (io.ReadCloser, string, error)
}

type profileStore interface {
	Put(ctx context.Context, p *domain.JobseekerProfile) error
	GetByUser(ctx context.Context, userID string) (*domain.JobseekerProfile, error)
	Scan(ctx context.Context) ([]domain.JobseekerProfile, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
}

type fileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type contentTypeFunc func(filename string) string

type service struct {
	repo        profileStore
	files       fileStore
	contentType contentTypeFunc
}

func NewService(repo profileStore, files fileStore, contentType contentTypeFunc) Service {
	return &service{repo: repo, files: files, contentType: contentType}
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	f, err := time.Parse(dateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", domain.ErrBadRequest)
	}
	var t time.Time
	if to != "" {
		t, err = time.Parse(dateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", domain.ErrBadRequest)
		}
	}
	return f, t, nil
}

// Upsert creates the caller's profile on first call and updates it afterwards.
func (s *service) Upsert(ctx context.Context, userID string, req domain.ProfileInput) (*domain.JobseekerProfile, error) {
	existing, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		now := time.Now().UTC()
		p := &domain.JobseekerProfile{
			UserID:    userID,
			ProfileID: id.New(),
			Title:     req.Title,
			Bio:       req.Bio,
			Skills:    req.Skills,
			Location:  req.Location,
			Website:   req.Website,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Put(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	if err := s.repo.Update(ctx, userID, map[string]interface{}{
		fieldTitle:    req.Title,
		fieldBio:      req.Bio,
		fieldSkills:   req.Skills,
		fieldLocation: req.Location,
		fieldWebsite:  req.Website,
	}); err != nil {
		return nil, err
	}
	existing.Title = req.Title
	existing.Bio = req.Bio
	existing.Skills = req.Skills
	existing.Location = req.Location
	existing.Website = req.Website
	return existing, nil
}

func (s *service) GetMine(ctx context.Context, userID string) (*domain.JobseekerProfile, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) GetByUser(ctx context.Context, userID string) (*domain.JobseekerProfile, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]domain.JobseekerProfile, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if p.CVFile != "" {
		if err := s.files.Delete(ctx, p.CVFile); err != nil {
			return fmt.Errorf("delete stored cv: %w", err)
		}
	}
	return s.repo.Delete(ctx, userID)
}

func (s *service) AddEducation(ctx context.Context, userID string, req domain.EducationInput) (*domain.JobseekerProfile, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	p.Education = append(p.Education, domain.Education{
		EducationID:  id.New(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldEducation: p.Education}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteEducation(ctx context.Context, userID, educationID string) (*domain.JobseekerProfile, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := p.Education[:0]
	found := false
	for _, e := range p.Education {
		if e.EducationID == educationID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, fmt.Errorf("education entry not found: %w", domain.ErrNotFound)
	}
	p.Education = kept
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldEducation: p.Education}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) AddExperience(ctx context.Context, userID string, req domain.ExperienceInput) (*domain.JobseekerProfile, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	p.Experience = append(p.Experience, domain.Experience{
		ExperienceID: id.New(),
		Company:      req.Company,
		Title:        req.Title,
		Location:     req.Location,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldExperience: p.Experience}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteExperience(ctx context.Context, userID, experienceID string) (*domain.JobseekerProfile, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := p.Experience[:0]
	found := false
	for _, e := range p.Experience {
		if e.ExperienceID == experienceID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, fmt.Errorf("experience entry not found: %w", domain.ErrNotFound)
	}
	p.Experience = kept
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldExperience: p.Experience}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UploadCV(ctx context.Context, userID, filename string, data io.Reader) (*domain.JobseekerProfile, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("cvs/%s/%s-%s", userID, id.New(), filename)
	if _, err := s.files.Upload(ctx, key, data, s.contentType(filename)); err != nil {
		return nil, fmt.Errorf("upload cv: %w", err)
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldCVFile: key}); err != nil {
		return nil, err
	}
	p.CVFile = key
	return p, nil
}

func (s *service) DeleteCV(ctx context.Context, userID string) error {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if p.CVFile == "" {
		return fmt.Errorf("no CV on file: %w", domain.ErrNotFound)
	}
	if err := s.files.Delete(ctx, p.CVFile); err != nil {
		return fmt.Errorf("delete stored cv: %w", err)
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{fieldCVFile: ""})
}

func (s *service) GetCV(ctx context.Context, userID string) (io.ReadCloser, string, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if p.CVFile == "" {
		return nil, "", fmt.Errorf("no CV on file: %w", domain.ErrNotFound)
	}
	rc, err := s.files.Download(ctx, p.CVFile)
	if err != nil {
		return nil, "", err
	}
	return rc, p.CVFile, nil
}
