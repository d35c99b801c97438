package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldTitle           = "title"
	fieldDescription     = "description"
	fieldRequirements    = "requirements"
	fieldBenefits        = "benefits"
	fieldLocation        = "location"
	fieldJobType         = "job_type"
	fieldCategory        = "category"
	fieldSkills          = "skills"
	fieldExperienceLevel = "experience_level"
	fieldEducationLevel  = "education_level"
	fieldSalaryMin       = "salary_min"
	fieldSalaryMax       = "salary_max"
	fieldSalaryCurrency  = "salary_currency"
	fieldShowSalary      = "show_salary"
	fieldDeadline        = "application_deadline"
	fieldFeatured        = "featured"
	fieldStatus          = "job_status"
)

const deadlineLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req domain.CreateJobRequest) (*domain.Job, error)
	List(ctx context.Context, limit int32, cursor string) ([]domain.Job, string, error)
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	ListMine(ctx context.Context, userID string) ([]domain.Job, error)
	Update(ctx context.Context, actor domain.Actor, jobID string, req domain.UpdateJobRequest) (*domain.Job, error)
	ChangeStatus(ctx context.Context, actor domain.Actor, jobID, status string) (*domain.Job, error)
	Delete(ctx context.Context, actor domain.Actor, jobID string) error
}

type jobStore interface {
	Put(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	ScanActivePage(ctx context.Context, limit int32, cursor string) ([]domain.Job, string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Job, error)
	Update(ctx context.Context, jobID string, updates map[string]interface{}) error
	IncrementViews(ctx context.Context, jobID string) error
	Delete(ctx context.Context, jobID string) error
}

type companyStore interface {
	GetByUser(ctx context.Context, userID string) (*domain.Company, error)
}

type service struct {
	repo        jobStore
	companyRepo companyStore
}

func NewService(repo jobStore, companyRepo companyStore) Service {
	return &service{repo: repo, companyRepo: companyRepo}
}

// Create publishes a job posting. The caller must have registered a company
// first; the posting is linked to it.
func (s *service) Create(ctx context.Context, actor domain.Actor, req domain.CreateJobRequest) (*domain.Job, error) {
	company, err := s.companyRepo.GetByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("a company profile is required to post jobs: %w", domain.ErrBadRequest)
	}
	deadline, err := time.Parse(deadlineLayout, req.ApplicationDeadline)
	if err != nil {
		return nil, fmt.Errorf("invalid application deadline: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	j := &domain.Job{
		JobID:               id.New(),
		CompanyID:           company.CompanyID,
		UserID:              actor.UserID,
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Benefits:            req.Benefits,
		Location:            req.Location,
		JobType:             req.JobType,
		Category:            req.Category,
		Skills:              req.Skills,
		ExperienceLevel:     req.ExperienceLevel,
		EducationLevel:      req.EducationLevel,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      req.SalaryCurrency,
		ShowSalary:          req.ShowSalary,
		Status:              domain.JobStatusActive,
		ApplicationDeadline: deadline,
		Featured:            req.Featured,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Put(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) List(ctx context.Context, limit int32, cursor string) ([]domain.Job, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ScanActivePage(ctx, limit, cursor)
}

// Get returns a job and bumps its view counter. The bump is best effort; a
// failed counter update never fails the read.
func (s *service) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	j, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, jobID); err != nil {
		slog.Warn("could not bump job view counter", "job_id", jobID, "err", err)
	} else {
		j.Views++
	}
	return j, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]domain.Job, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) owned(ctx context.Context, actor domain.Actor, jobID string) (*domain.Job, error) {
	j, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.UserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("not your job posting: %w", domain.ErrForbidden)
	}
	return j, nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, jobID string, req domain.UpdateJobRequest) (*domain.Job, error) {
	j, err := s.owned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
		j.Title = *req.Title
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		updates[fieldRequirements] = *req.Requirements
		j.Requirements = *req.Requirements
	}
	if req.Benefits != nil {
		updates[fieldBenefits] = *req.Benefits
		j.Benefits = *req.Benefits
	}
	if req.Location != nil {
		updates[fieldLocation] = *req.Location
		j.Location = *req.Location
	}
	if req.JobType != nil {
		updates[fieldJobType] = *req.JobType
		j.JobType = *req.JobType
	}
	if req.Category != nil {
		updates[fieldCategory] = *req.Category
		j.Category = *req.Category
	}
	if req.Skills != nil {
		updates[fieldSkills] = req.Skills
		j.Skills = req.Skills
	}
	if req.ExperienceLevel != nil {
		updates[fieldExperienceLevel] = *req.ExperienceLevel
		j.ExperienceLevel = *req.ExperienceLevel
	}
	if req.EducationLevel != nil {
		updates[fieldEducationLevel] = *req.EducationLevel
		j.EducationLevel = *req.EducationLevel
	}
	if req.SalaryMin != nil {
		updates[fieldSalaryMin] = *req.SalaryMin
		j.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		updates[fieldSalaryMax] = *req.SalaryMax
		j.SalaryMax = *req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		updates[fieldSalaryCurrency] = *req.SalaryCurrency
		j.SalaryCurrency = *req.SalaryCurrency
	}
	if req.ShowSalary != nil {
		updates[fieldShowSalary] = *req.ShowSalary
		j.ShowSalary = *req.ShowSalary
	}
	if req.ApplicationDeadline != nil {
		deadline, err := time.Parse(deadlineLayout, *req.ApplicationDeadline)
		if err != nil {
			return nil, fmt.Errorf("invalid application deadline: %w", domain.ErrBadRequest)
		}
		updates[fieldDeadline] = deadline.Format(time.RFC3339)
		j.ApplicationDeadline = deadline
	}
	if req.Featured != nil {
		updates[fieldFeatured] = *req.Featured
		j.Featured = *req.Featured
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.repo.Update(ctx, jobID, updates); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) ChangeStatus(ctx context.Context, actor domain.Actor, jobID, status string) (*domain.Job, error) {
	if !domain.ValidJobStatus(status) {
		return nil, fmt.Errorf("unknown job status %q: %w", status, domain.ErrBadRequest)
	}
	j, err := s.owned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, jobID, map[string]interface{}{fieldStatus: status}); err != nil {
		return nil, err
	}
	j.Status = status
	return j, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, jobID string) error {
	if _, err := s.owned(ctx, actor, jobID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, jobID)
}
