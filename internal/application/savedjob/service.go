package savedjob

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobboard-api/internal/domain"
)

type Service interface {
	Save(ctx context.Context, userID, jobID string) (*domain.SavedJob, error)
	Unsave(ctx context.Context, userID, jobID string) error
	List(ctx context.Context, userID string) ([]domain.SavedJob, error)
}

type savedJobStore interface {
	Create(ctx context.Context, s *domain.SavedJob) error
	Delete(ctx context.Context, userID, jobID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.SavedJob, error)
}

type jobStore interface {
	Get(ctx context.Context, jobID string) (*domain.Job, error)
}

type service struct {
	repo    savedJobStore
	jobRepo jobStore
}

func NewService(repo savedJobStore, jobRepo jobStore) Service {
	return &service{repo: repo, jobRepo: jobRepo}
}

// Save bookmarks a job. Saving the same job twice yields a conflict from the
// store's conditional put.
func (s *service) Save(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	job, err := s.jobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	saved := &domain.SavedJob{
		UserID:    userID,
		JobID:     jobID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, err
	}
	saved.Job = job
	return saved, nil
}

func (s *service) Unsave(ctx context.Context, userID, jobID string) error {
	return s.repo.Delete(ctx, userID, jobID)
}

// List returns the caller's saved jobs with each job hydrated. Bookmarks of
// jobs that no longer exist are skipped.
func (s *service) List(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	saved, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SavedJob, 0, len(saved))
	for i := range saved {
		job, err := s.jobRepo.Get(ctx, saved[i].JobID)
		if err != nil {
			slog.Warn("skipping saved job with missing posting",
				"user_id", userID, "job_id", saved[i].JobID, "err", err)
			continue
		}
		saved[i].Job = job
		out = append(out, saved[i])
	}
	return out, nil
}
