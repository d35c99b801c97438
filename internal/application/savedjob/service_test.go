package savedjob

import (
	"context"
	"testing"

	"github.com/jobboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSavedJobStore struct{ mock.Mock }

func (m *mockSavedJobStore) Create(ctx context.Context, s *domain.SavedJob) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSavedJobStore) Delete(ctx context.Context, userID, jobID string) error {
	return m.Called(ctx, userID, jobID).Error(0)
}
func (m *mockSavedJobStore) ListByUser(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	args := m.Called(ctx, userID)
	if saved, _ := args.Get(0).([]domain.SavedJob); saved != nil {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockJobStore struct{ mock.Mock }

func (m *mockJobStore) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSave_JobMissing(t *testing.T) {
	repo, jobs := &mockSavedJobStore{}, &mockJobStore{}
	jobs.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := NewService(repo, jobs).Save(context.Background(), "u1", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSave_Duplicate(t *testing.T) {
	repo, jobs := &mockSavedJobStore{}, &mockJobStore{}
	jobs.On("Get", mock.Anything, "job-1").Return(&domain.Job{JobID: "job-1"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	_, err := NewService(repo, jobs).Save(context.Background(), "u1", "job-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSave_Success(t *testing.T) {
	repo, jobs := &mockSavedJobStore{}, &mockJobStore{}
	jobs.On("Get", mock.Anything, "job-1").Return(&domain.Job{JobID: "job-1", Title: "Backend Engineer"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	saved, err := NewService(repo, jobs).Save(context.Background(), "u1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.UserID)
	require.NotNil(t, saved.Job)
	assert.Equal(t, "Backend Engineer", saved.Job.Title)
}

func TestList_SkipsDeletedJobs(t *testing.T) {
	repo, jobs := &mockSavedJobStore{}, &mockJobStore{}
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.SavedJob{
		{UserID: "u1", JobID: "job-1"},
		{UserID: "u1", JobID: "gone"},
	}, nil)
	jobs.On("Get", mock.Anything, "job-1").Return(&domain.Job{JobID: "job-1"}, nil)
	jobs.On("Get", mock.Anything, "gone").Return(nil, domain.ErrNotFound)

	saved, err := NewService(repo, jobs).List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "job-1", saved[0].JobID)
}
