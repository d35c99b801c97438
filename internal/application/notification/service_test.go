package notification

import (
	"context"
	"testing"

	"github.com/jobboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Put(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockNotificationStore) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) ListByUser(ctx context.Context, userID string, limit int32) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if ns, _ := args.Get(0).([]domain.Notification); ns != nil {
		return ns, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *mockNotificationStore) MarkAsRead(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}
func (m *mockNotificationStore) MarkAllAsRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockNotificationStore) Delete(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}

// --- inbox ---

func TestList_ReturnsUnreadCount(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("ListByUser", mock.Anything, "u1", int32(0)).Return([]domain.Notification{
		{NotificationID: "n1", Read: true},
		{NotificationID: "n2"},
	}, nil)
	repo.On("CountUnread", mock.Anything, "u1").Return(1, nil)

	inbox, err := NewService(repo).List(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, inbox.Notifications, 2)
	assert.Equal(t, 1, inbox.UnreadCount)
}

func TestMarkAsRead_WrongOwner(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "someone-else"}, nil)

	_, err := NewService(repo).MarkAsRead(context.Background(), "n1", "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

func TestMarkAsRead_Owner(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "u1"}, nil)
	repo.On("MarkAsRead", mock.Anything, "n1").Return(nil)

	n, err := NewService(repo).MarkAsRead(context.Background(), "n1", "u1")
	require.NoError(t, err)
	assert.True(t, n.Read)
}

func TestDelete_WrongOwner(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "someone-else"}, nil)

	err := NewService(repo).Delete(context.Background(), "n1", "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- fan-out ---

func TestFanout_ApplicationSubmitted_AddressesEmployer(t *testing.T) {
	repo := &mockNotificationStore{}
	var captured *domain.Notification
	repo.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*domain.Notification)
	}).Return(nil)

	app := &domain.Application{ApplicationID: "app-1", UserID: "seeker-1"}
	job := &domain.Job{JobID: "job-1", UserID: "employer-1", Title: "Backend Engineer"}
	NewFanout(repo).ApplicationSubmitted(context.Background(), "Ada", app, job)

	require.NotNil(t, captured)
	assert.Equal(t, "employer-1", captured.UserID)
	assert.Equal(t, domain.NotificationNewApplication, captured.Type)
	assert.Equal(t, "/employer/applications/app-1", captured.Link)
	assert.Contains(t, captured.Message, "Ada")
	assert.Contains(t, captured.Message, "Backend Engineer")
	assert.False(t, captured.Read)
	assert.NotEmpty(t, captured.NotificationID)
}

func TestFanout_StatusChanged_AddressesApplicant(t *testing.T) {
	repo := &mockNotificationStore{}
	var captured *domain.Notification
	repo.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*domain.Notification)
	}).Return(nil)

	app := &domain.Application{ApplicationID: "app-1", UserID: "seeker-1"}
	job := &domain.Job{JobID: "job-1", UserID: "employer-1", Title: "Backend Engineer"}
	NewFanout(repo).StatusChanged(context.Background(), domain.ApplicationAccepted, "Welcome aboard", app, job)

	require.NotNil(t, captured)
	assert.Equal(t, "seeker-1", captured.UserID)
	assert.Equal(t, "/jobseeker/applications/app-1", captured.Link)
	assert.Contains(t, captured.Message, "accepted")
	assert.Contains(t, captured.Message, "Welcome aboard")
}

func TestFanout_PutFailureIsSwallowed(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Put", mock.Anything, mock.Anything).Return(assert.AnError)

	app := &domain.Application{ApplicationID: "app-1", UserID: "seeker-1"}
	job := &domain.Job{JobID: "job-1", UserID: "employer-1", Title: "Backend Engineer"}
	// Must not panic or surface the error.
	NewFanout(repo).ApplicationViewed(context.Background(), app, job)
	repo.AssertExpectations(t)
}

func TestFanout_MessageReceived_LinksConversation(t *testing.T) {
	repo := &mockNotificationStore{}
	var captured *domain.Notification
	repo.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*domain.Notification)
	}).Return(nil)

	NewFanout(repo).MessageReceived(context.Background(), "receiver-1", "sender-1", "Ada", "msg-1")

	require.NotNil(t, captured)
	assert.Equal(t, "receiver-1", captured.UserID)
	assert.Equal(t, domain.NotificationMessage, captured.Type)
	assert.Equal(t, "/messages/sender-1", captured.Link)
	require.NotNil(t, captured.RelatedTo)
	assert.Equal(t, domain.RelatedMessage, captured.RelatedTo.Model)
	assert.Equal(t, "msg-1", captured.RelatedTo.ID)
}
