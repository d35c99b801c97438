package notification

import (
	"context"
	"fmt"

	"github.com/jobboard-api/internal/domain"
)

// Inbox is the result of listing a user's notifications.
type Inbox struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

type Service interface {
	List(ctx context.Context, userID string, limit int32) (*Inbox, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, notificationID, userID string) error
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, limit int32) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, notificationID string) error
}

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID string, limit int32) (*Inbox, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return &Inbox{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *service) MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("not your notification: %w", domain.ErrForbidden)
	}
	if err := s.repo.MarkAsRead(ctx, notificationID); err != nil {
		return nil, err
	}
	n.Read = true
	return n, nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, notificationID, userID string) error {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return fmt.Errorf("not your notification: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, notificationID)
}
