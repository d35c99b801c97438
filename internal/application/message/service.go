package message

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

type Service interface {
	Send(ctx context.Context, senderID string, req domain.SendMessageRequest) (*domain.Message, error)
	Conversation(ctx context.Context, userID, otherUserID string) ([]domain.Message, error)
	Conversations(ctx context.Context, userID string) ([]domain.Conversation, error)
	MarkRead(ctx context.Context, userID, otherUserID string) (int, error)
}

type messageStore interface {
	Put(ctx context.Context, m *domain.Message) error
	Conversation(ctx context.Context, conversationID string) ([]domain.Message, error)
	LastMessage(ctx context.Context, conversationID string) (*domain.Message, error)
	CountUnreadFrom(ctx context.Context, receiverID, senderID string) (int, error)
	MarkConversationRead(ctx context.Context, receiverID, senderID string) (int, error)
	CounterpartIDs(ctx context.Context, userID string) ([]string, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type notifier interface {
	MessageReceived(ctx context.Context, receiverID, senderID, senderName, messageID string)
}

type service struct {
	repo     messageStore
	userRepo userStore
	notify   notifier
}

func NewService(repo messageStore, userRepo userStore, notify notifier) Service {
	return &service{repo: repo, userRepo: userRepo, notify: notify}
}

// Send delivers a message to an existing user and notifies them. Sending to
// yourself is allowed.
func (s *service) Send(ctx context.Context, senderID string, req domain.SendMessageRequest) (*domain.Message, error) {
	if _, err := s.userRepo.Get(ctx, req.ReceiverID); err != nil {
		return nil, fmt.Errorf("receiver not found: %w", domain.ErrNotFound)
	}

	now := time.Now().UTC()
	m := &domain.Message{
		MessageID:      id.New(),
		ConversationID: domain.ConversationKey(senderID, req.ReceiverID),
		SenderID:       senderID,
		ReceiverID:     req.ReceiverID,
		Content:        req.Content,
		RelatedTo:      req.RelatedTo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, m); err != nil {
		return nil, err
	}

	senderName := senderID
	if u, err := s.userRepo.Get(ctx, senderID); err == nil {
		senderName = u.Name
	}
	s.notify.MessageReceived(ctx, req.ReceiverID, senderID, senderName, m.MessageID)

	return m, nil
}

func (s *service) Conversation(ctx context.Context, userID, otherUserID string) ([]domain.Message, error) {
	return s.repo.Conversation(ctx, domain.ConversationKey(userID, otherUserID))
}

// Conversations builds the conversation list view: one entry per counterpart
// with the latest message and the caller's unread count, newest first. A
// counterpart whose account is gone is skipped.
func (s *service) Conversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	ids, err := s.repo.CounterpartIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]domain.Conversation, 0, len(ids))
	for _, otherID := range ids {
		u, err := s.userRepo.Get(ctx, otherID)
		if err != nil {
			slog.Warn("skipping conversation with missing user", "user_id", otherID, "err", err)
			continue
		}
		last, err := s.repo.LastMessage(ctx, domain.ConversationKey(userID, otherID))
		if err != nil {
			return nil, err
		}
		unread, err := s.repo.CountUnreadFrom(ctx, userID, otherID)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, domain.Conversation{
			User:        u,
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})
	return conversations, nil
}

func (s *service) MarkRead(ctx context.Context, userID, otherUserID string) (int, error) {
	return s.repo.MarkConversationRead(ctx, userID, otherUserID)
}
