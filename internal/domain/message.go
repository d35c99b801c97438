package domain

import "time"

// Message is a direct communication unit between two users. Nothing forbids
// sender == receiver; the send path only requires that the receiver exists.
type Message struct {
	MessageID      string     `json:"id" dynamodbav:"message_id"`
	ConversationID string     `json:"-" dynamodbav:"conversation_id"`
	SenderID       string     `json:"sender_id" dynamodbav:"sender_id"`
	ReceiverID     string     `json:"receiver_id" dynamodbav:"receiver_id"`
	Content        string     `json:"content" dynamodbav:"content"`
	Read           bool       `json:"read" dynamodbav:"read"`
	RelatedTo      *RelatedTo `json:"related_to,omitempty" dynamodbav:"related_to"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// ConversationKey derives the shared conversation id for a pair of users.
// It is symmetric: ConversationKey(a, b) == ConversationKey(b, a).
func ConversationKey(a, b string) string {
	if a < b {
		return a + "#" + b
	}
	return b + "#" + a
}

// Conversation is a per-counterpart summary for the conversation list view.
type Conversation struct {
	User        *User    `json:"user"`
	LastMessage *Message `json:"last_message"`
	UnreadCount int      `json:"unread_count"`
}

type SendMessageRequest struct {
	ReceiverID string     `json:"receiver_id" validate:"required"`
	Content    string     `json:"content" validate:"required"`
	RelatedTo  *RelatedTo `json:"related_to"`
}
