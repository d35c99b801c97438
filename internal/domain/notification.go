package domain

import "time"

// Notification types.
const (
	NotificationApplicationStatus   = "application_status"
	NotificationNewApplication      = "new_application"
	NotificationInterviewInvitation = "interview_invitation"
	NotificationJobRecommendation   = "job_recommendation"
	NotificationMessage             = "message"
	NotificationSystem              = "system"
)

// RelatedTo is a polymorphic pointer from a notification or message to the
// domain object it concerns.
type RelatedTo struct {
	Model string `json:"model" dynamodbav:"model"`
	ID    string `json:"id" dynamodbav:"id"`
}

// Related entity kinds.
const (
	RelatedJob         = "Job"
	RelatedApplication = "Application"
	RelatedMessage     = "Message"
	RelatedUser        = "User"
	RelatedCompany     = "Company"
)

// Notification is a derived, addressed event record. Notifications are only
// ever created as a side effect of another write, never directly by a client.
type Notification struct {
	NotificationID string     `json:"id" dynamodbav:"notification_id"`
	UserID         string     `json:"user_id" dynamodbav:"user_id"`
	Type           string     `json:"type" dynamodbav:"type"`
	Title          string     `json:"title" dynamodbav:"title"`
	Message        string     `json:"message" dynamodbav:"message"`
	RelatedTo      *RelatedTo `json:"related_to,omitempty" dynamodbav:"related_to"`
	Read           bool       `json:"read" dynamodbav:"read"`
	Link           string     `json:"link,omitempty" dynamodbav:"link"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}
