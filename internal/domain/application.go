package domain

import "time"

// Application statuses. An application starts as pending; accepted and
// rejected are terminal by convention only — neither UpdateStatus nor
// ScheduleInterview refuses to move out of them, matching the behavior the
// rest of the system is built around.
const (
	ApplicationPending   = "pending"
	ApplicationViewed    = "viewed"
	ApplicationInterview = "interview"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
)

// ValidApplicationStatus reports whether s is a recognized application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationViewed, ApplicationInterview,
		ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Interview types.
const (
	InterviewInPerson = "in-person"
	InterviewPhone    = "phone"
	InterviewVideo    = "video"
)

// Interview is a scheduled interview round attached to an application.
type Interview struct {
	Date     time.Time `json:"date" dynamodbav:"date"`
	Location string    `json:"location" dynamodbav:"location"`
	Type     string    `json:"type" dynamodbav:"type"`
	Notes    string    `json:"notes,omitempty" dynamodbav:"notes"`
}

// ApplicationNote is a free-text employer note on an application.
type ApplicationNote struct {
	Content   string    `json:"content" dynamodbav:"content"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

// Application is one jobseeker's candidacy for one job. At most one
// application may exist per (job, user) pair; the applications table
// enforces this with its composite primary key and a conditional put.
type Application struct {
	ApplicationID    string            `json:"id" dynamodbav:"application_id"`
	JobID            string            `json:"job_id" dynamodbav:"job_id"`
	UserID           string            `json:"user_id" dynamodbav:"user_id"`
	ProfileID        string            `json:"profile_id" dynamodbav:"profile_id"`
	CoverLetter      string            `json:"cover_letter,omitempty" dynamodbav:"cover_letter"`
	AttachedCV       string            `json:"attached_cv,omitempty" dynamodbav:"attached_cv"`
	Status           string            `json:"status" dynamodbav:"application_status"`
	Notes            []ApplicationNote `json:"notes,omitempty" dynamodbav:"notes"`
	EmployerFeedback string            `json:"employer_feedback,omitempty" dynamodbav:"employer_feedback"`
	Interviews       []Interview       `json:"interviews,omitempty" dynamodbav:"interviews"`
	CreatedAt        time.Time         `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time         `json:"updated" dynamodbav:"updated_at"`

	// Job is hydrated by the service layer for read responses. Never stored.
	Job *Job `json:"job,omitempty" dynamodbav:"-"`
}

// MarkViewed transitions a pending application to viewed. It is idempotent:
// in any state other than pending it does nothing and reports false.
func (a *Application) MarkViewed() bool {
	if a.Status != ApplicationPending {
		return false
	}
	a.Status = ApplicationViewed
	return true
}

type ApplyRequest struct {
	JobID       string `json:"job_id" validate:"required"`
	CoverLetter string `json:"cover_letter"`
}

type UpdateApplicationStatusRequest struct {
	Status   string `json:"status" validate:"required"`
	Feedback string `json:"feedback"`
}

type ScheduleInterviewRequest struct {
	Date     string `json:"date" validate:"required"` // RFC 3339
	Location string `json:"location" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=in-person phone video"`
	Notes    string `json:"notes"`
}

type AddNoteRequest struct {
	Content string `json:"content" validate:"required"`
}
