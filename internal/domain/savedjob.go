package domain

import "time"

// SavedJob is a jobseeker's bookmark of a job posting. The saved_jobs table
// is keyed (user, job), so a job can be saved at most once per user.
type SavedJob struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	JobID     string    `json:"job_id" dynamodbav:"job_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`

	// Job is hydrated by the service layer for read responses. Never stored.
	Job *Job `json:"job,omitempty" dynamodbav:"-"`
}
