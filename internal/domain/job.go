package domain

import "time"

// Job posting statuses. Only active jobs accept applications.
const (
	JobStatusActive  = "active"
	JobStatusClosed  = "closed"
	JobStatusDraft   = "draft"
	JobStatusExpired = "expired"
)

// ValidJobStatus reports whether s is a recognized job status.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusDraft, JobStatusExpired:
		return true
	}
	return false
}

type Job struct {
	JobID               string    `json:"id" dynamodbav:"job_id"`
	CompanyID           string    `json:"company_id" dynamodbav:"company_id"`
	UserID              string    `json:"user_id" dynamodbav:"user_id"`
	Title               string    `json:"title" dynamodbav:"title"`
	Description         string    `json:"description" dynamodbav:"description"`
	Requirements        string    `json:"requirements" dynamodbav:"requirements"`
	Benefits            string    `json:"benefits" dynamodbav:"benefits"`
	Location            string    `json:"location" dynamodbav:"location"`
	JobType             string    `json:"job_type" dynamodbav:"job_type"`
	Category            string    `json:"category" dynamodbav:"category"`
	Skills              []string  `json:"skills,omitempty" dynamodbav:"skills"`
	ExperienceLevel     string    `json:"experience_level" dynamodbav:"experience_level"`
	EducationLevel      string    `json:"education_level" dynamodbav:"education_level"`
	SalaryMin           int       `json:"salary_min,omitempty" dynamodbav:"salary_min"`
	SalaryMax           int       `json:"salary_max,omitempty" dynamodbav:"salary_max"`
	SalaryCurrency      string    `json:"salary_currency" dynamodbav:"salary_currency"`
	ShowSalary          bool      `json:"show_salary" dynamodbav:"show_salary"`
	Status              string    `json:"status" dynamodbav:"job_status"`
	ApplicationDeadline time.Time `json:"application_deadline" dynamodbav:"application_deadline"`
	Views               int       `json:"views" dynamodbav:"view_count"`
	Featured            bool      `json:"featured" dynamodbav:"featured"`
	CreatedAt           time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt           time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateJobRequest struct {
	Title               string   `json:"title" validate:"required,max=100"`
	Description         string   `json:"description" validate:"required"`
	Requirements        string   `json:"requirements" validate:"required"`
	Benefits            string   `json:"benefits" validate:"required"`
	Location            string   `json:"location" validate:"required"`
	JobType             string   `json:"job_type" validate:"required,oneof=full-time part-time contract freelance internship"`
	Category            string   `json:"category" validate:"required"`
	Skills              []string `json:"skills"`
	ExperienceLevel     string   `json:"experience_level" validate:"required,oneof=entry junior mid-level senior executive"`
	EducationLevel      string   `json:"education_level" validate:"omitempty,oneof=high-school associate bachelor master phd any"`
	SalaryMin           int      `json:"salary_min"`
	SalaryMax           int      `json:"salary_max"`
	SalaryCurrency      string   `json:"salary_currency"`
	ShowSalary          bool     `json:"show_salary"`
	ApplicationDeadline string   `json:"application_deadline" validate:"required"` // YYYY-MM-DD
	Featured            bool     `json:"featured"`
}

type UpdateJobRequest struct {
	Title               *string  `json:"title" validate:"omitempty,max=100"`
	Description         *string  `json:"description"`
	Requirements        *string  `json:"requirements"`
	Benefits            *string  `json:"benefits"`
	Location            *string  `json:"location"`
	JobType             *string  `json:"job_type" validate:"omitempty,oneof=full-time part-time contract freelance internship"`
	Category            *string  `json:"category"`
	Skills              []string `json:"skills"`
	ExperienceLevel     *string  `json:"experience_level" validate:"omitempty,oneof=entry junior mid-level senior executive"`
	EducationLevel      *string  `json:"education_level" validate:"omitempty,oneof=high-school associate bachelor master phd any"`
	SalaryMin           *int     `json:"salary_min"`
	SalaryMax           *int     `json:"salary_max"`
	SalaryCurrency      *string  `json:"salary_currency"`
	ShowSalary          *bool    `json:"show_salary"`
	ApplicationDeadline *string  `json:"application_deadline"` // YYYY-MM-DD
	Featured            *bool    `json:"featured"`
}
