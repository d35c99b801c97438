package domain

import "time"

// Education is one schooling entry on a jobseeker profile.
type Education struct {
	EducationID  string    `json:"id" dynamodbav:"education_id"`
	School       string    `json:"school" dynamodbav:"school"`
	Degree       string    `json:"degree" dynamodbav:"degree"`
	FieldOfStudy string    `json:"field_of_study,omitempty" dynamodbav:"field_of_study"`
	From         time.Time `json:"from" dynamodbav:"from"`
	To           time.Time `json:"to,omitempty" dynamodbav:"to"`
	Current      bool      `json:"current" dynamodbav:"current"`
	Description  string    `json:"description,omitempty" dynamodbav:"description"`
}

// Experience is one work-history entry on a jobseeker profile.
type Experience struct {
	ExperienceID string    `json:"id" dynamodbav:"experience_id"`
	Company      string    `json:"company" dynamodbav:"company"`
	Title        string    `json:"title" dynamodbav:"title"`
	Location     string    `json:"location,omitempty" dynamodbav:"location"`
	From         time.Time `json:"from" dynamodbav:"from"`
	To           time.Time `json:"to,omitempty" dynamodbav:"to"`
	Current      bool      `json:"current" dynamodbav:"current"`
	Description  string    `json:"description,omitempty" dynamodbav:"description"`
}

// JobseekerProfile is keyed by the owning user: one profile per jobseeker.
// CVFile holds the object-store key of the stored CV, empty when none is
// uploaded. Applying for a job requires either a stored CV or a one-off
// upload with the application itself.
type JobseekerProfile struct {
	UserID     string       `json:"user_id" dynamodbav:"user_id"`
	ProfileID  string       `json:"id" dynamodbav:"profile_id"`
	Title      string       `json:"title" dynamodbav:"title"`
	Bio        string       `json:"bio,omitempty" dynamodbav:"bio"`
	Skills     []string     `json:"skills,omitempty" dynamodbav:"skills"`
	Education  []Education  `json:"education,omitempty" dynamodbav:"education"`
	Experience []Experience `json:"experience,omitempty" dynamodbav:"experience"`
	CVFile     string       `json:"cv_file,omitempty" dynamodbav:"cv_file"`
	Location   string       `json:"location,omitempty" dynamodbav:"location"`
	Website    string       `json:"website,omitempty" dynamodbav:"website"`
	CreatedAt  time.Time    `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time    `json:"updated" dynamodbav:"updated_at"`
}

type ProfileInput struct {
	Title    string   `json:"title" validate:"required,max=100"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
	Website  string   `json:"website" validate:"omitempty,url"`
}

type EducationInput struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from" validate:"required"` // YYYY-MM-DD
	To           string `json:"to"`                       // YYYY-MM-DD
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

type ExperienceInput struct {
	Company     string `json:"company" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"` // YYYY-MM-DD
	To          string `json:"to"`                       // YYYY-MM-DD
	Current     bool   `json:"current"`
	Description string `json:"description"`
}
