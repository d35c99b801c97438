package domain

import "time"

// Company is an employer's public profile. Each employer owns at most one.
type Company struct {
	CompanyID   string    `json:"id" dynamodbav:"company_id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	Industry    string    `json:"industry,omitempty" dynamodbav:"industry"`
	CompanySize string    `json:"company_size,omitempty" dynamodbav:"company_size"`
	Website     string    `json:"website,omitempty" dynamodbav:"website"`
	Location    string    `json:"location,omitempty" dynamodbav:"location"`
	FoundedYear int       `json:"founded_year,omitempty" dynamodbav:"founded_year"`
	Logo        string    `json:"logo,omitempty" dynamodbav:"logo"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CompanyInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
	Website     string `json:"website" validate:"omitempty,url"`
	Location    string `json:"location"`
	FoundedYear int    `json:"founded_year"`
}
