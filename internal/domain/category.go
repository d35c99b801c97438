package domain

import "time"

// Category is a job classification entry managed by admins.
type Category struct {
	CategoryID  string    `json:"id" dynamodbav:"category_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Type        string    `json:"type,omitempty" dynamodbav:"type"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
