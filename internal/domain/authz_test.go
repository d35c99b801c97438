package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	app := &Application{ApplicationID: "a1", JobID: "j1", UserID: "seeker-1"}
	job := &Job{JobID: "j1", UserID: "employer-1"}

	tests := []struct {
		name    string
		action  Action
		actor   Actor
		allowed bool
	}{
		{"admin can view", ActionViewApplication, Actor{UserID: "x", Role: RoleAdmin}, true},
		{"admin can manage", ActionManageApplication, Actor{UserID: "x", Role: RoleAdmin}, true},
		{"job owner can view", ActionViewApplication, Actor{UserID: "employer-1", Role: RoleEmployer}, true},
		{"job owner can manage", ActionManageApplication, Actor{UserID: "employer-1", Role: RoleEmployer}, true},
		{"applicant can view", ActionViewApplication, Actor{UserID: "seeker-1", Role: RoleJobseeker}, true},
		{"applicant cannot manage", ActionManageApplication, Actor{UserID: "seeker-1", Role: RoleJobseeker}, false},
		{"other employer cannot view", ActionViewApplication, Actor{UserID: "employer-2", Role: RoleEmployer}, false},
		{"other jobseeker cannot view", ActionViewApplication, Actor{UserID: "seeker-2", Role: RoleJobseeker}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.action, tt.actor, app, job)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}
