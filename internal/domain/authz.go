package domain

import "fmt"

// Actor is the authenticated caller as seen by authorization checks.
type Actor struct {
	UserID string
	Role   string
}

// Action names a protected operation on an application.
type Action string

const (
	// ActionViewApplication covers reads of an application and its CV.
	ActionViewApplication Action = "application:view"
	// ActionManageApplication covers status updates, interview scheduling
	// and note additions.
	ActionManageApplication Action = "application:manage"
)

// Authorize evaluates a capability check for an application and its parent
// job. Admins may do anything; the job's owning employer may view and
// manage; the applicant may only view. Every handler-level ownership rule
// funnels through here so the policy lives in one place.
func Authorize(action Action, actor Actor, app *Application, job *Job) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	switch action {
	case ActionManageApplication:
		if job.UserID == actor.UserID {
			return nil
		}
	case ActionViewApplication:
		if job.UserID == actor.UserID || app.UserID == actor.UserID {
			return nil
		}
	}
	return fmt.Errorf("%s not permitted: %w", action, ErrForbidden)
}
