package notification

import (
	"fmt"

	"github.com/jobboard-api/internal/domain"
)

// All user-facing notification copy lives here so wording changes never
// touch the services that emit the events.

func newApplicationCopy(applicantName, jobTitle string) (title, message string) {
	return "New application received",
		fmt.Sprintf("%s applied for %s.", applicantName, jobTitle)
}

func applicationViewedCopy(jobTitle string) (title, message string) {
	return "Application viewed",
		fmt.Sprintf("The employer viewed your application for %s.", jobTitle)
}

func statusChangedCopy(status, jobTitle, feedback string) (title, message string) {
	title = "Application status updated"
	switch status {
	case domain.ApplicationAccepted:
		message = fmt.Sprintf("Congratulations! Your application for %s has been accepted.", jobTitle)
	case domain.ApplicationRejected:
		message = fmt.Sprintf("Your application for %s has been rejected.", jobTitle)
	case domain.ApplicationInterview:
		message = fmt.Sprintf("You have been invited to interview for %s.", jobTitle)
	default:
		message = fmt.Sprintf("Your application for %s is now %s.", jobTitle, status)
	}
	if feedback != "" {
		message += " Feedback: " + feedback
	}
	return title, message
}

func interviewScheduledCopy(jobTitle string, iv domain.Interview) (title, message string) {
	return "Interview scheduled",
		fmt.Sprintf("Interview for %s on %s (%s) at %s.",
			jobTitle, iv.Date.Format("Jan 2, 2006 15:04"), iv.Type, iv.Location)
}

func messageReceivedCopy(senderName string) (title, message string) {
	return "New message", fmt.Sprintf("%s sent you a message.", senderName)
}

// Deep links differ by audience: employers manage applications under
// /employer, jobseekers track theirs under /jobseeker.
func employerApplicationLink(applicationID string) string {
	return "/employer/applications/" + applicationID
}

func jobseekerApplicationLink(applicationID string) string {
	return "/jobseeker/applications/" + applicationID
}

func conversationLink(senderID string) string {
	return "/messages/" + senderID
}
