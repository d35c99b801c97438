package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

// Fanout creates notifications as a side effect of other writes. Delivery is
// best effort: a failed insert never fails the operation that triggered it,
// it is logged and dropped.
type Fanout struct {
	repo notificationStore
}

func NewFanout(repo notificationStore) *Fanout {
	return &Fanout{repo: repo}
}

func (f *Fanout) emit(ctx context.Context, n *domain.Notification) {
	now := time.Now().UTC()
	n.NotificationID = id.New()
	n.Read = false
	n.CreatedAt = now
	n.UpdatedAt = now
	if err := f.repo.Put(ctx, n); err != nil {
		slog.Warn("notification fan-out failed",
			"type", n.Type, "user_id", n.UserID, "err", err)
	}
}

// ApplicationSubmitted tells the job owner a new application arrived.
func (f *Fanout) ApplicationSubmitted(ctx context.Context, applicantName string, app *domain.Application, job *domain.Job) {
	title, msg := newApplicationCopy(applicantName, job.Title)
	f.emit(ctx, &domain.Notification{
		UserID:    job.UserID,
		Type:      domain.NotificationNewApplication,
		Title:     title,
		Message:   msg,
		RelatedTo: &domain.RelatedTo{Model: domain.RelatedApplication, ID: app.ApplicationID},
		Link:      employerApplicationLink(app.ApplicationID),
	})
}

// ApplicationViewed tells the applicant the employer opened their application.
func (f *Fanout) ApplicationViewed(ctx context.Context, app *domain.Application, job *domain.Job) {
	title, msg := applicationViewedCopy(job.Title)
	f.emit(ctx, &domain.Notification{
		UserID:    app.UserID,
		Type:      domain.NotificationApplicationStatus,
		Title:     title,
		Message:   msg,
		RelatedTo: &domain.RelatedTo{Model: domain.RelatedApplication, ID: app.ApplicationID},
		Link:      jobseekerApplicationLink(app.ApplicationID),
	})
}

// StatusChanged tells the applicant their application moved to a new status.
func (f *Fanout) StatusChanged(ctx context.Context, status, feedback string, app *domain.Application, job *domain.Job) {
	title, msg := statusChangedCopy(status, job.Title, feedback)
	f.emit(ctx, &domain.Notification{
		UserID:    app.UserID,
		Type:      domain.NotificationApplicationStatus,
		Title:     title,
		Message:   msg,
		RelatedTo: &domain.RelatedTo{Model: domain.RelatedApplication, ID: app.ApplicationID},
		Link:      jobseekerApplicationLink(app.ApplicationID),
	})
}

// InterviewScheduled tells the applicant an interview round was booked.
func (f *Fanout) InterviewScheduled(ctx context.Context, iv domain.Interview, app *domain.Application, job *domain.Job) {
	title, msg := interviewScheduledCopy(job.Title, iv)
	f.emit(ctx, &domain.Notification{
		UserID:    app.UserID,
		Type:      domain.NotificationInterviewInvitation,
		Title:     title,
		Message:   msg,
		RelatedTo: &domain.RelatedTo{Model: domain.RelatedApplication, ID: app.ApplicationID},
		Link:      jobseekerApplicationLink(app.ApplicationID),
	})
}

// MessageReceived tells the receiver a direct message arrived.
func (f *Fanout) MessageReceived(ctx context.Context, receiverID, senderID, senderName, messageID string) {
	title, msg := messageReceivedCopy(senderName)
	f.emit(ctx, &domain.Notification{
		UserID:    receiverID,
		Type:      domain.NotificationMessage,
		Title:     title,
		Message:   msg,
		RelatedTo: &domain.RelatedTo{Model: domain.RelatedMessage, ID: messageID},
		Link:      conversationLink(senderID),
	})
}
