package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldStatus     = "application_status"
	fieldFeedback   = "employer_feedback"
	fieldInterviews = "interviews"
	fieldNotes      = "notes"
)

// CVUpload is a CV file submitted together with an application.
type CVUpload struct {
	Filename string
	Data     io.Reader
}

type Service interface {
	Apply(ctx context.Context, actor domain.Actor, req domain.ApplyRequest, cv *CVUpload) (*domain.Application, error)
	Get(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error)
	ListByJob(ctx context.Context, actor domain.Actor, jobID string) ([]domain.Application, error)
	ListMine(ctx context.Context, userID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, applicationID string, req domain.UpdateApplicationStatusRequest) (*domain.Application, error)
	ScheduleInterview(ctx context.Context, actor domain.Actor, applicationID string, req domain.ScheduleInterviewRequest) (*domain.Application, error)
	AddNote(ctx context.Context, actor domain.Actor, applicationID string, req domain.AddNoteRequest) (*domain.Application, error)
	DownloadCV(ctx context.Context, actor domain.Actor, applicationID string) (io.ReadCloser, string, error)
}

type applicationStore interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, applicationID string) (*domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	Update(ctx context.Context, jobID, userID string, updates map[string]interface{}) error
}

type jobStore interface {
	Get(ctx context.Context, jobID string) (*domain.Job, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type profileStore interface {
	GetByUser(ctx context.Context, userID string) (*domain.JobseekerProfile, error)
}

type fileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

type notifier interface {
	ApplicationSubmitted(ctx context.Context, applicantName string, app *domain.Application, job *domain.Job)
	ApplicationViewed(ctx context.Context, app *domain.Application, job *domain.Job)
	StatusChanged(ctx context.Context, status, feedback string, app *domain.Application, job *domain.Job)
	InterviewScheduled(ctx context.Context, iv domain.Interview, app *domain.Application, job *domain.Job)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type contentTypeFunc func(filename string) string

type service struct {
	repo        applicationStore
	jobRepo     jobStore
	userRepo    userStore
	profileRepo profileStore
	files       fileStore
	notify      notifier
	mail        mailer
	contentType contentTypeFunc
}

type ServiceDeps struct {
	ApplicationRepo applicationStore
	JobRepo         jobStore
	UserRepo        userStore
	ProfileRepo     profileStore
	Files           fileStore
	Notifier        notifier
	Mailer          mailer
	ContentType     contentTypeFunc
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.ApplicationRepo,
		jobRepo:     deps.JobRepo,
		userRepo:    deps.UserRepo,
		profileRepo: deps.ProfileRepo,
		files:       deps.Files,
		notify:      deps.Notifier,
		mail:        deps.Mailer,
		contentType: deps.ContentType,
	}
}

// Apply creates an application after running the submission guards in order:
// the job must exist and be active, the deadline must not have passed, the
// caller needs a jobseeker profile, and a CV must be available either from
// the profile or uploaded with the request. One application per job per user
// is enforced by the store, not by a read-then-write check.
func (s *service) Apply(ctx context.Context, actor domain.Actor, req domain.ApplyRequest, cv *CVUpload) (*domain.Application, error) {
	job, err := s.jobRepo.Get(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusActive {
		return nil, fmt.Errorf("job is not accepting applications: %w", domain.ErrBadRequest)
	}
	if !job.ApplicationDeadline.IsZero() && time.Now().After(job.ApplicationDeadline) {
		return nil, fmt.Errorf("application deadline has passed: %w", domain.ErrBadRequest)
	}

	profile, err := s.profileRepo.GetByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("a jobseeker profile is required to apply: %w", domain.ErrBadRequest)
	}

	cvKey := profile.CVFile
	if cv != nil {
		key := fmt.Sprintf("cvs/%s/%s-%s", actor.UserID, id.New(), cv.Filename)
		if _, err := s.files.Upload(ctx, key, cv.Data, s.contentType(cv.Filename)); err != nil {
			return nil, fmt.Errorf("upload cv: %w", err)
		}
		cvKey = key
	}
	if cvKey == "" {
		return nil, fmt.Errorf("a CV is required to apply: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	app := &domain.Application{
		ApplicationID: id.New(),
		JobID:         job.JobID,
		UserID:        actor.UserID,
		ProfileID:     profile.ProfileID,
		CoverLetter:   req.CoverLetter,
		AttachedCV:    cvKey,
		Status:        domain.ApplicationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	applicantName := actor.UserID
	if u, err := s.userRepo.Get(ctx, actor.UserID); err == nil {
		applicantName = u.Name
	}
	s.notify.ApplicationSubmitted(ctx, applicantName, app, job)

	app.Job = job
	return app, nil
}

// Get returns one application with its job hydrated. When the job's owner
// reads a pending application it transitions to viewed and the applicant is
// notified.
func (s *service) Get(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.Get(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(domain.ActionViewApplication, actor, app, job); err != nil {
		return nil, err
	}

	if actor.UserID == job.UserID && app.MarkViewed() {
		if err := s.repo.Update(ctx, app.JobID, app.UserID, map[string]interface{}{
			fieldStatus: app.Status,
		}); err != nil {
			return nil, err
		}
		s.notify.ApplicationViewed(ctx, app, job)
	}

	app.Job = job
	return app, nil
}

func (s *service) ListByJob(ctx context.Context, actor domain.Actor, jobID string) ([]domain.Application, error) {
	job, err := s.jobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("not your job posting: %w", domain.ErrForbidden)
	}
	return s.repo.ListByJob(ctx, jobID)
}

// ListMine returns the caller's applications, newest first, each with its
// job hydrated. A job that has since been deleted leaves Job nil.
func (s *service) ListMine(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		job, err := s.jobRepo.Get(ctx, apps[i].JobID)
		if err != nil {
			slog.Warn("could not hydrate job for application",
				"application_id", apps[i].ApplicationID, "job_id", apps[i].JobID, "err", err)
			continue
		}
		apps[i].Job = job
	}
	return apps, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor domain.Actor, applicationID string, req domain.UpdateApplicationStatusRequest) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(req.Status) {
		return nil, fmt.Errorf("unknown application status %q: %w", req.Status, domain.ErrBadRequest)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.Get(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(domain.ActionManageApplication, actor, app, job); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{fieldStatus: req.Status}
	if req.Feedback != "" {
		updates[fieldFeedback] = req.Feedback
	}
	if err := s.repo.Update(ctx, app.JobID, app.UserID, updates); err != nil {
		return nil, err
	}
	app.Status = req.Status
	if req.Feedback != "" {
		app.EmployerFeedback = req.Feedback
	}

	s.notify.StatusChanged(ctx, req.Status, req.Feedback, app, job)

	app.Job = job
	return app, nil
}

// ScheduleInterview appends an interview round, forces the application into
// interview status and notifies the applicant in-app and by email. The email
// is best effort.
func (s *service) ScheduleInterview(ctx context.Context, actor domain.Actor, applicationID string, req domain.ScheduleInterviewRequest) (*domain.Application, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid interview date: %w", domain.ErrBadRequest)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.Get(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(domain.ActionManageApplication, actor, app, job); err != nil {
		return nil, err
	}

	iv := domain.Interview{
		Date:     date,
		Location: req.Location,
		Type:     req.Type,
		Notes:    req.Notes,
	}
	app.Interviews = append(app.Interviews, iv)
	app.Status = domain.ApplicationInterview
	if err := s.repo.Update(ctx, app.JobID, app.UserID, map[string]interface{}{
		fieldStatus:     app.Status,
		fieldInterviews: app.Interviews,
	}); err != nil {
		return nil, err
	}

	s.notify.InterviewScheduled(ctx, iv, app, job)
	s.sendInterviewEmail(ctx, app, job, iv)

	app.Job = job
	return app, nil
}

func (s *service) sendInterviewEmail(ctx context.Context, app *domain.Application, job *domain.Job, iv domain.Interview) {
	u, err := s.userRepo.Get(ctx, app.UserID)
	if err != nil {
		slog.Warn("could not load applicant for interview email",
			"application_id", app.ApplicationID, "err", err)
		return
	}
	subject := "Interview invitation: " + job.Title
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYou have been invited to a %s interview for %s.\r\nDate: %s\r\nLocation: %s\r\n",
		u.Name, iv.Type, job.Title, iv.Date.Format("Jan 2, 2006 15:04"), iv.Location)
	if iv.Notes != "" {
		body += "\r\n" + iv.Notes + "\r\n"
	}
	if err := s.mail.SendEmail(u.Email, subject, body); err != nil {
		slog.Warn("could not send interview email",
			"application_id", app.ApplicationID, "to", u.Email, "err", err)
	}
}

func (s *service) AddNote(ctx context.Context, actor domain.Actor, applicationID string, req domain.AddNoteRequest) (*domain.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.Get(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(domain.ActionManageApplication, actor, app, job); err != nil {
		return nil, err
	}

	app.Notes = append(app.Notes, domain.ApplicationNote{
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	})
	if err := s.repo.Update(ctx, app.JobID, app.UserID, map[string]interface{}{
		fieldNotes: app.Notes,
	}); err != nil {
		return nil, err
	}
	app.Job = job
	return app, nil
}

// DownloadCV streams the CV attached to an application. Returns the object
// key alongside the stream so handlers can derive a filename.
func (s *service) DownloadCV(ctx context.Context, actor domain.Actor, applicationID string) (io.ReadCloser, string, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, "", err
	}
	job, err := s.jobRepo.Get(ctx, app.JobID)
	if err != nil {
		return nil, "", err
	}
	if err := domain.Authorize(domain.ActionViewApplication, actor, app, job); err != nil {
		return nil, "", err
	}
	if app.AttachedCV == "" {
		return nil, "", fmt.Errorf("no CV attached: %w", domain.ErrNotFound)
	}
	rc, err := s.files.Download(ctx, app.AttachedCV)
	if err != nil {
		return nil, "", err
	}
	return rc, app.AttachedCV, nil
}
