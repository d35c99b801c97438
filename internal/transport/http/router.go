package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	appsvc "github.com/jobboard-api/internal/application/application"
	"github.com/jobboard-api/internal/application/auth"
	"github.com/jobboard-api/internal/application/category"
	"github.com/jobboard-api/internal/application/company"
	"github.com/jobboard-api/internal/application/job"
	"github.com/jobboard-api/internal/application/message"
	"github.com/jobboard-api/internal/application/notification"
	"github.com/jobboard-api/internal/application/profile"
	"github.com/jobboard-api/internal/application/savedjob"
	"github.com/jobboard-api/internal/config"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/jobboard-api/internal/infrastructure/jwt"
	s3infra "github.com/jobboard-api/internal/infrastructure/s3"
	"github.com/jobboard-api/internal/infrastructure/smtp"
	"github.com/jobboard-api/internal/transport/http/handler"
	appmiddleware "github.com/jobboard-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	JobRepo          *dynamo.JobRepo
	ApplicationRepo  *dynamo.ApplicationRepo
	SavedJobRepo     *dynamo.SavedJobRepo
	CompanyRepo      *dynamo.CompanyRepo
	ProfileRepo      *dynamo.ProfileRepo
	NotificationRepo *dynamo.NotificationRepo
	MessageRepo      *dynamo.MessageRepo
	CategoryRepo     *dynamo.CategoryRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	fanout := notification.NewFanout(deps.NotificationRepo)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:    deps.UserRepo,
		Files:       deps.S3Store,
		JWTProvider: deps.JWTProvider,
		ContentType: s3infra.DetectContentType,
	})
	jobSvc := job.NewService(deps.JobRepo, deps.CompanyRepo)
	applicationSvc := appsvc.NewService(appsvc.ServiceDeps{
		ApplicationRepo: deps.ApplicationRepo,
		JobRepo:         deps.JobRepo,
		UserRepo:        deps.UserRepo,
		ProfileRepo:     deps.ProfileRepo,
		Files:           deps.S3Store,
		Notifier:        fanout,
		Mailer:          deps.Mailer,
		ContentType:     s3infra.DetectContentType,
	})
	savedJobSvc := savedjob.NewService(deps.SavedJobRepo, deps.JobRepo)
	companySvc := company.NewService(deps.CompanyRepo, deps.S3Store, s3infra.DetectContentType)
	profileSvc := profile.NewService(deps.ProfileRepo, deps.S3Store, s3infra.DetectContentType)
	notificationSvc := notification.NewService(deps.NotificationRepo)
	messageSvc := message.NewService(deps.MessageRepo, deps.UserRepo, fanout)
	categorySvc := category.NewService(deps.CategoryRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	jobH := handler.NewJobHandler(jobSvc)
	applicationH := handler.NewApplicationHandler(applicationSvc)
	savedJobH := handler.NewSavedJobHandler(savedJobSvc)
	companyH := handler.NewCompanyHandler(companySvc)
	profileH := handler.NewProfileHandler(profileSvc)
	notificationH := handler.NewNotificationHandler(notificationSvc)
	messageH := handler.NewMessageHandler(messageSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.Get("/jobs", jobH.List)
		r.Get("/jobs/{id}", jobH.Get)
		r.Get("/companies", companyH.List)
		r.Get("/companies/{id}", companyH.Get)
		r.Get("/categories", categoryH.List)
		r.Get("/categories/{id}", categoryH.Get)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/me", authH.Me)
			r.Post("/auth/avatar", authH.UploadAvatar)

			r.Get("/applications/{id}", applicationH.Get)
			r.Get("/applications/{id}/cv", applicationH.DownloadCV)

			r.Get("/notifications", notificationH.List)
			r.Put("/notifications/read-all", notificationH.MarkAllAsRead)
			r.Put("/notifications/{id}/read", notificationH.MarkAsRead)
			r.Delete("/notifications/{id}", notificationH.Delete)

			r.Post("/messages", messageH.Send)
			r.Get("/messages/conversations", messageH.Conversations)
			r.Get("/messages/{userID}", messageH.Conversation)
			r.Put("/messages/{userID}/read", messageH.MarkRead)

			r.Get("/profiles", profileH.List)
			r.Get("/profiles/{userID}", profileH.GetByUser)

			// Jobseeker routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleJobseeker, domain.RoleAdmin))

				r.Post("/applications", applicationH.Apply)
				r.Get("/my/applications", applicationH.ListMine)

				r.Get("/my/saved-jobs", savedJobH.List)
				r.Post("/jobs/{jobID}/save", savedJobH.Save)
				r.Delete("/jobs/{jobID}/save", savedJobH.Unsave)

				r.Put("/my/profile", profileH.Upsert)
				r.Get("/my/profile", profileH.GetMine)
				r.Delete("/my/profile", profileH.Delete)
				r.Post("/my/profile/education", profileH.AddEducation)
				r.Delete("/my/profile/education/{eduID}", profileH.DeleteEducation)
				r.Post("/my/profile/experience", profileH.AddExperience)
				r.Delete("/my/profile/experience/{expID}", profileH.DeleteExperience)
				r.Post("/my/profile/cv", profileH.UploadCV)
				r.Get("/my/profile/cv", profileH.DownloadCV)
				r.Delete("/my/profile/cv", profileH.DeleteCV)
			})

			// Employer routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleEmployer, domain.RoleAdmin))

				r.Put("/my/company", companyH.Upsert)
				r.Get("/my/company", companyH.GetMine)
				r.Post("/my/company/logo", companyH.UploadLogo)

				r.Post("/jobs", jobH.Create)
				r.Get("/my/jobs", jobH.ListMine)
				r.Put("/jobs/{id}", jobH.Update)
				r.Put("/jobs/{id}/status", jobH.ChangeStatus)
				r.Delete("/jobs/{id}", jobH.Delete)

				r.Get("/jobs/{jobID}/applications", applicationH.ListByJob)
				r.Put("/applications/{id}/status", applicationH.UpdateStatus)
				r.Post("/applications/{id}/interviews", applicationH.ScheduleInterview)
				r.Post("/applications/{id}/notes", applicationH.AddNote)
			})

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/categories", categoryH.Create)
				r.Put("/categories/{id}", categoryH.Update)
				r.Delete("/categories/{id}", categoryH.Delete)
			})
		})
	})

	return r
}
