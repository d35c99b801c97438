package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/application"
	"github.com/jobboard-api/internal/config"
	"github.com/jobboard-api/internal/domain"
	jwtinfra "github.com/jobboard-api/internal/infrastructure/jwt"
	"github.com/jobboard-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockApplicationSvc struct{ mock.Mock }

func (m *mockApplicationSvc) Apply(ctx context.Context, actor domain.Actor, req domain.ApplyRequest, cv *application.CVUpload) (*domain.Application, error) {
	args := m.Called(ctx, actor, req, cv)
	if a, _ := args.Get(0).(*domain.Application); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationSvc) Get(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error) {
	args := m.Called(ctx, actor, applicationID)
	if a, _ := args.Get(0).(*domain.Application); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationSvc) ListByJob(ctx context.Context, actor domain.Actor, jobID string) ([]domain.Application, error) {
	args := m.Called(ctx, actor, jobID)
	if apps, _ := args.Get(0).([]domain.Application); apps != nil {
		return apps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationSvc) ListMine(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if apps, _ := args.Get(0).([]domain.Application); apps != nil {
		return apps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationSvc) UpdateStatus(ctx context.Context, actor domain.Actor, applicationID string, req domain.UpdateApplicationStatusRequest) (*domain.Application, error) {
	args := m.Called(ctx, actor, applicationID, req)
	if a, _ := args.Get(0).(*domain.Application); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationSvc) ScheduleInterview(ctx context.Context, actor domain.Actor, applicationID string, req domain.ScheduleInterviewRequest) (*domain.Application, error) {
	args := m.Called(ctx, actor, applicationID, req)
	if a, _ := args.Get(0).(*domain.Application); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationSvc) AddNote(ctx context.Context, actor domain.Actor, applicationID string, req domain.AddNoteRequest) (*domain.Application, error) {
	args := m.Called(ctx, actor, applicationID, req)
	if a, _ := args.Get(0).(*domain.Application); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationSvc) DownloadCV(ctx context.Context, actor domain.Actor, applicationID string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, actor, applicationID)
	if rc, _ := args.Get(0).(io.ReadCloser); rc != nil {
		return rc, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

// --- helpers ---

// newTestJWTProvider generates a fresh RSA key pair and returns a *jwtinfra.Provider.
func newTestJWTProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	p, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTExpiry:         24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

// bearerReq builds a request with a signed Bearer token for the given userID and role.
func bearerReq(t *testing.T, p *jwtinfra.Provider, method, target, userID, role string, body []byte) *http.Request {
	t.Helper()
	token, err := p.Sign(userID, role)
	require.NoError(t, err)
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// withChiParam injects a chi URL param into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serveAuthed wraps the handler with middleware.Auth before serving.
func serveAuthed(p *jwtinfra.Provider, h http.Handler, w http.ResponseWriter, r *http.Request) {
	middleware.Auth(p)(h).ServeHTTP(w, r)
}

// applicationEnvelope mirrors Envelope with a typed Data field for decoding.
type applicationEnvelope struct {
	Success bool                `json:"success"`
	Data    *domain.Application `json:"data"`
	Count   *int                `json:"count"`
	Error   string              `json:"error"`
}

// --- Apply tests ---

func TestApply_MissingClaims(t *testing.T) {
	svc := &mockApplicationSvc{}
	h := NewApplicationHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/applications", nil)
	rr := httptest.NewRecorder()
	h.Apply(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestApply_ValidationFailure(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	h := NewApplicationHandler(svc)
	body, _ := json.Marshal(domain.ApplyRequest{CoverLetter: "hi"}) // missing job_id

	r := bearerReq(t, p, http.MethodPost, "/v1/applications", "seeker-1", domain.RoleJobseeker, body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Apply), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestApply_JSON_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	created := &domain.Application{ApplicationID: "a1", JobID: "j1", UserID: "seeker-1", Status: domain.ApplicationPending}
	actor := domain.Actor{UserID: "seeker-1", Role: domain.RoleJobseeker}
	svc.On("Apply", mock.Anything, actor, domain.ApplyRequest{JobID: "j1", CoverLetter: "hi"}, (*application.CVUpload)(nil)).
		Return(created, nil)
	h := NewApplicationHandler(svc)
	body, _ := json.Marshal(domain.ApplyRequest{JobID: "j1", CoverLetter: "hi"})

	r := bearerReq(t, p, http.MethodPost, "/v1/applications", "seeker-1", domain.RoleJobseeker, body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Apply), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp applicationEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "a1", resp.Data.ApplicationID)
	assert.Equal(t, domain.ApplicationPending, resp.Data.Status)
	svc.AssertExpectations(t)
}

func TestApply_Multipart_PassesCV(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	created := &domain.Application{ApplicationID: "a1", JobID: "j1", UserID: "seeker-1"}
	svc.On("Apply", mock.Anything, mock.Anything, domain.ApplyRequest{JobID: "j1", CoverLetter: "hello"},
		mock.MatchedBy(func(cv *application.CVUpload) bool {
			return cv != nil && cv.Filename == "resume.pdf"
		})).Return(created, nil)
	h := NewApplicationHandler(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("job_id", "j1"))
	require.NoError(t, mw.WriteField("cover_letter", "hello"))
	fw, err := mw.CreateFormFile("cv", "resume.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	token, err := p.Sign("seeker-1", domain.RoleJobseeker)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/v1/applications", &buf)
	r.Header.Set("Authorization", "Bearer "+token)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Apply), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	svc.AssertExpectations(t)
}

func TestApply_DuplicateApplication(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	svc.On("Apply", mock.Anything, mock.Anything, mock.Anything, (*application.CVUpload)(nil)).
		Return(nil, fmt.Errorf("already applied to this job: %w", domain.ErrConflict))
	h := NewApplicationHandler(svc)
	body, _ := json.Marshal(domain.ApplyRequest{JobID: "j1"})

	r := bearerReq(t, p, http.MethodPost, "/v1/applications", "seeker-1", domain.RoleJobseeker, body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Apply), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp applicationEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "already applied")
	svc.AssertExpectations(t)
}

// --- Get tests ---

func TestGetApplication_Forbidden(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	svc.On("Get", mock.Anything, mock.Anything, "a1").
		Return(nil, fmt.Errorf("application:view not permitted: %w", domain.ErrForbidden))
	h := NewApplicationHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/applications/a1", "stranger", domain.RoleJobseeker, nil)
	r = withChiParam(r, "id", "a1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Get), rr, r)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	svc.AssertExpectations(t)
}

func TestGetApplication_NotFound(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	svc.On("Get", mock.Anything, mock.Anything, "missing").
		Return(nil, fmt.Errorf("application: %w", domain.ErrNotFound))
	h := NewApplicationHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/applications/missing", "seeker-1", domain.RoleJobseeker, nil)
	r = withChiParam(r, "id", "missing")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Get), rr, r)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}

// --- ListByJob tests ---

func TestListByJob_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	apps := []domain.Application{
		{ApplicationID: "a1", JobID: "j1", UserID: "seeker-1"},
		{ApplicationID: "a2", JobID: "j1", UserID: "seeker-2"},
	}
	actor := domain.Actor{UserID: "employer-1", Role: domain.RoleEmployer}
	svc.On("ListByJob", mock.Anything, actor, "j1").Return(apps, nil)
	h := NewApplicationHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/jobs/j1/applications", "employer-1", domain.RoleEmployer, nil)
	r = withChiParam(r, "jobID", "j1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.ListByJob), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Success bool                 `json:"success"`
		Data    []domain.Application `json:"data"`
		Count   *int                 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
	assert.Len(t, resp.Data, 2)
	svc.AssertExpectations(t)
}

// --- UpdateStatus tests ---

func TestUpdateStatus_InvalidBody(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	h := NewApplicationHandler(svc)

	r := bearerReq(t, p, http.MethodPut, "/v1/applications/a1/status", "employer-1", domain.RoleEmployer, []byte("not-json"))
	r = withChiParam(r, "id", "a1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.UpdateStatus), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatus_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	updated := &domain.Application{ApplicationID: "a1", Status: domain.ApplicationAccepted}
	req := domain.UpdateApplicationStatusRequest{Status: domain.ApplicationAccepted, Feedback: "welcome aboard"}
	svc.On("UpdateStatus", mock.Anything, mock.Anything, "a1", req).Return(updated, nil)
	h := NewApplicationHandler(svc)
	body, _ := json.Marshal(req)

	r := bearerReq(t, p, http.MethodPut, "/v1/applications/a1/status", "employer-1", domain.RoleEmployer, body)
	r = withChiParam(r, "id", "a1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.UpdateStatus), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp applicationEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, domain.ApplicationAccepted, resp.Data.Status)
	svc.AssertExpectations(t)
}

// --- ScheduleInterview tests ---

func TestScheduleInterview_ValidationFailure(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	h := NewApplicationHandler(svc)
	// "onsite" is not an accepted interview type
	body, _ := json.Marshal(domain.ScheduleInterviewRequest{Date: "2026-09-15T10:00:00Z", Location: "HQ", Type: "onsite"})

	r := bearerReq(t, p, http.MethodPost, "/v1/applications/a1/interviews", "employer-1", domain.RoleEmployer, body)
	r = withChiParam(r, "id", "a1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.ScheduleInterview), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScheduleInterview_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	updated := &domain.Application{ApplicationID: "a1", Status: domain.ApplicationInterview}
	req := domain.ScheduleInterviewRequest{Date: "2026-09-15T10:00:00Z", Location: "HQ", Type: domain.InterviewVideo}
	svc.On("ScheduleInterview", mock.Anything, mock.Anything, "a1", req).Return(updated, nil)
	h := NewApplicationHandler(svc)
	body, _ := json.Marshal(req)

	r := bearerReq(t, p, http.MethodPost, "/v1/applications/a1/interviews", "employer-1", domain.RoleEmployer, body)
	r = withChiParam(r, "id", "a1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.ScheduleInterview), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

// --- DownloadCV tests ---

func TestDownloadCV_StreamsAttachment(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	content := "%PDF-1.4 fake cv"
	rc := io.NopCloser(strings.NewReader(content))
	svc.On("DownloadCV", mock.Anything, mock.Anything, "a1").Return(rc, "cvs/seeker-1/01ABC-resume.pdf", nil)
	h := NewApplicationHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/applications/a1/cv", "seeker-1", domain.RoleJobseeker, nil)
	r = withChiParam(r, "id", "a1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.DownloadCV), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, content, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "01ABC-resume.pdf")
	svc.AssertExpectations(t)
}

func TestDownloadCV_NoCVOnFile(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockApplicationSvc{}
	svc.On("DownloadCV", mock.Anything, mock.Anything, "a1").
		Return(nil, "", fmt.Errorf("no cv attached: %w", domain.ErrNotFound))
	h := NewApplicationHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/applications/a1/cv", "seeker-1", domain.RoleJobseeker, nil)
	r = withChiParam(r, "id", "a1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.DownloadCV), rr, r)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}
