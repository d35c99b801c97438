package auth

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const fieldAvatar = "avatar"

type LoginResult struct {
	Bearer string       `json:"token"`
	User   *domain.User `json:"user"`
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*LoginResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UploadAvatar(ctx context.Context, userID, filename string, data io.Reader) (*domain.User, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type fileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

type contentTypeFunc func(filename string) string

type service struct {
	repo        userStore
	files       fileStore
	jwtProvider jwtSigner
	contentType contentTypeFunc
}

type ServiceDeps struct {
	UserRepo    userStore
	Files       fileStore
	JWTProvider jwtSigner
	ContentType contentTypeFunc
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.UserRepo,
		files:       deps.Files,
		jwtProvider: deps.JWTProvider,
		contentType: deps.ContentType,
	}
}

// checkPasswordStrength enforces the password policy beyond the length rule
// the validate tag covers: at least one uppercase letter, one digit and one
// special character.
func checkPasswordStrength(pw string) error {
	var upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !digit || !special {
		return fmt.Errorf("password needs an uppercase letter, a digit and a special character: %w", domain.ErrBadRequest)
	}
	return nil
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*LoginResult, error) {
	if err := checkPasswordStrength(req.Password); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}

	bearer, err := s.jwtProvider.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Bearer: bearer, User: u}, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	bearer, err := s.jwtProvider.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Bearer: bearer, User: u}, nil
}

func (s *service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) UploadAvatar(ctx context.Context, userID, filename string, data io.Reader) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("avatars/%s/%s-%s", userID, id.New(), filename)
	if _, err := s.files.Upload(ctx, key, data, s.contentType(filename)); err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldAvatar: key}); err != nil {
		return nil, err
	}
	u.Avatar = key
	return u, nil
}
