package auth

import (
	"context"
	"io"
	"testing"

	"github.com/jobboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockFileStore struct{ mock.Mock }

func (m *mockFileStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

type mockJWTSigner struct{ mock.Mock }

func (m *mockJWTSigner) Sign(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func newTestService() (Service, *mockUserStore, *mockJWTSigner) {
	us := &mockUserStore{}
	signer := &mockJWTSigner{}
	svc := NewService(ServiceDeps{
		UserRepo:    us,
		Files:       &mockFileStore{},
		JWTProvider: signer,
		ContentType: func(string) string { return "image/png" },
	})
	return svc, us, signer
}

// --- Register ---

func TestRegister_WeakPasswords(t *testing.T) {
	svc, _, _ := newTestService()
	for _, pw := range []string{
		"alllowercase1!", // no uppercase
		"NoDigitsHere!",  // no digit
		"NoSpecial123",   // no special character
	} {
		_, err := svc.Register(context.Background(), domain.RegisterRequest{
			Name: "Ada", Email: "ada@example.com", Password: pw, Role: domain.RoleJobseeker,
		})
		assert.ErrorIs(t, err, domain.ErrBadRequest, "password %q should be rejected", pw)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, us, _ := newTestService()
	us.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&domain.User{UserID: "u1", Email: "ada@example.com"}, nil)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "Str0ng&Pass", Role: domain.RoleJobseeker,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_Success(t *testing.T) {
	svc, us, signer := newTestService()
	us.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	signer.On("Sign", mock.Anything, domain.RoleEmployer).Return("token-123", nil)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "Str0ng&Pass", Role: domain.RoleEmployer,
	})
	require.NoError(t, err)
	assert.Equal(t, "token-123", res.Bearer)
	assert.Equal(t, domain.RoleEmployer, res.User.Role)
	assert.NotEmpty(t, res.User.UserID)
	// The stored hash must verify against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("Str0ng&Pass")))
}

// --- Login ---

func TestLogin_UnknownEmail(t *testing.T) {
	svc, us, _ := newTestService()
	us.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, us, _ := newTestService()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Right1!pass"), bcrypt.MinCost)
	us.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "ada@example.com", Password: "Wrong1!pass",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_Success(t *testing.T) {
	svc, us, signer := newTestService()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Right1!pass"), bcrypt.MinCost)
	us.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&domain.User{UserID: "u1", Role: domain.RoleJobseeker, PasswordHash: string(hash)}, nil)
	signer.On("Sign", "u1", domain.RoleJobseeker).Return("token-456", nil)

	res, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "ada@example.com", Password: "Right1!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-456", res.Bearer)
}
