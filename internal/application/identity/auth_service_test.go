package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GeneratePair(user *identity.User) (TokenPair, error) {
	args := m.Called(user)
	return args.Get(0).(TokenPair), args.Error(1)
}

func (m *MockTokenService) ParseRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := new(MockTokenService)

	repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	tokens.On("GeneratePair", mock.Anything).Return(TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil)

	service := NewAuthService(repo, tokens, zap.NewNop())
	resp, err := service.Register(context.Background(), RegisterRequest{
		Name:        "New User",
		Email:       "new@example.com",
		PhoneNumber: "+213550000009",
		Password:    "s3cret-pass",
		Language:    "en",
	})

	require.NoError(t, err)
	assert.Equal(t, "buyer", resp.User.Role)
	assert.Equal(t, "en", resp.User.Language)
	assert.Equal(t, "a", resp.Tokens.AccessToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	existing, err := identity.NewUser("Existing", "dup@example.com", "", "hash", identity.RoleBuyer)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "dup@example.com").Return(existing, nil)

	service := NewAuthService(repo, new(MockTokenService), zap.NewNop())
	_, err = service.Register(context.Background(), RegisterRequest{
		Name: "X", Email: "dup@example.com", PhoneNumber: "1", Password: "s3cret-pass",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := identity.NewUser("U", "u@example.com", "", string(hash), identity.RoleSeller)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	tokens := new(MockTokenService)
	repo.On("FindByEmail", mock.Anything, "u@example.com").Return(user, nil)
	tokens.On("GeneratePair", user).Return(TokenPair{AccessToken: "a"}, nil)

	service := NewAuthService(repo, tokens, zap.NewNop())

	resp, err := service.Login(context.Background(), LoginRequest{Email: "u@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "seller", resp.User.Role)

	_, err = service.Login(context.Background(), LoginRequest{Email: "u@example.com", Password: "wrong"})
	assert.Error(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	service := NewAuthService(repo, new(MockTokenService), zap.NewNop())
	_, err := service.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestRefresh(t *testing.T) {
	user, err := identity.NewUser("U", "u@example.com", "", "hash", identity.RoleBuyer)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	tokens := new(MockTokenService)
	tokens.On("ParseRefreshToken", "good").Return(user.ID, nil)
	tokens.On("ParseRefreshToken", "bad").Return(uuid.Nil, assert.AnError)
	tokens.On("GeneratePair", user).Return(TokenPair{AccessToken: "fresh"}, nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	service := NewAuthService(repo, tokens, zap.NewNop())

	resp, err := service.Refresh(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "fresh", resp.Tokens.AccessToken)

	_, err = service.Refresh(context.Background(), "bad")
	assert.Error(t, err)
}
