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
)

func TestListUsers(t *testing.T) {
	repo := new(MockUserRepository)
	buyer, err := identity.NewUser("Buyer", "buyer@example.com", "+213550000001", "hash", identity.RoleBuyer)
	require.NoError(t, err)
	seller, err := identity.NewUser("Seller", "seller@example.com", "", "hash", identity.RoleSeller)
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	repo.On("FindAll", mock.Anything, filter).Return([]identity.User{*buyer, *seller}, nil)
	repo.On("Count", mock.Anything, filter).Return(int64(2), nil)

	service := NewUserService(repo, zap.NewNop())
	page, err := service.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "buyer@example.com", page.Items[0].Email)
	assert.Equal(t, "seller", page.Items[1].Role)
	assert.Empty(t, page.Items[1].PhoneNumber)
}

func TestUpdateUserChangesRole(t *testing.T) {
	repo := new(MockUserRepository)
	user, err := identity.NewUser("U", "u@example.com", "", "hash", identity.RoleBuyer)
	require.NoError(t, err)
	version := user.Version

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	service := NewUserService(repo, zap.NewNop())
	dto, err := service.Update(context.Background(), user.ID, UpdateUserRequest{
		Name:  "U",
		Email: "u@example.com",
		Role:  "seller",
	})

	require.NoError(t, err)
	assert.Equal(t, "seller", dto.Role)
	assert.Equal(t, version+1, user.Version)
	repo.AssertCalled(t, "Save", mock.Anything, user)
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	repo := new(MockUserRepository)
	user, err := identity.NewUser("U", "u@example.com", "", "hash", identity.RoleBuyer)
	require.NoError(t, err)
	other, err := identity.NewUser("Other", "taken@example.com", "", "hash", identity.RoleBuyer)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("FindByEmail", mock.Anything, "taken@example.com").Return(other, nil)

	service := NewUserService(repo, zap.NewNop())
	_, err = service.Update(context.Background(), user.ID, UpdateUserRequest{
		Name:  "U",
		Email: "taken@example.com",
		Role:  "buyer",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateUserUnknownAccount(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	service := NewUserService(repo, zap.NewNop())
	_, err := service.Update(context.Background(), uuid.New(), UpdateUserRequest{
		Name: "X", Email: "x@example.com", Role: "buyer",
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	repo := new(MockUserRepository)
	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(nil)

	service := NewUserService(repo, zap.NewNop())
	assert.NoError(t, service.Delete(context.Background(), uuid.New(), id))
	repo.AssertCalled(t, "Delete", mock.Anything, id)
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	repo := new(MockUserRepository)
	admin := uuid.New()

	service := NewUserService(repo, zap.NewNop())
	err := service.Delete(context.Background(), admin, admin)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CANNOT_DELETE_SELF", domainErr.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
