package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UpdateUserRequest is the payload for the admin account edit form
type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=buyer seller admin"`
}

// AccountDTO is the read model for the admin account listing
type AccountDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"role"`
	Language    string    `json:"language"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserService handles admin account administration. Route-level role
// middleware keeps these operations admin-only.
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.Named("users"),
	}
}

// List returns a paginated account listing
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[AccountDTO], error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(toAccountDTOs(users), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns one account
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*AccountDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toAccountDTO(user)
	return &dto, nil
}

// Update edits an account's name, email, and role
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*AccountDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Email != req.Email {
		if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil && existing.ID != id {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if err := user.Update(req.Name, req.Email, identity.Role(req.Role)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user updated",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	dto := toAccountDTO(user)
	return &dto, nil
}

// Delete removes an account. Admins cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	if requesterID == id {
		return shared.NewDomainError("CANNOT_DELETE_SELF", "You cannot delete your own account")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func toAccountDTO(user *identity.User) AccountDTO {
	return AccountDTO{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
		Language:    string(user.Language),
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

func toAccountDTOs(users []identity.User) []AccountDTO {
	dtos := make([]AccountDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, toAccountDTO(&users[i]))
	}
	return dtos
}
