package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is an issued access/refresh token set
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// TokenService issues and validates session tokens
type TokenService interface {
	GeneratePair(user *identity.User) (TokenPair, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	Language    string `json:"language"`
	AsSeller    bool   `json:"asSeller"`
}

// LoginRequest is the signin payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the read model for an account
type UserDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Language string `json:"language"`
}

// AuthResponse bundles the account and its session tokens
type AuthResponse struct {
	User   UserDTO   `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// AuthService handles registration and login
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.Named("auth"),
	}
}

// Register creates a new account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := identity.RoleBuyer
	if req.AsSeller {
		role = identity.RoleSeller
	}
	user, err := identity.NewUser(req.Name, req.Email, req.PhoneNumber, string(hash), role)
	if err != nil {
		return nil, err
	}
	if req.Language != "" {
		user.SetLanguage(identity.Language(req.Language))
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return s.respond(user)
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	return s.respond(user)
}

// Refresh exchanges a refresh token for a fresh pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}
	return s.respond(user)
}

func (s *AuthService) respond(user *identity.User) (*AuthResponse, error) {
	pair, err := s.tokens.GeneratePair(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User: UserDTO{
			ID:       user.ID.String(),
			Name:     user.Name,
			Email:    user.Email,
			Role:     string(user.Role),
			Language: string(user.Language),
		},
		Tokens: pair,
	}, nil
}
