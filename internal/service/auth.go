package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
	"github.com/Rrens/llm-query-gateway/internal/domain"
	"github.com/Rrens/llm-query-gateway/internal/security"
)

const tokenTypeBearer = "bearer"

// AuthService handles login and bearer token resolution
type AuthService struct {
	userRepo   domain.UserRepository
	jwtManager *security.JWTManager
	hasher     *security.PasswordHasher
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	jwtManager *security.JWTManager,
	hasher *security.PasswordHasher,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		hasher:     hasher,
		now:        time.Now,
	}
}

// Login checks the credentials and issues an access token whose subject is
// the user's email
func (s *AuthService) Login(ctx context.Context, input domain.UserLogin) (*domain.Token, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !s.hasher.Verify(user.PasswordHash, input.Password) {
		log.Info().Str("email", input.Email).Msg("Login rejected")
		return nil, apperror.Unauthenticated("Incorrect email or password")
	}

	accessToken, err := s.jwtManager.Issue(user.Email, s.now(), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.Token{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
	}, nil
}

// ResolveToken validates a bearer token and loads the user it names
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.jwtManager.Validate(token, s.now())
	if err != nil {
		return nil, apperror.Unauthenticated("Could not validate credentials")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

// ListUsers returns every user
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
