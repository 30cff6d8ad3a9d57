package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notemaker-server/internal/domain"
	"notemaker-server/internal/repository"
	"notemaker-server/pkg/jwt"

	"go.uber.org/zap"
)

type AuthService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	log           *zap.SugaredLogger
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExp time.Duration, log *zap.SugaredLogger) *AuthService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExp,
		log:           log,
	}
}

// Register creates the account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.TokenResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Infow("user registered", "user_id", user.ID)
	return s.issue(user.ID)
}

func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

// VerifyToken returns the user id carried by a valid token.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims, err := jwt.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return claims.UserID, nil
}

func (s *AuthService) issue(userID string) (*domain.TokenResponse, error) {
	token, err := jwt.GenerateToken(userID, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &domain.TokenResponse{Token: token}, nil
}
