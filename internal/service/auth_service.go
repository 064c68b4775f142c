package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"
	"finance-tracker/pkg/auth"

	"go.uber.org/zap"
)

const minPasswordLength = 8

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type AuthService struct {
	users      UserStore
	accounts   *AccountService
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(users UserStore, accounts *AccountService, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		accounts:   accounts,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates the user together with a default checking account.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(email) {
		return nil, invalid("email", "must be a valid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, invalid("password", "must be at least 8 characters")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FirstName:    cleanText(req.FirstName),
		LastName:     cleanText(req.LastName),
		PasswordHash: hashedPassword,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, storageError(s.logger, "register", "user", 0, err)
	}

	if _, err := s.accounts.CreateAccount(ctx, user.ID, CreateAccountInput{Name: "Main Account", IsDefault: true}); err != nil {
		s.logger.Warn("Failed to create default account", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError(s.logger, "login", "user", 0, err)
	}

	if !user.IsActive || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError(s.logger, "refresh_token", "user", claims.UserID, err)
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	_, domain, _ := strings.Cut(email, "@")
	return strings.Contains(domain, ".")
}
