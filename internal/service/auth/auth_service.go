package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/wookrail/trainbooking/internal/domain"
	"github.com/wookrail/trainbooking/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Whoami(ctx context.Context, token string) (string, error)
}

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, owner string) (string, error)
	SessionOwner(ctx context.Context, token string) (string, error)
	RevokeSession(ctx context.Context, token string) error
}

type AuthService struct {
	users    repository.UserRepository
	sessions SessionStore
	log      *zap.Logger
}

func NewAuthService(users repository.UserRepository, sessions SessionStore, log *zap.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: username already exists", domain.ErrConflict)
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("username", username))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	// Unknown user and wrong password both report ErrUnauthorized.
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrUnauthorized
	}

	token, err := s.sessions.CreateSession(ctx, user.Username)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.RevokeSession(ctx, token)
}

func (s *AuthService) Whoami(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	return s.sessions.SessionOwner(ctx, token)
}

var _ AuthUseCase = (*AuthService)(nil)
