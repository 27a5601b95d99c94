package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"itemhub/internal/auth"
	"itemhub/internal/domain"
	"itemhub/internal/repository"
)

// ErrUnknownSubject is returned when a valid token names a user that no
// longer exists. It matches domain.ErrInvalidToken.
var ErrUnknownSubject = fmt.Errorf("%w: user does not exist", domain.ErrInvalidToken)

// TokenPair is what a successful login hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService resolves credentials and bearer tokens into users.
type AuthService interface {
	// Authenticate checks username and password. Disabled users pass here;
	// they are stopped by RequireActive on protected routes.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// Login authenticates and mints an access/refresh pair for the user.
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	// Refresh verifies a refresh token and mints a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// ResolveToken verifies an access token and loads its subject.
	ResolveToken(ctx context.Context, accessToken string) (*domain.User, error)
	// RequireActive rejects disabled users.
	RequireActive(user *domain.User) (*domain.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.Issuer
}

func NewAuthService(users repository.UserRepository, tokens *auth.Issuer) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
	}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Operation("Error fetching user.", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil || !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return user.Sanitized(), nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.IssueAccess(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrInvalidToken
	}
	subject, err := s.tokens.Verify(refreshToken, auth.Refresh)
	if err != nil {
		return "", err
	}
	user, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("refresh for %q: %w", subject, ErrUnknownSubject)
		}
		return "", domain.Operation("Error fetching user.", err)
	}
	access, err := s.tokens.IssueAccess(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

func (s *authService) ResolveToken(ctx context.Context, accessToken string) (*domain.User, error) {
	subject, err := s.tokens.Verify(accessToken, auth.Access)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("resolve %q: %w", subject, ErrUnknownSubject)
		}
		return nil, domain.Operation("Error fetching user.", err)
	}
	return user.Sanitized(), nil
}

func (s *authService) RequireActive(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	if user.Disabled {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}
