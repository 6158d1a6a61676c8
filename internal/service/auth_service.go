package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"userapi/internal/auth"
	apperrors "userapi/internal/errors"
	"userapi/internal/model"
	"userapi/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	ResolveIdentity(ctx context.Context, claims *auth.Claims) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo      repository.UserRepository
	users         UserService
	jwtService    *auth.JWTService
	tokenStore    auth.TokenStoreInterface
	revocationTTL time.Duration
	log           *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	users UserService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	revocationTTL time.Duration,
	log *slog.Logger,
) AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &authService{
		userRepo:      userRepo,
		users:         users,
		jwtService:    jwtService,
		tokenStore:    tokenStore,
		revocationTTL: revocationTTL,
		log:           log,
	}
}

// Login verifies the credentials and issues a new bearer token. Failures have no side effects.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.ErrorContext(ctx, "login lookup failed", "error", err)
		}
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.ComparePassword(user.Password, password); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.IssueToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return token, user, nil
}

// ResolveIdentity maps validated token claims to a live user.
// Revoked tokens and tokens of deleted users are rejected.
func (s *authService) ResolveIdentity(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	if claims == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	revoked, err := s.tokenStore.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the presented token.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.ErrUnauthenticated
	}
	ttl := auth.RemainingLifetime(claims, s.revocationTTL)
	if err := s.tokenStore.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.InfoContext(ctx, "token revoked", "user_id", claims.UserID)
	return nil
}
