package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"userapi/internal/auth"
	apperrors "userapi/internal/errors"
	"userapi/internal/model"
	"userapi/internal/repository"
)

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	stored := &model.User{ID: 7, Name: "Ana", Email: "ana@x.com", Password: string(hashedPassword)}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "ana@x.com",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "ana@x.com",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@x.com",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, repository.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "lookup failure is reported as bad credentials",
			email:    "ana@x.com",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(nil, errors.New("db down"))
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", 0)
			service := NewAuthService(mockRepo, nil, jwtService, mockTokenStore, time.Hour, nil)

			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)

				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, stored.ID, claims.UserID)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertNotCalled(t, "RevokeToken", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

type stubUserService struct {
	UserService
	user *model.User
	err  error
}

func (s stubUserService) GetUser(context.Context, uint) (*model.User, error) {
	return s.user, s.err
}

func TestAuthService_ResolveIdentity(t *testing.T) {
	claims := &auth.Claims{UserID: 7, RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1"}}
	live := &model.User{ID: 7, Email: "ana@x.com"}

	tests := []struct {
		name          string
		revoked       bool
		users         UserService
		expectedError error
	}{
		{name: "live user", users: stubUserService{user: live}},
		{name: "revoked token", revoked: true, users: stubUserService{user: live}, expectedError: apperrors.ErrUnauthenticated},
		{name: "deleted user", users: stubUserService{err: apperrors.ErrUserNotFound}, expectedError: apperrors.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokenStore := new(MockTokenStore)
			mockTokenStore.On("IsTokenRevoked", mock.Anything, "jti-1").Return(tt.revoked, nil)

			service := NewAuthService(nil, tt.users, auth.NewJWTService("s", 0), mockTokenStore, time.Hour, nil)
			user, err := service.ResolveIdentity(context.Background(), claims)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, live, user)
			}
			mockTokenStore.AssertExpectations(t)
		})
	}

	t.Run("nil claims", func(t *testing.T) {
		service := NewAuthService(nil, nil, auth.NewJWTService("s", 0), new(MockTokenStore), time.Hour, nil)
		_, err := service.ResolveIdentity(context.Background(), nil)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("token without expiry is remembered for the revocation ttl", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("RevokeToken", mock.Anything, "jti-1", 24*time.Hour).Return(nil)

		service := NewAuthService(nil, nil, auth.NewJWTService("s", 0), mockTokenStore, 24*time.Hour, nil)
		err := service.Logout(context.Background(), &auth.Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1"}})

		require.NoError(t, err)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("expiring token is remembered until it expires", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("RevokeToken", mock.Anything, "jti-2", mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > 9*time.Minute && ttl <= 10*time.Minute
		})).Return(nil)

		claims := &auth.Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-2",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
		}}
		service := NewAuthService(nil, nil, auth.NewJWTService("s", 0), mockTokenStore, 24*time.Hour, nil)

		require.NoError(t, service.Logout(context.Background(), claims))
		mockTokenStore.AssertExpectations(t)
	})
}
