package router

import (
	"context"

	"github.com/stretchr/testify/mock"

	"userapi/internal/auth"
	"userapi/internal/model"
	"userapi/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

var _ service.AuthService = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) ResolveIdentity(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) ListUsers(ctx context.Context, page int) ([]model.User, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return m.userResult(m.Called(ctx, id))
}

func (m *MockUserService) CreateUser(ctx context.Context, name, email, password string) (*model.User, error) {
	return m.userResult(m.Called(ctx, name, email, password))
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uint, name, email string) (*model.User, error) {
	return m.userResult(m.Called(ctx, id, name, email))
}

func (m *MockUserService) UpdatePassword(ctx context.Context, id uint, password string) (*model.User, error) {
	return m.userResult(m.Called(ctx, id, password))
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uint) (*model.User, error) {
	return m.userResult(m.Called(ctx, id))
}

func (m *MockUserService) userResult(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
