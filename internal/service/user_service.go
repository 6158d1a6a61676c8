package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"userapi/internal/auth"
	"userapi/internal/cache"
	apperrors "userapi/internal/errors"
	"userapi/internal/model"
	"userapi/internal/repository"
)

// PageSize is the fixed number of users per listing page.
const PageSize = 40

// UserService exposes domain operations.
type UserService interface {
	ListUsers(ctx context.Context, page int) ([]model.User, int64, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	CreateUser(ctx context.Context, name, email, password string) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, name, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, password string) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) (*model.User, error)
}

type userService struct {
	repo       repository.UserRepository
	cache      *cache.Client
	log        *slog.Logger
	bcryptCost int
	cacheTTL   time.Duration
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, log *slog.Logger, bcryptCost int, cacheTTL time.Duration) UserService {
	if log == nil {
		log = slog.Default()
	}
	return &userService{
		repo:       repo,
		cache:      cache,
		log:        log,
		bcryptCost: bcryptCost,
		cacheTTL:   cacheTTL,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) ListUsers(ctx context.Context, page int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	users, total, err := s.repo.Paginate(ctx, page, PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, s.cacheTTL)
	}
	return user, nil
}

// CreateUser hashes the password and inserts the user in its own transaction.
func (s *userService) CreateUser(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.log.ErrorContext(ctx, "hash password failed", "op", "create", "error", err)
		return nil, apperrors.ErrUserNotCreated
	}

	user := &model.User{Name: name, Email: email, Password: hash}
	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		return tx.Create(ctx, user)
	})
	if err != nil {
		s.logWriteFailure(ctx, "create", 0, err)
		return nil, apperrors.ErrUserNotCreated
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, name, email string) (*model.User, error) {
	var updated *model.User
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		user, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		user.Name = name
		user.Email = email
		if err := tx.Update(ctx, user); err != nil {
			return err
		}
		updated, err = tx.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.writeError(ctx, "update", id, err, apperrors.ErrUserNotUpdated)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return updated, nil
}

func (s *userService) UpdatePassword(ctx context.Context, id uint, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.log.ErrorContext(ctx, "hash password failed", "op", "update_password", "user_id", id, "error", err)
		return nil, apperrors.ErrPasswordNotUpdated
	}

	var updated *model.User
	err = s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		if _, err := tx.FindByID(ctx, id); err != nil {
			return err
		}
		if err := tx.UpdatePassword(ctx, id, hash); err != nil {
			return err
		}
		updated, err = tx.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.writeError(ctx, "update_password", id, err, apperrors.ErrPasswordNotUpdated)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return updated, nil
}

// DeleteUser hard-deletes the user and returns the record as it was before deletion.
func (s *userService) DeleteUser(ctx context.Context, id uint) (*model.User, error) {
	var deleted *model.User
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		user, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(ctx, id); err != nil {
			return err
		}
		deleted = user
		return nil
	})
	if err != nil {
		return nil, s.writeError(ctx, "delete", id, err, apperrors.ErrUserNotDeleted)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return deleted, nil
}

// writeError turns a failed transaction into the operation's failure sentinel.
// A missing row is reported as not found; every other cause is logged and hidden.
func (s *userService) writeError(ctx context.Context, op string, id uint, err error, failure error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrUserNotFound
	}
	s.logWriteFailure(ctx, op, id, err)
	return failure
}

func (s *userService) logWriteFailure(ctx context.Context, op string, id uint, err error) {
	if errors.Is(err, repository.ErrDuplicateEmail) {
		s.log.WarnContext(ctx, "user write rejected", "op", op, "user_id", id, "reason", "duplicate email")
		return
	}
	s.log.ErrorContext(ctx, "user write failed", "op", op, "user_id", id, "error", err)
}
