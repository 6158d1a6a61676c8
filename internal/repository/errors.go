package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateEmail indicates a write hit the unique email index.
	ErrDuplicateEmail = errors.New("repository: email already taken")
)

// translate maps GORM errors onto repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return err
	}
}
