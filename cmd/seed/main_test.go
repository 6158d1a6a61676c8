package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"userapi/internal/auth"
	"userapi/internal/db"
	"userapi/internal/repository"
)

func TestSeedUsers_CreateThenUpdate(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gormDB, err := db.Open(db.DriverSQLite, "file::memory:", log)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false, log))

	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	users, err := decodeUsers(strings.NewReader(`[
		{"name":"Admin","email":"admin@example.com","password":"secret123"},
		{"name":"Ops","email":"ops@example.com","password":"opspass1"},
		{"name":"Broken","email":"","password":"x"}
	]`))
	require.NoError(t, err)

	seeded, updated, err := seedUsers(ctx, repo, users, bcrypt.MinCost, log)
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)
	assert.Zero(t, updated)

	seeded, updated, err = seedUsers(ctx, repo, []SeedUserData{
		{Name: "Root", Email: "admin@example.com", Password: "rotated99"},
	}, bcrypt.MinCost, log)
	require.NoError(t, err)
	assert.Zero(t, seeded)
	assert.Equal(t, 1, updated)

	admin, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Root", admin.Name)
	assert.NoError(t, auth.ComparePassword(admin.Password, "rotated99"))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestDecodeUsers_Invalid(t *testing.T) {
	_, err := decodeUsers(strings.NewReader(`{"name":"not an array"}`))
	assert.ErrorContains(t, err, "failed to parse JSON")
}

func TestDefaultUser(t *testing.T) {
	t.Setenv("SEED_NAME", "")
	t.Setenv("SEED_EMAIL", "boot@example.com")
	t.Setenv("SEED_PASSWORD", "")

	u := defaultUser()

	assert.Equal(t, "Admin", u.Name)
	assert.Equal(t, "boot@example.com", u.Email)
	assert.Equal(t, "secret123", u.Password)
}
