package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"userapi/internal/auth"
	"userapi/internal/config"
	"userapi/internal/db"
	"userapi/internal/logger"
	"userapi/internal/model"
	"userapi/internal/repository"
)

// SeedUserData is one entry of the seed file.
type SeedUserData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func main() {
	file := flag.String("file", "", "JSON file with an array of {name,email,password}")
	flag.Parse()

	cfg := config.Load()
	log := logger.New("userapi-seed", cfg.LogLevel)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, false, log); err != nil {
		log.Error("migrate", "error", err)
		os.Exit(1)
	}

	var users []SeedUserData
	if *file != "" {
		users, err = loadUsersFromFile(*file)
		if err != nil {
			log.Error("load seed file", "file", *file, "error", err)
			os.Exit(1)
		}
	} else {
		users = []SeedUserData{defaultUser()}
	}

	seeded, updated, err := seedUsers(context.Background(), repository.NewUserRepository(gormDB), users, cfg.BcryptCost, log)
	if err != nil {
		log.Error("seed users", "error", err)
		os.Exit(1)
	}
	log.Info("seed completed", "created", seeded, "updated", updated, "total", seeded+updated)
}

func defaultUser() SeedUserData {
	return SeedUserData{
		Name:     getEnv("SEED_NAME", "Admin"),
		Email:    getEnv("SEED_EMAIL", "admin@example.com"),
		Password: getEnv("SEED_PASSWORD", "secret123"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadUsersFromFile(path string) ([]SeedUserData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeUsers(f)
}

func decodeUsers(r io.Reader) ([]SeedUserData, error) {
	var users []SeedUserData
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return users, nil
}

// seedUsers creates missing users and refreshes the name and password of existing ones, matched by email.
func seedUsers(ctx context.Context, repo repository.UserRepository, users []SeedUserData, cost int, log *slog.Logger) (seeded int, updated int, err error) {
	for _, item := range users {
		if item.Email == "" || item.Password == "" {
			log.Warn("skipping seed entry without email or password", "name", item.Name)
			continue
		}

		hash, err := auth.HashPassword(item.Password, cost)
		if err != nil {
			return seeded, updated, fmt.Errorf("hash password for %s: %w", item.Email, err)
		}

		existing, err := repo.FindByEmail(ctx, item.Email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return seeded, updated, fmt.Errorf("error checking user %s: %w", item.Email, err)
		}

		if existing != nil {
			existing.Name = item.Name
			err = repo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
				if err := tx.Update(ctx, existing); err != nil {
					return err
				}
				return tx.UpdatePassword(ctx, existing.ID, hash)
			})
			if err != nil {
				return seeded, updated, fmt.Errorf("error updating user %s: %w", item.Email, err)
			}
			updated++
			continue
		}

		user := &model.User{Name: item.Name, Email: item.Email, Password: hash}
		if err := repo.Create(ctx, user); err != nil {
			return seeded, updated, fmt.Errorf("error creating user %s: %w", item.Email, err)
		}
		seeded++
	}

	return seeded, updated, nil
}
