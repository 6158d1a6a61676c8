package config

import (
	"os"
	"strconv"
	"time"
)

const defaultMySQLDSN = "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	DBDriver      string
	DatabaseDSN   string
	ResetDB       bool
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	TokenTTL      time.Duration
	RevocationTTL time.Duration
	BcryptCost    int
	UserCacheTTL  time.Duration
	LogLevel      string
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN:   getEnv("DATABASE_DSN", getEnv("MYSQL_DSN", defaultMySQLDSN)),
		ResetDB:       getEnvBool("RESET_DB", false),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 0),
		RevocationTTL: getEnvDuration("REVOCATION_TTL", 30*24*time.Hour),
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		UserCacheTTL:  getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("15m", "720h") and plain seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if parsed, err := time.ParseDuration(v); err == nil {
		return parsed
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
