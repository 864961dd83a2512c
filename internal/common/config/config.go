package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
)

type ForumConfig struct {
	HTTPPort         string
	DatabaseURL      string
	RequestTimeout   time.Duration
	BcryptCost       int
	AuthRateLimit    float64
	AuthRateBurst    int
	GeneralRateLimit float64
	GeneralRateBurst int
	AutoMigrate      bool
	LogDir           string
	LogLevel         string
}

func LoadForumConfig() (ForumConfig, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return ForumConfig{}, err
	}

	return ForumConfig{
		HTTPPort:         getEnv("FORUM_HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:      databaseURL,
		RequestTimeout:   getDurationEnv("FORUM_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		BcryptCost:       getIntEnv("FORUM_BCRYPT_COST", constants.DefaultBcryptCost),
		AuthRateLimit:    getFloatEnv("FORUM_AUTH_RATE_LIMIT", constants.DefaultAuthRateLimit),
		AuthRateBurst:    getIntEnv("FORUM_AUTH_RATE_BURST", constants.DefaultAuthRateBurst),
		GeneralRateLimit: getFloatEnv("FORUM_RATE_LIMIT", constants.DefaultGeneralRateLimit),
		GeneralRateBurst: getIntEnv("FORUM_RATE_BURST", constants.DefaultGeneralRateBurst),
		AutoMigrate:      getBoolEnv("FORUM_MIGRATIONS_AUTO", true),
		LogDir:           getEnv("LOG_DIR", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithMessage(fmt.Sprintf("missing required environment variable: %s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getFloatEnv(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}
