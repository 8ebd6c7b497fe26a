package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"loan-calc/domain"
)

const DefaultOptionsFile = "config.json"

// LoadLoanOptions reads loan options from a JSON document such as
//
//	{"interest": 5, "administrationFeeRate": 1, "administrationFeeMax": 10000}
//
// Key matching is case-insensitive.
func LoadLoanOptions(path string) (domain.LoanOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.LoanOptions{}, errors.Wrap(err, "failed to read loan options")
	}
	return ParseLoanOptions(data)
}

func ParseLoanOptions(data []byte) (domain.LoanOptions, error) {
	var options domain.LoanOptions
	if err := json.Unmarshal(data, &options); err != nil {
		return domain.LoanOptions{}, errors.Wrap(err, "failed to parse loan options")
	}
	if err := options.Validate(); err != nil {
		return domain.LoanOptions{}, errors.WithMessage(err, "invalid loan options")
	}
	return options, nil
}

type ServerConfig struct {
	Addr        string
	OptionsFile string
	RedisAddr   string // empty means in-memory cache
	CacheTTL    time.Duration
	RateLimit   int
	RateWindow  time.Duration
}

// LoadServerConfig reads server settings from LOAN_* environment variables.
func LoadServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:        getEnv("LOAN_HTTP_ADDR", ":8080"),
		OptionsFile: getEnv("LOAN_CONFIG", DefaultOptionsFile),
		RedisAddr:   os.Getenv("LOAN_REDIS_ADDR"),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("LOAN_CACHE_TTL", 24*time.Hour); err != nil {
		return ServerConfig{}, err
	}
	if cfg.RateWindow, err = getDuration("LOAN_RATE_WINDOW", time.Minute); err != nil {
		return ServerConfig{}, err
	}
	if cfg.RateLimit, err = getInt("LOAN_RATE_LIMIT", 5); err != nil {
		return ServerConfig{}, err
	}
	if cfg.RateLimit <= 0 {
		return ServerConfig{}, errors.Errorf("LOAN_RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return n, nil
}
