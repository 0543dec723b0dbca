package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// MatchPolicy selects the recommendation candidate pool:
	// "pwd_friendly" (default) or "full_catalog".
	MatchPolicy string `env:"MATCH_POLICY" default:"pwd_friendly"`

	// EmployerSignupDailyLimit caps new employer accounts per calendar day.
	EmployerSignupDailyLimit int `env:"EMPLOYER_SIGNUP_DAILY_LIMIT" default:"5"`

	ExpoPushURL string        `env:"EXPO_PUSH_URL" default:"https://exp.host/--/api/v2/push/send"`
	PushTimeout time.Duration `env:"PUSH_TIMEOUT" default:"5s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if !domain.CandidatePolicy(cfg.MatchPolicy).Valid() {
		return fmt.Errorf("MATCH_POLICY must be %q or %q, got %q",
			domain.PolicyPWDFriendlyOnly, domain.PolicyFullCatalog, cfg.MatchPolicy)
	}

	if cfg.EmployerSignupDailyLimit < 1 {
		return fmt.Errorf("EMPLOYER_SIGNUP_DAILY_LIMIT must be positive, got %d", cfg.EmployerSignupDailyLimit)
	}

	if cfg.PushTimeout <= 0 {
		return fmt.Errorf("PUSH_TIMEOUT must be positive, got %s", cfg.PushTimeout)
	}

	return nil
}
