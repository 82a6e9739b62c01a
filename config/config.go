package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost string
	HTTPPort string

	MySQLDSN string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration

	ConfirmTokenTTL       time.Duration
	ConfirmResendCooldown time.Duration
	ConfirmBaseURL        string

	SMTP SMTPConfig

	LogLevel  string
	LogFormat string

	PasswordPolicy PasswordPolicy
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Enabled reports whether outgoing mail is configured. When false the
// service logs confirmation links instead of sending them.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasNumber = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSpecial = true
		}
	}

	var missing []string
	if p.RequireUppercase && !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if p.RequireLowercase && !hasLower {
		missing = append(missing, "lowercase letter")
	}
	if p.RequireNumber && !hasNumber {
		missing = append(missing, "number")
	}
	if p.RequireSpecial && !hasSpecial {
		missing = append(missing, "special character")
	}

	if len(missing) > 0 {
		return fmt.Errorf("password must contain at least one: %s", strings.Join(missing, ", "))
	}

	return nil
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		HTTPHost:              getEnv("HTTP_HOST", ""),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		MySQLDSN:              mysqlDSN,
		JWTSecret:             jwtSecret,
		JWTAccessTokenTTL:     getDurationEnv("JWT_ACCESS_TOKEN_TTL", 3*24*time.Hour),
		ConfirmTokenTTL:       getDurationEnv("CONFIRM_TOKEN_TTL", 30*time.Minute),
		ConfirmResendCooldown: getDurationEnv("CONFIRM_RESEND_COOLDOWN", 5*time.Minute),
		ConfirmBaseURL:        getEnv("CONFIRM_BASE_URL", "http://localhost:8080/auth/confirm"),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getIntEnv("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@bookshelf.local"),
			FromName: getEnv("SMTP_FROM_NAME", "Bookshelf"),
		},
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		PasswordPolicy: loadPasswordPolicy(),
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func loadPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        getIntEnv("PASSWORD_MIN_LENGTH", 8),
		RequireUppercase: getBoolEnv("PASSWORD_REQUIRE_UPPERCASE", true),
		RequireLowercase: getBoolEnv("PASSWORD_REQUIRE_LOWERCASE", true),
		RequireNumber:    getBoolEnv("PASSWORD_REQUIRE_NUMBER", true),
		RequireSpecial:   getBoolEnv("PASSWORD_REQUIRE_SPECIAL", true),
	}
}
