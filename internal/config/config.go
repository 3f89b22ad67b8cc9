package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. Values are read once at
// startup and treated as constants for the process lifetime.
type Config struct {
	BotToken   string
	AdminAddr  string
	AdminToken string // empty disables admin API auth

	SessionBackend string // "memory" or "redis"
	Redis          RedisConfig
	Database       DatabaseConfig
	AMQPURL        string

	SessionTimeout     time.Duration
	MinPartySize       int
	MaxPartySize       int
	OpeningHour        int
	ClosingHour        int
	AdvanceBookingDays int
	MaxNameLength      int
	DefaultLanguage    string

	RestaurantName  string
	RestaurantPhone string
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// RedisConfig holds the optional redis session backend settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		AdminAddr:      getEnv("ADMIN_ADDR", ":8080"),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		SessionBackend: getEnv("SESSION_BACKEND", "memory"),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "tablebot"),
			User:     getEnv("DB_USER", "tablebot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		AMQPURL:         os.Getenv("AMQP_URL"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		RestaurantName:  getEnv("RESTAURANT_NAME", "Royal Chef's Restaurant"),
		RestaurantPhone: getEnv("RESTAURANT_PHONE", "+91-9876543210"),
	}

	var err error
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	timeoutMinutes, err := getEnvInt("SESSION_TIMEOUT_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	cfg.SessionTimeout = time.Duration(timeoutMinutes) * time.Minute

	if cfg.MinPartySize, err = getEnvInt("MIN_PARTY_SIZE", 1); err != nil {
		return nil, err
	}
	if cfg.MaxPartySize, err = getEnvInt("MAX_PARTY_SIZE", 200); err != nil {
		return nil, err
	}
	if cfg.OpeningHour, err = getEnvInt("OPENING_HOUR", 11); err != nil {
		return nil, err
	}
	if cfg.ClosingHour, err = getEnvInt("CLOSING_HOUR", 23); err != nil {
		return nil, err
	}
	if cfg.AdvanceBookingDays, err = getEnvInt("ADVANCE_BOOKING_DAYS", 60); err != nil {
		return nil, err
	}
	if cfg.MaxNameLength, err = getEnvInt("MAX_NAME_LENGTH", 50); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects malformed configuration at startup
func (c *Config) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.SessionBackend != "memory" && c.SessionBackend != "redis" {
		return fmt.Errorf("SESSION_BACKEND must be \"memory\" or \"redis\", got %q", c.SessionBackend)
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT_MINUTES must be positive")
	}
	if c.MinPartySize < 1 {
		return fmt.Errorf("MIN_PARTY_SIZE must be at least 1")
	}
	if c.MaxPartySize < c.MinPartySize {
		return fmt.Errorf("MAX_PARTY_SIZE (%d) must not be below MIN_PARTY_SIZE (%d)", c.MaxPartySize, c.MinPartySize)
	}
	if c.OpeningHour < 0 || c.OpeningHour > 23 || c.ClosingHour < 1 || c.ClosingHour > 24 {
		return fmt.Errorf("opening/closing hours out of range")
	}
	if c.OpeningHour >= c.ClosingHour {
		return fmt.Errorf("OPENING_HOUR (%d) must be before CLOSING_HOUR (%d)", c.OpeningHour, c.ClosingHour)
	}
	if c.AdvanceBookingDays < 1 {
		return fmt.Errorf("ADVANCE_BOOKING_DAYS must be at least 1")
	}
	if c.MaxNameLength < 2 {
		return fmt.Errorf("MAX_NAME_LENGTH must be at least 2")
	}
	if c.DefaultLanguage != "en" && c.DefaultLanguage != "ta" {
		return fmt.Errorf("DEFAULT_LANGUAGE must be \"en\" or \"ta\", got %q", c.DefaultLanguage)
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
