// Package config centraliza o carregamento de configurações da aplicação.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
)

type Config struct {
	Server      ServerConfig
	Environment string
	Storage     StorageConfig
	Forms       FormsConfig
	Mail        MailConfig
}

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	Type     string
	Capacity int
	Redis    RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type FormsConfig struct {
	Contact domain.RateRule
	Quote   domain.RateRule
	Booking domain.RateRule
}

type MailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	BusinessTo string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	server := ServerConfig{Port: getEnv("SERVER_PORT", "8080")}
	environment := getEnv("APP_ENV", "production")

	storageConfig, err := buildStorageConfig()
	if err != nil {
		return Config{}, err
	}

	formsConfig, err := buildFormsConfig()
	if err != nil {
		return Config{}, err
	}

	mailConfig, err := buildMailConfig()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server:      server,
		Environment: environment,
		Storage:     storageConfig,
		Forms:       formsConfig,
		Mail:        mailConfig,
	}, nil
}

// IsProduction indica se os detalhes de erro devem ficar fora das respostas.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func buildStorageConfig() (StorageConfig, error) {
	storageType := getEnv("STORAGE_TYPE", "memory")

	capacity, err := strconv.Atoi(getEnv("RATE_LIMIT_CAPACITY", strconv.Itoa(domain.DefaultStoreCapacity)))
	if err != nil {
		return StorageConfig{}, fmt.Errorf("invalid RATE_LIMIT_CAPACITY: %w", err)
	}

	redisConfig, err := buildRedisConfig()
	if err != nil {
		return StorageConfig{}, err
	}

	return StorageConfig{
		Type:     storageType,
		Capacity: capacity,
		Redis:    redisConfig,
	}, nil
}

func buildRedisConfig() (RedisConfig, error) {
	host := getEnv("REDIS_HOST", "localhost")
	port, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return RedisConfig{
		Host:     host,
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func buildFormsConfig() (FormsConfig, error) {
	contact, err := buildFormRule("CONTACT", 5, 60_000)
	if err != nil {
		return FormsConfig{}, err
	}
	quote, err := buildFormRule("QUOTE", 3, 3_600_000)
	if err != nil {
		return FormsConfig{}, err
	}
	booking, err := buildFormRule("BOOKING", 3, 3_600_000)
	if err != nil {
		return FormsConfig{}, err
	}

	return FormsConfig{Contact: contact, Quote: quote, Booking: booking}, nil
}

func buildFormRule(prefix string, defaultLimit, defaultWindowMs int) (domain.RateRule, error) {
	limit, err := strconv.Atoi(getEnv(prefix+"_RATE_LIMIT", strconv.Itoa(defaultLimit)))
	if err != nil {
		return domain.RateRule{}, fmt.Errorf("invalid %s_RATE_LIMIT: %w", prefix, err)
	}
	windowMs, err := strconv.Atoi(getEnv(prefix+"_RATE_WINDOW", strconv.Itoa(defaultWindowMs)))
	if err != nil {
		return domain.RateRule{}, fmt.Errorf("invalid %s_RATE_WINDOW: %w", prefix, err)
	}
	if limit <= 0 || windowMs <= 0 {
		return domain.RateRule{}, fmt.Errorf("%s rate limit and window must be positive", prefix)
	}

	return domain.RateRule{
		Limit:  limit,
		Window: time.Duration(windowMs) * time.Millisecond,
	}, nil
}

func buildMailConfig() (MailConfig, error) {
	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return MailConfig{}, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	return MailConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       getEnv("MAIL_FROM", "no-reply@gatheredrootscleaning.com"),
		BusinessTo: getEnv("MAIL_TO", "hello@gatheredrootscleaning.com"),
	}, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
