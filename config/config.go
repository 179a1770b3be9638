package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Dosada05/pool-league/services"
	"github.com/joho/godotenv"
)

// Config holds every configuration parameter of the application.
type Config struct {
	DatabaseURL    string
	ServerPort     int
	RegularWeeks   int
	CompletionRule services.CompletionRule

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from environment variables.
// A .env file is loaded when present, which is convenient for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	weeksStr := os.Getenv("REGULAR_WEEKS")
	weeks := services.DefaultRegularWeeks
	if weeksStr != "" {
		weeks, err = strconv.Atoi(weeksStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REGULAR_WEEKS environment variable: %w", err)
		}
		if weeks <= 0 {
			return nil, fmt.Errorf("REGULAR_WEEKS must be positive, got %d", weeks)
		}
	}

	rule := services.CompletionRule(os.Getenv("COMPLETION_RULE"))
	switch rule {
	case "":
		rule = services.CompletionRuleAllComplete
	case services.CompletionRuleAllComplete, services.CompletionRuleRoundsThreshold:
	default:
		return nil, fmt.Errorf("invalid COMPLETION_RULE %q, expected %q or %q",
			rule, services.CompletionRuleAllComplete, services.CompletionRuleRoundsThreshold)
	}

	cfg := &Config{
		DatabaseURL:    dbURL,
		ServerPort:     port,
		RegularWeeks:   weeks,
		CompletionRule: rule,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}
