package config

import (
	"errors"
	"os"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Generator struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

type Config struct {
	Port             string
	PostgresURI      string
	RedisURI         string
	FrontendURL      string
	SecretKey        string
	CookieName       string
	PrefetchSchedule string
	Generator        Generator
	R2               R2
}

func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", "3000"),
		PostgresURI:      getEnv("POSTGRES_URI", ""),
		RedisURI:         getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:        getEnv("SECRET_KEY", ""),
		CookieName:       getEnv("COOKIE_NAME", "contentflow_session"),
		PrefetchSchedule: getEnv("PREFETCH_SCHEDULE", "@every 00h30m00s"),
		Generator: Generator{
			Provider: getEnv("GENERATOR_PROVIDER", "mock"),
			APIKey:   getEnv("OPENAI_API_KEY", ""),
			Model:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:  getEnv("OPENAI_BASE_URL", ""),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

// Validate checks the keys the server cannot start without.
func (c *Config) Validate() error {
	if c.PostgresURI == "" {
		return errors.New("POSTGRES_URI is required")
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.Generator.Provider == "openai" && c.Generator.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required when GENERATOR_PROVIDER=openai")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
