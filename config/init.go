package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/funnelhub/domainstack/internal/cache"
	"github.com/funnelhub/domainstack/internal/logger"
	"github.com/funnelhub/domainstack/internal/tracing"
)

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:        &AppConfig{},
		Logger:           &logger.Config{},
		Tracing:          &tracing.JaegerConfig{},
		DatabaseConfig:   &DatabaseConfig{},
		RedisConfig:      &cache.RedisConfig{},
		CloudflareConfig: &CloudflareConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading domainstack config: %v", err)
	}

	return config, nil
}
