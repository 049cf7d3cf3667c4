package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string   `env:"SERVER_PORT" envDefault:"5000"`
	MySQLDSN         string   `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/notes?charset=utf8mb4&parseTime=True&loc=UTC"`
	RedisAddr        string   `env:"REDIS_ADDR"`
	RedisDB          int      `env:"REDIS_DB" envDefault:"0"`
	RedisPass        string   `env:"REDIS_PASSWORD"`
	JWTSecret        string   `env:"JWT_SECRET,required,notEmpty"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel         string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string   `env:"LOG_FORMAT" envDefault:"json"`
	SwaggerHost      string   `env:"SWAGGER_HOST"`
	ResetDB          bool     `env:"RESET_DB" envDefault:"false"`
}

// Load reads an optional .env file and then builds Config from the environment.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
