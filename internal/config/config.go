package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local" validate:"required,oneof=local dev prod"`
	Database   Database   `yaml:"database"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Report     Report     `yaml:"report"`
}

// Database holds connection parameters. Password has no default and must be
// supplied through the environment or the config file.
type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost" validate:"required"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432" validate:"min=1,max=65535"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres" validate:"required"`
	Password string `yaml:"password" env:"DB_PASS" env-required:"true" validate:"required"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"beatbnk_db" validate:"required"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"0.0.0.0:5080" validate:"required"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Report struct {
	// QueryTimeout bounds a whole report generation. Zero disables the limit.
	QueryTimeout      time.Duration `yaml:"query_timeout" env:"REPORT_QUERY_TIMEOUT" env-default:"0s" validate:"min=0"`
	ConcurrentQueries bool          `yaml:"concurrent_queries" env:"REPORT_CONCURRENT_QUERIES" env-default:"false"`
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}

	return cfg
}

// Load reads an optional .env file, then the YAML file at CONFIG_PATH if set,
// then the environment. Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
