package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-this-in-production"

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	DB DatabaseConfig

	JWTSecret     string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-this-in-production"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Super Administrador"`
	SeedData      bool   `env:"SEED_DATA" envDefault:"false"`

	UploadDir      string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`
	ImportMaxBytes int64  `env:"IMPORT_MAX_BYTES" envDefault:"20971520"`

	Storage StorageConfig

	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Requests per minute allowed per client on public form endpoints.
	PublicRateLimit int `env:"PUBLIC_RATE_LIMIT" envDefault:"10"`
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"iniva"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type StorageConfig struct {
	Driver          string `env:"STORAGE_DRIVER" envDefault:"local"`
	MinioEndpoint   string `env:"MINIO_ENDPOINT"`
	MinioAccessKey  string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey  string `env:"MINIO_SECRET_KEY"`
	MinioBucket     string `env:"MINIO_BUCKET" envDefault:"uploads"`
	MinioUseSSL     bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinioPublicBase string `env:"MINIO_PUBLIC_URL"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.Storage.Driver {
	case "local":
	case "minio":
		if c.Storage.MinioEndpoint == "" {
			return errors.New("MINIO_ENDPOINT is required when STORAGE_DRIVER=minio")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

func (c *Config) JWT() JWTConfig {
	return JWTConfig{Secret: []byte(c.JWTSecret), Expiration: c.JWTExpiration}
}
