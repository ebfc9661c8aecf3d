// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Supported storage drivers.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Supported password schemes.
const (
	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"
)

const defaultSessionSecret = "secretKey"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port              string  `mapstructure:"PORT"`
	Env               string  `mapstructure:"APP_ENV"`
	StoreDriver       string  `mapstructure:"STORE_DRIVER"`
	MongoURI          string  `mapstructure:"MONGO_URI"`
	MongoDB           string  `mapstructure:"MONGO_DB"`
	DBHost            string  `mapstructure:"DB_HOST"`
	DBPort            string  `mapstructure:"DB_PORT"`
	DBUser            string  `mapstructure:"DB_USER"`
	DBPassword        string  `mapstructure:"DB_PASSWORD"`
	DBName            string  `mapstructure:"DB_NAME"`
	DBSSLMode         string  `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns    int     `mapstructure:"DB_MAX_OPEN_CONNS"`
	SQLitePath        string  `mapstructure:"SQLITE_PATH"`
	RedisURL          string  `mapstructure:"REDIS_URL"`
	SessionSecret     string  `mapstructure:"SESSION_SECRET"`
	SessionTTLMinutes int     `mapstructure:"SESSION_TTL_MINUTES"`
	PasswordHashing   string  `mapstructure:"PASSWORD_HASHING"`
	AllowedOrigins    string  `mapstructure:"ALLOWED_ORIGINS"`
	UploadDir         string  `mapstructure:"UPLOAD_DIR"`
	UploadMaxMB       int     `mapstructure:"UPLOAD_MAX_MB"`
	StaticDir         string  `mapstructure:"STATIC_DIR"`
	FeatureFlags      string  `mapstructure:"FEATURE_FLAGS"`
	SeedFixtures      bool    `mapstructure:"SEED_FIXTURES"`
	TracingEnabled    bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter   string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint      string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSample     float64 `mapstructure:"TRACING_SAMPLE_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional; environment variables and defaults cover everything.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORE_DRIVER", StoreMongo)
	viper.SetDefault("MONGO_URI", "mongodb://127.0.0.1:27017")
	viper.SetDefault("MONGO_DB", "cs142project6")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "photoshare")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 20)
	viper.SetDefault("SQLITE_PATH", "photoshare.db")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("SESSION_SECRET", defaultSessionSecret)
	viper.SetDefault("SESSION_TTL_MINUTES", 24*60)
	viper.SetDefault("PASSWORD_HASHING", PasswordPlain)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("UPLOAD_MAX_MB", 10)
	viper.SetDefault("STATIC_DIR", "")
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("SEED_FIXTURES", false)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLE_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.PasswordHashing = strings.ToLower(strings.TrimSpace(c.PasswordHashing))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	case StorePostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.PasswordHashing {
	case PasswordPlain, PasswordBcrypt:
	default:
		return fmt.Errorf("unsupported PASSWORD_HASHING %q", c.PasswordHashing)
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.UploadMaxMB <= 0 {
		return errors.New("UPLOAD_MAX_MB must be positive")
	}

	if c.IsProduction() {
		if c.SessionSecret == defaultSessionSecret {
			return errors.New("SESSION_SECRET must be changed from the default value in production")
		}
		if c.StoreDriver == StorePostgres {
			if c.DBPassword == "password" || c.DBPassword == "" {
				return errors.New("a strong DB_PASSWORD is required in production")
			}
			if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
				return errors.New("DB_SSLMODE must not be disabled in production")
			}
		}
		if c.PasswordHashing == PasswordPlain {
			log.Println("WARNING: PASSWORD_HASHING is 'plain' in production. Stored passwords are compared as plaintext.")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}
