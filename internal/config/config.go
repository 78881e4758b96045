package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

type Config struct {
	App struct {
		Environment     string        `yaml:"environment"`
		Port            string        `yaml:"port"`
		Timezone        string        `yaml:"timezone"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"app"`

	Database struct {
		Host            string        `yaml:"host"`
		Port            string        `yaml:"port"`
		Username        string        `yaml:"username"`
		Password        string        `yaml:"-"` // Loaded from environment
		DBName          string        `yaml:"dbname"`
		SSLMode         string        `yaml:"sslmode"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		MigrationsPath  string        `yaml:"migrations_path"`
	} `yaml:"database"`

	Auth struct {
		Secret      string        `yaml:"-"` // Loaded from environment
		TokenTTL    time.Duration `yaml:"token_ttl"`
		AdminEmails []string      `yaml:"admin_emails"`
	} `yaml:"auth"`

	Leagues struct {
		JoinPolicy string `yaml:"join_policy"`
	} `yaml:"leagues"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads the yaml file at configPath, the .env next to it (if any) and
// environment overrides, then validates the result.
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Database.Password = os.Getenv("POSTGRES_PASSWORD")
	c.Auth.Secret = os.Getenv("AUTH_SECRET")

	overrides := map[string]*string{
		"SERVER_PORT":       &c.App.Port,
		"APP_ENVIRONMENT":   &c.App.Environment,
		"POSTGRES_HOST":     &c.Database.Host,
		"POSTGRES_PORT":     &c.Database.Port,
		"POSTGRES_USERNAME": &c.Database.Username,
		"DB_NAME":           &c.Database.DBName,
		"DB_SSL":            &c.Database.SSLMode,
		"LOG_LEVEL":         &c.Log.Level,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.Port == "" {
		c.App.Port = "8080"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "UTC"
	}
	if c.App.ShutdownTimeout == 0 {
		c.App.ShutdownTimeout = 5 * time.Second
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MigrationsPath == "" {
		c.Database.MigrationsPath = "file://migrations"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if len(c.Auth.Secret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be at least 32 bytes")
	}
	if _, err := domain.ParseJoinPolicy(c.Leagues.JoinPolicy); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.App.Timezone, err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
