package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GinMode        string   `env:"GIN_MODE" envDefault:"debug"`
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":8080"`
	TZ             string   `env:"TZ" envDefault:"UTC"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.1,::1"`

	DBDriver  string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost    string `env:"DB_HOST" envDefault:"localhost"`
	DBPort    string `env:"DB_PORT" envDefault:"5432"`
	DBUser    string `env:"DB_USER" envDefault:"postgres"`
	DBPass    string `env:"DB_PASS"`
	DBName    string `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode string `env:"DB_SSLMODE"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/catalog.db"`

	DBMaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns     int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBConnectAttempts  int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"10"`
	DBConnectRetryWait time.Duration `env:"DB_CONNECT_RETRY_WAIT" envDefault:"2s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"`
	AccessLog bool   `env:"ACCESS_LOG" envDefault:"false"`
}

// Load reads an optional dotenv file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if path := findEnvFile(envFileName()); path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Printf("warning: could not load %s: %v", path, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if cfg.DBDriver == "sqlite3" {
		cfg.DBDriver = DriverSQLite
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.DBConnectAttempts < 1 {
		return errors.New("config: DB_CONNECT_ATTEMPTS must be at least 1")
	}

	return nil
}

func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func envFileName() string {
	if name := os.Getenv("ENV_FILE"); name != "" {
		return name
	}
	return ".env"
}

// findEnvFile walks up from the working directory looking for name.
// Absolute paths are returned as-is when they exist.
func findEnvFile(name string) string {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err == nil {
			return name
		}
		return ""
	}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
