package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML accepts values like "5s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config holds terminal settings. Values come from an optional YAML file
// with POS_* environment variables taking precedence.
type Config struct {
	StoreName string `yaml:"store_name"`
	Operator  string `yaml:"operator"`

	Backend       string `yaml:"backend"` // sqlite, memory or redis
	DBPath        string `yaml:"db_path"`
	MigrationsDir string `yaml:"migrations_dir"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPrefix   string `yaml:"redis_prefix"`

	ServerURL       string   `yaml:"server_url"`
	SyncInterval    Duration `yaml:"sync_interval"`
	SyncMaxAttempts int      `yaml:"sync_max_attempts"`

	ReceiptWidth int `yaml:"receipt_width"`
}

// Default returns the out-of-the-box configuration.
func Default() *Config {
	return &Config{
		StoreName:       "Point of Sale",
		Operator:        "operator",
		Backend:         "sqlite",
		DBPath:          "pos.db",
		MigrationsDir:   "internal/store/migrations",
		RedisAddr:       "localhost:6379",
		RedisPrefix:     "pos",
		ServerURL:       "http://localhost:8080",
		SyncInterval:    Duration(5 * time.Second),
		SyncMaxAttempts: 5,
		ReceiptWidth:    40,
	}
}

// Load reads path (when it exists) over the defaults, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.StoreName = getEnv("POS_STORE_NAME", cfg.StoreName)
	cfg.Operator = getEnv("POS_OPERATOR", cfg.Operator)
	cfg.Backend = getEnv("POS_BACKEND", cfg.Backend)
	cfg.DBPath = getEnv("POS_DB_PATH", cfg.DBPath)
	cfg.MigrationsDir = getEnv("POS_MIGRATIONS_DIR", cfg.MigrationsDir)
	cfg.RedisAddr = getEnv("POS_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPrefix = getEnv("POS_REDIS_PREFIX", cfg.RedisPrefix)
	cfg.ServerURL = getEnv("POS_SERVER_URL", cfg.ServerURL)
	cfg.ReceiptWidth = getEnvInt("POS_RECEIPT_WIDTH", cfg.ReceiptWidth)
	cfg.SyncMaxAttempts = getEnvInt("POS_SYNC_MAX_ATTEMPTS", cfg.SyncMaxAttempts)

	if v := os.Getenv("POS_SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid POS_SYNC_INTERVAL: %w", err)
		}
		cfg.SyncInterval = Duration(d)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
