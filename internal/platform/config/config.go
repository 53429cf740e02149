package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "planr/internal/platform/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	defaultTimeout  = 10 * time.Second
	defaultLogLevel = "info"
)

type Config struct {
	DataDir    string        `yaml:"-"`
	DBPath     string        `yaml:"-"`
	ConfigPath string        `yaml:"-"`
	Storage    StorageConfig `yaml:"storage"`
	Remote     RemoteConfig  `yaml:"remote"`
	Log        LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RemoteConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("%w: data dir is required", apperrors.ErrInvalidInput)
	}
	return Config{
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "planr.db"),
		ConfigPath: filepath.Join(dataDir, "config.yaml"),
		Storage:    StorageConfig{Driver: DriverSQLite},
		Remote:     RemoteConfig{Timeout: defaultTimeout},
		Log:        LogConfig{Level: defaultLogLevel},
	}, nil
}

// Load layers the optional config.yaml and PLANR_* environment variables
// over the defaults from New.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(cfg.ConfigPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: decode %s: %v", apperrors.ErrInvalidInput, cfg.ConfigPath, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PLANR_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("PLANR_STORAGE_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("PLANR_API_URL"); v != "" {
		c.Remote.BaseURL = v
	}
	if v := os.Getenv("PLANR_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: PLANR_API_TIMEOUT: %v", apperrors.ErrInvalidInput, err)
		}
		c.Remote.Timeout = d
	}
	if v := os.Getenv("PLANR_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("%w: postgres storage requires a dsn", apperrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unsupported storage driver %q", apperrors.ErrInvalidInput, c.Storage.Driver)
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("%w: remote timeout must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}

// StorageDSN is the dsn handed to the kv driver.
func (c Config) StorageDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	return c.DBPath
}
