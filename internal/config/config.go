package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config defines server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Transport  TransportConfig  `yaml:"transport"`
	Storage    StorageConfig    `yaml:"storage"`
	Curriculum CurriculumConfig `yaml:"curriculum"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// StorageConfig selects where progress is persisted. Path is the database
// file for sqlite and the directory for file; memory ignores it.
type StorageConfig struct {
	Backend        string `yaml:"backend"`
	Path           string `yaml:"path"`
	Key            string `yaml:"key"`
	ResetOnCorrupt bool   `yaml:"reset_on_corrupt"`
}

// CurriculumConfig points at a curriculum YAML file. The embedded default
// curriculum is used when Path is empty.
type CurriculumConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportStdio,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    "coursetrack.db",
			Key:     "courseStatus",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from defaults, an optional .env file, an optional
// YAML file and environment variables, in that order.
func Load() (Config, error) {
	cfg := Default()

	envFile := os.Getenv("COURSETRACK_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	if path := os.Getenv("COURSETRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown enum values.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage path is required for backend %q", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return errors.New("storage key must not be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("COURSETRACK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("COURSETRACK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid COURSETRACK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("COURSETRACK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = strings.ToLower(mode)
	}
	if backend := os.Getenv("COURSETRACK_STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = strings.ToLower(backend)
	}
	if path := os.Getenv("COURSETRACK_STORAGE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if key := os.Getenv("COURSETRACK_STORAGE_KEY"); key != "" {
		cfg.Storage.Key = key
	}
	if resetStr := os.Getenv("COURSETRACK_RESET_ON_CORRUPT"); resetStr != "" {
		reset, err := strconv.ParseBool(resetStr)
		if err != nil {
			return fmt.Errorf("invalid COURSETRACK_RESET_ON_CORRUPT: %w", err)
		}
		cfg.Storage.ResetOnCorrupt = reset
	}
	if path := os.Getenv("COURSETRACK_CURRICULUM_PATH"); path != "" {
		cfg.Curriculum.Path = path
	}
	if level := os.Getenv("COURSETRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
