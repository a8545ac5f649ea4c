package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs to start.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	DocRoot string `yaml:"doc_root"`

	// MaxRequestBytes caps the request line plus headers.
	MaxRequestBytes int `yaml:"max_request_bytes"`

	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Sequential serves one connection at a time on the accept loop.
	Sequential bool `yaml:"sequential"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Console selects human readable output instead of JSON lines.
	Console bool `yaml:"console"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			DocRoot:         "www",
			MaxRequestBytes: 8192,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
		},
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Load reads the config like Read and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Read starts from the defaults, applies the YAML file at path if path is
// not empty, then the environment. The result is not validated, so callers
// can apply further overrides first.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.Server.Host = getEnvOrDefault("WWW_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsIntOrDefault("WWW_PORT", cfg.Server.Port)
	cfg.Server.DocRoot = getEnvOrDefault("WWW_ROOT", cfg.Server.DocRoot)
	cfg.Server.MaxRequestBytes = getEnvAsIntOrDefault("WWW_MAX_REQUEST_BYTES", cfg.Server.MaxRequestBytes)
	cfg.Log.Level = getEnvOrDefault("WWW_LOG_LEVEL", cfg.Log.Level)

	return cfg, nil
}

var (
	ErrInvalidPort            = errors.New("invalid port")
	ErrMissingDocRoot         = errors.New("document root is required")
	ErrInvalidMaxRequestBytes = errors.New("max request bytes must be positive")
	ErrNegativeTimeout        = errors.New("timeouts must not be negative")
)

func (c *Config) Validate() error {
	// 0 asks the kernel for a free port
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	if c.Server.DocRoot == "" {
		return ErrMissingDocRoot
	}
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxRequestBytes, c.Server.MaxRequestBytes)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return ErrNegativeTimeout
	}
	return nil
}

func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
