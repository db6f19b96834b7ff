package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WorldServer holds all configuration for the world server.
type WorldServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Client sessions
	SessionBuffer int           `yaml:"session_buffer"` // per-client request/response capacity
	WriteTimeout  time.Duration `yaml:"write_timeout"`  // per-frame write deadline

	// Security
	AutoCreateAccounts bool `yaml:"auto_create_accounts"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// World generation
	World WorldConfig `yaml:"world"`
}

// WorldConfig holds the procedural generation parameters.
type WorldConfig struct {
	Seed       int64   `yaml:"seed"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	ChunkSize  int     `yaml:"chunk_size"`
	NoiseScale float64 `yaml:"noise_scale"`
	CoreRadius float64 `yaml:"core_radius"`
	Persist    bool    `yaml:"persist"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Addr returns the host:port the server binds to.
func (c WorldServer) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// DefaultWorldServer returns WorldServer config with sensible defaults.
func DefaultWorldServer() WorldServer {
	return WorldServer{
		BindAddress:        "0.0.0.0",
		Port:               8080,
		LogLevel:           "info",
		SessionBuffer:      64,
		WriteTimeout:       5 * time.Second,
		AutoCreateAccounts: true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "neoncity",
			Password: "neoncity",
			DBName:   "neoncity",
			SSLMode:  "disable",
		},
		World: WorldConfig{
			Seed:       1337,
			Width:      128,
			Height:     128,
			ChunkSize:  32,
			NoiseScale: 0.05,
			CoreRadius: 48,
			Persist:    true,
		},
	}
}

// LoadWorldServer loads world server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadWorldServer(path string) (WorldServer, error) {
	cfg := DefaultWorldServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
