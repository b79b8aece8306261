// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	API       APIConfig       `mapstructure:"api"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Session   SessionConfig   `mapstructure:"session"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig selects and configures the backend. UseMockAPI is read once at startup.
type APIConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	UseMockAPI bool   `mapstructure:"use_mock_api"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	LoginPath  string `mapstructure:"login_path"`
}

// SimulatorConfig holds the simulated backend's latency profile and token secret.
type SimulatorConfig struct {
	ReadLatency     int    `mapstructure:"read_latency"`     // milliseconds
	WriteLatency    int    `mapstructure:"write_latency"`    // milliseconds
	GenerateLatency int    `mapstructure:"generate_latency"` // milliseconds
	TokenSecret     string `mapstructure:"token_secret"`
	TokenTTL        int    `mapstructure:"token_ttl"` // minutes
}

// SessionConfig selects the durable store holding the token and user record.
type SessionConfig struct {
	Store     string      `mapstructure:"store"` // file | redis | memory
	Path      string      `mapstructure:"path"`
	KeyPrefix string      `mapstructure:"key_prefix"`
	Redis     RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ServerConfig is used by the simulated API server.
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns the listen address, defaulting to the local development port.
func (s ServerConfig) Addr() string {
	if s.Address == "" {
		return fmt.Sprintf(":%d", DefaultServerPort)
	}
	return s.Address
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
