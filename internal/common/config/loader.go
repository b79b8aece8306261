// internal/common/config/loader.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL    = "http://localhost:5001/api"
	DefaultLoginPath  = "/auth/login"
	DefaultServerPort = 5001
)

// Load reads configs/config.yaml, the per-environment overlay and the process environment.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	v.SetDefault("app.name", "proposal-desk")
	v.SetDefault("app.environment", "development")
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.use_mock_api", false)
	v.SetDefault("api.timeout", 30000)
	v.SetDefault("api.login_path", DefaultLoginPath)
	v.SetDefault("simulator.read_latency", 500)
	v.SetDefault("simulator.write_latency", 800)
	v.SetDefault("simulator.generate_latency", 2000)
	v.SetDefault("simulator.token_secret", "")
	v.SetDefault("simulator.token_ttl", 0)
	v.SetDefault("session.store", "file")
	v.SetDefault("session.path", "")
	v.SetDefault("session.key_prefix", "")
	v.SetDefault("session.redis.address", "")
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.redis.db", 0)
	v.SetDefault("server.address", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideFromEnv(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			// Unset variables expand to "" and fall through to applyDefaults.
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideFromEnv honours the short switch names used by the browser build
// (USE_MOCK_API / VITE_USE_MOCK_API, API_BASE_URL / VITE_API_BASE_URL).
func overrideFromEnv(cfg *Config) {
	for _, name := range []string{"VITE_USE_MOCK_API", "USE_MOCK_API"} {
		if val, ok := os.LookupEnv(name); ok {
			// Only the literal "true" enables the simulated backend.
			cfg.API.UseMockAPI = val == "true"
		}
	}

	for _, name := range []string{"VITE_API_BASE_URL", "API_BASE_URL"} {
		if val := os.Getenv(name); val != "" {
			cfg.API.BaseURL = val
		}
	}

	if cfg.Session.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Session.Redis.Address = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "proposal-desk"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30000
	}
	if cfg.API.LoginPath == "" {
		cfg.API.LoginPath = DefaultLoginPath
	}

	if cfg.Simulator.TokenSecret == "" {
		cfg.Simulator.TokenSecret = "proposal-desk-simulator"
	}
	if cfg.Simulator.TokenTTL == 0 {
		cfg.Simulator.TokenTTL = 24 * 60
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = "file"
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = defaultSessionPath()
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".proposal-desk", "session.json")
	}
	return filepath.Join(dir, "proposal-desk", "session.json")
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if !cfg.API.UseMockAPI {
		u, err := url.Parse(cfg.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api.base_url must be an absolute URL, got %q", cfg.API.BaseURL)
		}
	}

	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	if cfg.Simulator.ReadLatency < 0 || cfg.Simulator.WriteLatency < 0 || cfg.Simulator.GenerateLatency < 0 {
		return fmt.Errorf("simulator latencies must not be negative")
	}

	switch cfg.Session.Store {
	case "file", "memory":
	case "redis":
		if cfg.Session.Redis.Address == "" {
			return fmt.Errorf("session.redis.address is required when session.store is redis")
		}
	default:
		return fmt.Errorf("session.store must be one of file, redis, memory, got %q", cfg.Session.Store)
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
