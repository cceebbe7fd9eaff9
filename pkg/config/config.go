package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment variable overrides
		viper.SetEnvPrefix("MEETING")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// Missing config file is fine; defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	backend := viper.GetString("storage.backend")
	switch backend {
	case "local", "supabase":
	default:
		return fmt.Errorf("invalid storage backend: %q", backend)
	}

	if backend == "supabase" && viper.GetString("storage.supabase_url") == "" {
		return fmt.Errorf("storage.supabase_url is required for the supabase backend")
	}

	env := viper.GetString("environment")
	if (env == "production" || env == "prod") && viper.GetString("encryption.key") == "" {
		fmt.Println("Warning: no encryption key configured - derived artifacts will be stored in plaintext")
	}

	// Auto-correct invalid worker settings
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 2)
	}
	if viper.GetInt("processing.retry_attempts") <= 0 {
		viper.Set("processing.retry_attempts", 3)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Processing.Workers <= 0 {
		c.Processing.Workers = 2
	}
	if c.Processing.RetryAttempts <= 0 {
		c.Processing.RetryAttempts = 3
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_upload_bytes", int64(256*1024*1024))

	// Database defaults
	viper.SetDefault("database.path", "./data/meetings.db")
	viper.SetDefault("database.verbose", false)

	// Processing defaults
	viper.SetDefault("processing.workers", 2)
	viper.SetDefault("processing.poll_interval", 1*time.Second)
	viper.SetDefault("processing.job_timeout", 30*time.Minute)
	viper.SetDefault("processing.retry_attempts", 3)
	viper.SetDefault("processing.retry_delay", 10*time.Second)
	viper.SetDefault("processing.delivery_retry_delay", 30*time.Second)

	// Storage defaults
	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.local_dir", "./data/objects")
	viper.SetDefault("storage.bucket", "recordings")

	// Encryption defaults
	viper.SetDefault("encryption.key", "")

	// SMTP defaults; with no host configured, deliveries log to the console
	viper.SetDefault("smtp.host", "")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.from", "no-reply@example.com")

	// AI defaults
	viper.SetDefault("ai.default_summary_length", "short")
	viper.SetDefault("ai.default_summary_tone", "formal")

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 20)
	viper.SetDefault("rate_limiting.burst", 40)
}
