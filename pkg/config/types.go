package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	Storage      StorageConfig    `mapstructure:"storage"`
	Encryption   EncryptionConfig `mapstructure:"encryption"`
	SMTP         SMTPConfig       `mapstructure:"smtp"`
	AI           AIConfig         `mapstructure:"ai"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// ProcessingConfig contains pipeline worker settings
type ProcessingConfig struct {
	Workers            int           `mapstructure:"workers"`
	PollInterval       time.Duration `mapstructure:"poll_interval"`
	JobTimeout         time.Duration `mapstructure:"job_timeout"`
	RetryAttempts      int           `mapstructure:"retry_attempts"`
	RetryDelay         time.Duration `mapstructure:"retry_delay"`
	DeliveryRetryDelay time.Duration `mapstructure:"delivery_retry_delay"`
}

// StorageConfig contains object storage settings
type StorageConfig struct {
	Backend     string `mapstructure:"backend"` // local|supabase
	LocalDir    string `mapstructure:"local_dir"`
	Bucket      string `mapstructure:"bucket"`
	SupabaseURL string `mapstructure:"supabase_url"`
	SupabaseKey string `mapstructure:"supabase_key"`
}

// EncryptionConfig contains the at-rest encryption settings
type EncryptionConfig struct {
	// Key is a urlsafe-base64 fernet key; empty disables encryption of
	// derived artifacts.
	Key string `mapstructure:"key"`
}

// SMTPConfig contains email delivery settings
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// AIConfig contains defaults for the AI stages
type AIConfig struct {
	DefaultSummaryLength string `mapstructure:"default_summary_length"`
	DefaultSummaryTone   string `mapstructure:"default_summary_tone"`
}

// RateLimitConfig contains API rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	Burst             int  `mapstructure:"burst"`
}
