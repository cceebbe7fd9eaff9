package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()

	assert.Equal(t, 8080, GetInt("server.port"))
	assert.Equal(t, "./data/meetings.db", GetString("database.path"))
	assert.Equal(t, 3, GetInt("processing.retry_attempts"))
	assert.Equal(t, 10*time.Second, GetDuration("processing.retry_delay"))
	assert.Equal(t, 30*time.Second, GetDuration("processing.delivery_retry_delay"))
	assert.Equal(t, "local", GetString("storage.backend"))
	assert.Equal(t, "short", GetString("ai.default_summary_length"))
	assert.Equal(t, "formal", GetString("ai.default_summary_tone"))
	assert.Empty(t, GetString("encryption.key"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			setup:   func() {},
			wantErr: false,
		},
		{
			name:    "invalid port",
			setup:   func() { viper.Set("server.port", -1) },
			wantErr: true,
		},
		{
			name:    "unknown storage backend",
			setup:   func() { viper.Set("storage.backend", "s3") },
			wantErr: true,
		},
		{
			name: "supabase backend requires url",
			setup: func() {
				viper.Set("storage.backend", "supabase")
				viper.Set("storage.supabase_url", "")
			},
			wantErr: true,
		},
		{
			name:    "invalid worker count is auto-corrected",
			setup:   func() { viper.Set("processing.workers", 0) },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			setDefaults()
			tt.setup()

			err := validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, GetInt("processing.workers"))
		})
	}
}

func TestConfigStructValidate(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Port: 8080},
		Processing: ProcessingConfig{Workers: 0, RetryAttempts: 0},
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.Processing.Workers)
	assert.Equal(t, 3, cfg.Processing.RetryAttempts)

	bad := &Config{Server: ServerConfig{Port: 0}}
	assert.Error(t, bad.Validate())
}
