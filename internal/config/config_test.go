package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api/v1/", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.Booking.MaxReservations)
	assert.Equal(t, 800*time.Millisecond, cfg.Booking.FetchDelay)
	assert.Equal(t, "file", cfg.Session.Driver)
	assert.Equal(t, "default", cfg.Session.Profile)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "@every 1m", cfg.Jobs.ConfirmSchedule)
	assert.NoError(t, cfg.ValidateClient())
	assert.Error(t, cfg.ValidateServer(), "jwt secret has no default")
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
booking:
  max_reservations: 5
  fetch_delay: 10ms
session:
  driver: memory
jwt:
  secret: from-file
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("API_BASE_URL", "http://api.test/api/v1/")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Booking.MaxReservations)
	assert.Equal(t, 10*time.Millisecond, cfg.Booking.FetchDelay)
	assert.Equal(t, "memory", cfg.Session.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "http://api.test/api/v1/", cfg.API.BaseURL)
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("booking: [unclosed"), 0o600))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidateClient(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "no base url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: true},
		{name: "zero capacity", mutate: func(c *Config) { c.Booking.MaxReservations = 0 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Session.Driver = "cookie" }, wantErr: true},
		{name: "redis driver", mutate: func(c *Config) { c.Session.Driver = "redis" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(t.TempDir())
			require.NoError(t, err)
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.ValidateClient())
			} else {
				assert.NoError(t, cfg.ValidateClient())
			}
		})
	}
}
