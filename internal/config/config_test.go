package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
dbname = "studio"

[studio]
timezone = "Europe/Warsaw"
open_hour = 9
close_hour = 21
release_cancelled_slots = true

[booking]
commit_attempts = 5

[cors]
allowed_origins = ["https://studio.example"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port, "defaults survive partial files")
	assert.Equal(t, 9, cfg.Studio.OpenHour)
	assert.Equal(t, 21, cfg.Studio.CloseHour)
	assert.True(t, cfg.Studio.ReleaseCancelledSlots)
	assert.Equal(t, 5, cfg.Booking.CommitAttempts)
	assert.Equal(t, []string{"https://studio.example"}, cfg.CORS.AllowedOrigins)

	loc, err := cfg.Studio.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Warsaw", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STUDIO_SERVER_HTTP_PORT", "7070")
	t.Setenv("STUDIO_ADMIN_TOKEN", "secret")
	t.Setenv("STUDIO_STUDIO_CLOSE_HOUR", "22")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "secret", cfg.Admin.Token)
	assert.Equal(t, 22, cfg.Studio.CloseHour)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 8, cfg.Studio.OpenHour)
	assert.Equal(t, 20, cfg.Studio.CloseHour)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"open after close", func(c *Config) { c.Studio.OpenHour = 20; c.Studio.CloseHour = 8 }},
		{"close beyond midnight", func(c *Config) { c.Studio.CloseHour = 25 }},
		{"unknown timezone", func(c *Config) { c.Studio.Timezone = "Mars/Olympus" }},
		{"no commit attempts", func(c *Config) { c.Booking.CommitAttempts = 0 }},
		{"checkout without urls", func(c *Config) { c.Checkout.StripeSecretKey = "sk_test" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}
