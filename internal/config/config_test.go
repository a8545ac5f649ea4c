package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "www", cfg.Server.DocRoot)
	assert.Equal(t, 8192, cfg.Server.MaxRequestBytes)
	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
	assert.False(t, cfg.Server.Sequential)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "www.yaml")
	data := `server:
  host: 0.0.0.0
  port: 9000
  doc_root: /srv/www
  read_timeout: 2s
  sequential: true
log:
  level: debug
  console: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddress())
	assert.Equal(t, "/srv/www", cfg.Server.DocRoot)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Server.Sequential)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Console)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "www.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))

	t.Setenv("WWW_PORT", "9100")
	t.Setenv("WWW_ROOT", "public")
	t.Setenv("WWW_MAX_REQUEST_BYTES", "not a number")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "public", cfg.Server.DocRoot)
	assert.Equal(t, 8192, cfg.Server.MaxRequestBytes)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o644))
	_, err = Load(path)
	require.Error(t, err)

	t.Setenv("WWW_PORT", "70000")
	_, err = Load("")
	require.ErrorIs(t, err, ErrInvalidPort)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default", func(*Config) {}, nil},
		{"ephemeral port", func(c *Config) { c.Server.Port = 0 }, nil},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, ErrInvalidPort},
		{"missing root", func(c *Config) { c.Server.DocRoot = "" }, ErrMissingDocRoot},
		{"zero cap", func(c *Config) { c.Server.MaxRequestBytes = 0 }, ErrInvalidMaxRequestBytes},
		{"negative timeout", func(c *Config) { c.Server.ReadTimeout = -time.Second }, ErrNegativeTimeout},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestReadLeavesValidationToCaller(t *testing.T) {
	t.Setenv("WWW_PORT", "70000")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, 70000, cfg.Server.Port)
	require.ErrorIs(t, cfg.Validate(), ErrInvalidPort)

	// an override applied after Read repairs the bad environment value
	cfg.Server.Port = 9000
	require.NoError(t, cfg.Validate())
}
