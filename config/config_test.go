package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "DATABASE_URL", "AUTH_USER", "AUTH_PASS", "BASE_URL", "OUTPUT_DIR", "CACHE_SIZE", "LOG_LEVEL", "QR_MODULE_SIZE",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "certificates.db", cfg.DatabaseURL)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "certificates", cfg.OutputDir)
	assert.Equal(t, 100, cfg.CacheSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.QRModuleSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("BASE_URL", "https://example.github.io/certs")
	t.Setenv("OUTPUT_DIR", "out")
	t.Setenv("CACHE_SIZE", "not-a-number")

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://example.github.io/certs", cfg.BaseURL)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 100, cfg.CacheSize)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile,
		[]byte("BASE_URL=https://dotenv.example.com/certs\nOUTPUT_DIR=from-dotenv\n"), 0o644))
	t.Setenv("OUTPUT_DIR", "from-env")

	cfg := LoadConfig(envFile)

	assert.Equal(t, "https://dotenv.example.com/certs", cfg.BaseURL)
	assert.Equal(t, "from-env", cfg.OutputDir)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Port:         8080,
		BaseURL:      "https://example.github.io/certs",
		OutputDir:    "certificates",
		CacheSize:    10,
		QRModuleSize: 10,
	}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"relative base url", func(c *Config) { c.BaseURL = "certs" }},
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"zero cache", func(c *Config) { c.CacheSize = 0 }},
		{"zero module size", func(c *Config) { c.QRModuleSize = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
