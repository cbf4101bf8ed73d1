package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prasetyowira/certqr/constant"
)

// DefaultBaseURL is the placeholder prefix used until BASE_URL is set
const DefaultBaseURL = "https://YOUR_USERNAME.github.io/certificates"

type Config struct {
	Port         int
	DatabaseURL  string
	AuthUser     string
	AuthPass     string
	BaseURL      string
	OutputDir    string
	CacheSize    int
	LogLevel     string
	QRModuleSize int
}

// LoadConfig reads the configuration from the environment. Variables from the
// given env files (default: .env in the working directory) are loaded first
// when the files exist; variables already set in the environment win.
func LoadConfig(envFiles ...string) Config {
	for _, file := range envFiles {
		_ = godotenv.Load(file)
	}
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	}

	return Config{
		Port:         getEnvInt("PORT", 8080),
		DatabaseURL:  getEnv("DATABASE_URL", "certificates.db"),
		AuthUser:     getEnv("AUTH_USER", "admin"),
		AuthPass:     getEnv("AUTH_PASS", "password"),
		BaseURL:      getEnv("BASE_URL", DefaultBaseURL),
		OutputDir:    getEnv("OUTPUT_DIR", constant.DefaultOutputDir),
		CacheSize:    getEnvInt("CACHE_SIZE", 100),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		QRModuleSize: getEnvInt("QR_MODULE_SIZE", 10),
	}
}

// Validate checks the values the commands depend on
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("OUTPUT_DIR cannot be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BASE_URL %q must be an absolute URL", c.BaseURL)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("CACHE_SIZE must be positive, got %d", c.CacheSize)
	}
	if c.QRModuleSize < 1 {
		return fmt.Errorf("QR_MODULE_SIZE must be positive, got %d", c.QRModuleSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
