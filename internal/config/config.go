// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/rheo/rheo/internal/store"
)

// DefaultLanguage is the lesson language used when none is configured.
const DefaultLanguage = "python"

type Config struct {
	DBPath   string // RHEO_DB
	LogPath  string // RHEO_LOG
	LogLevel string // RHEO_LOG_LEVEL
	Language string // RHEO_LANGUAGE
	// ContentPath is an external content pack replacing the embedded one.
	ContentPath string // RHEO_CONTENT

	logFromEnv bool
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	db, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &Config{
		DBPath:      db,
		LogPath:     getenvDefault("RHEO_LOG", defaultLogPath(db)),
		LogLevel:    getenvDefault("RHEO_LOG_LEVEL", "info"),
		Language:    getenvDefault("RHEO_LANGUAGE", DefaultLanguage),
		ContentPath: os.Getenv("RHEO_CONTENT"),
		logFromEnv:  os.Getenv("RHEO_LOG") != "",
	}, nil
}

// UseDBPath points the config at another database. The log file moves
// next to it unless RHEO_LOG names one.
func (c *Config) UseDBPath(path string) {
	c.DBPath = path
	if !c.logFromEnv {
		c.LogPath = defaultLogPath(path)
	}
}

func defaultLogPath(db string) string {
	return filepath.Join(filepath.Dir(db), "rheo.log")
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
